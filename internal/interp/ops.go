package interp

import (
	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/source"
	"sage/internal/types"
)

func isRuntimeBinary(lhs, rhs Value) bool {
	return lhs.IsRuntime() || rhs.IsRuntime()
}

func (ip *Interp) binaryArithmetic(lhs, rhs Value, op func(a, b int64) int64) Value {
	if !lhs.IsInt() && !lhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, lhs.Loc(),
			"Expected integer value in arithmetic expression, given '%s'.", ip.typeName(lhs.Type()))
	}
	if !rhs.IsInt() && !rhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(),
			"Expected integer value in arithmetic expression, given '%s'.", ip.typeName(rhs.Type()))
	}
	if lhs.IsError() || rhs.IsError() {
		return ip.Error()
	}
	return ip.Int(lhs.Loc(), op(lhs.Int(), rhs.Int()))
}

func (ip *Interp) lowerMath(op ast.MathOp, lhs, rhs Value) Value {
	l, r := ip.lowerNode(lhs), ip.lowerNode(rhs)
	if l == nil || r == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.BinaryMath(lhs.Loc(), op, l, r))
}

// Add computes lhs + rhs, or emits a BinaryMath node for runtime operands.
func (ip *Interp) Add(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerMath(ast.Add, lhs, rhs)
	}
	return ip.binaryArithmetic(lhs, rhs, func(a, b int64) int64 { return a + b })
}

func (ip *Interp) Sub(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerMath(ast.Sub, lhs, rhs)
	}
	return ip.binaryArithmetic(lhs, rhs, func(a, b int64) int64 { return a - b })
}

func (ip *Interp) Mul(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerMath(ast.Mul, lhs, rhs)
	}
	return ip.binaryArithmetic(lhs, rhs, func(a, b int64) int64 { return a * b })
}

// Div truncates toward zero. A zero divisor on the eager path is reported.
func (ip *Interp) Div(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerMath(ast.Div, lhs, rhs)
	}
	if lhs.IsInt() && rhs.IsInt() && rhs.Int() == 0 {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(), "Division by zero.")
	}
	return ip.binaryArithmetic(lhs, rhs, func(a, b int64) int64 { return a / b })
}

// Rem keeps the dividend's sign.
func (ip *Interp) Rem(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerMath(ast.Rem, lhs, rhs)
	}
	if lhs.IsInt() && rhs.IsInt() && rhs.Int() == 0 {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(), "Division by zero.")
	}
	return ip.binaryArithmetic(lhs, rhs, func(a, b int64) int64 { return a % b })
}

func (ip *Interp) binaryLogic(lhs, rhs Value, op func(a, b bool) bool) Value {
	if !lhs.IsBool() && !lhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, lhs.Loc(),
			"Expected boolean value in logical expression, given '%s'.", ip.typeName(lhs.Type()))
	}
	if !rhs.IsBool() && !rhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(),
			"Expected boolean value in logical expression, given '%s'.", ip.typeName(rhs.Type()))
	}
	if lhs.IsError() || rhs.IsError() {
		return ip.Error()
	}
	return ip.Bool(lhs.Loc(), op(lhs.Bool(), rhs.Bool()))
}

func (ip *Interp) lowerLogic(op ast.LogicOp, lhs, rhs Value) Value {
	l, r := ip.lowerNode(lhs), ip.lowerNode(rhs)
	if l == nil || r == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.BinaryLogic(lhs.Loc(), op, l, r))
}

func (ip *Interp) And(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerLogic(ast.And, lhs, rhs)
	}
	return ip.binaryLogic(lhs, rhs, func(a, b bool) bool { return a && b })
}

func (ip *Interp) Or(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerLogic(ast.Or, lhs, rhs)
	}
	return ip.binaryLogic(lhs, rhs, func(a, b bool) bool { return a || b })
}

func (ip *Interp) Xor(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerLogic(ast.Xor, lhs, rhs)
	}
	return ip.binaryLogic(lhs, rhs, func(a, b bool) bool { return a != b })
}

func (ip *Interp) Not(v Value) Value {
	if v.IsRuntime() {
		n := ip.lowerNode(v)
		if n == nil {
			return ip.Error()
		}
		return ip.NewRuntime(ip.AST.Not(v.Loc(), n))
	}
	if !v.IsBool() && !v.IsError() {
		return ip.report(diag.EvalTypeMismatch, v.Loc(),
			"Expected boolean value in logical expression, given '%s'.", ip.typeName(v.Type()))
	}
	if v.IsError() {
		return ip.Error()
	}
	return ip.Bool(v.Loc(), !v.Bool())
}

func (ip *Interp) lowerEqual(op ast.EqualOp, lhs, rhs Value) Value {
	l, r := ip.lowerNode(lhs), ip.lowerNode(rhs)
	if l == nil || r == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.BinaryEqual(lhs.Loc(), op, l, r))
}

// Equal tests structural equality, lowering when either side is runtime.
func (ip *Interp) Equal(lhs, rhs Value) Value {
	if lhs.IsError() || rhs.IsError() {
		return ip.Error()
	}
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerEqual(ast.Equal, lhs, rhs)
	}
	return ip.Bool(lhs.Loc(), Equal(lhs, rhs))
}

func (ip *Interp) Inequal(lhs, rhs Value) Value {
	if lhs.IsError() || rhs.IsError() {
		return ip.Error()
	}
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerEqual(ast.Inequal, lhs, rhs)
	}
	return ip.Bool(lhs.Loc(), !Equal(lhs, rhs))
}

func (ip *Interp) binaryRelation(lhs, rhs Value, intOp func(a, b int64) bool, strOp func(a, b string) bool) Value {
	if !lhs.IsInt() && !lhs.IsString() && !lhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, lhs.Loc(),
			"Expected integer or string value in relational expression, given '%s'.", ip.typeName(lhs.Type()))
	}
	if !rhs.IsInt() && !rhs.IsString() && !rhs.IsError() {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(),
			"Expected integer or string value in relational expression, given '%s'.", ip.typeName(rhs.Type()))
	}
	if (lhs.IsInt() && rhs.IsString()) || (lhs.IsString() && rhs.IsInt()) {
		return ip.report(diag.EvalTypeMismatch, rhs.Loc(),
			"Invalid parameters to relational expression: '%s' and '%s'.",
			ip.typeName(lhs.Type()), ip.typeName(rhs.Type()))
	}
	if lhs.IsError() || rhs.IsError() {
		return ip.Error()
	}
	if lhs.IsString() {
		return ip.Bool(lhs.Loc(), strOp(lhs.Str().Value(), rhs.Str().Value()))
	}
	return ip.Bool(lhs.Loc(), intOp(lhs.Int(), rhs.Int()))
}

func (ip *Interp) lowerRel(op ast.RelOp, lhs, rhs Value) Value {
	l, r := ip.lowerNode(lhs), ip.lowerNode(rhs)
	if l == nil || r == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.BinaryRel(lhs.Loc(), op, l, r))
}

func (ip *Interp) Less(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerRel(ast.Less, lhs, rhs)
	}
	return ip.binaryRelation(lhs, rhs,
		func(a, b int64) bool { return a < b },
		func(a, b string) bool { return a < b })
}

func (ip *Interp) Greater(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerRel(ast.Greater, lhs, rhs)
	}
	return ip.binaryRelation(lhs, rhs,
		func(a, b int64) bool { return a > b },
		func(a, b string) bool { return a > b })
}

func (ip *Interp) LessEqual(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerRel(ast.LessEqual, lhs, rhs)
	}
	return ip.binaryRelation(lhs, rhs,
		func(a, b int64) bool { return a <= b },
		func(a, b string) bool { return a <= b })
}

func (ip *Interp) GreaterEqual(lhs, rhs Value) Value {
	if isRuntimeBinary(lhs, rhs) {
		return ip.lowerRel(ast.GreaterEqual, lhs, rhs)
	}
	return ip.binaryRelation(lhs, rhs,
		func(a, b int64) bool { return a >= b },
		func(a, b string) bool { return a >= b })
}

// Head returns the first element of a list.
func (ip *Interp) Head(v Value) Value {
	if v.IsRuntime() {
		return ip.NewRuntime(ip.AST.Head(v.Loc(), v.Runtime()))
	}
	if !v.IsList() && !v.IsError() {
		return ip.report(diag.EvalTypeMismatch, v.Loc(),
			"Can only get head of value of list type, given '%s'.", ip.typeName(v.Type()))
	}
	if v.IsError() {
		return ip.Error()
	}
	return v.List().Head
}

// Tail returns the list past its first element.
func (ip *Interp) Tail(v Value) Value {
	if v.IsRuntime() {
		return ip.NewRuntime(ip.AST.Tail(v.Loc(), v.Runtime()))
	}
	if !v.IsList() && !v.IsError() {
		return ip.report(diag.EvalTypeMismatch, v.Loc(),
			"Can only get tail of value of list type, given '%s'.", ip.typeName(v.Type()))
	}
	if v.IsError() {
		return ip.Error()
	}
	return v.List().Tail
}

// Cons prepends head onto tail. Tail must be a list or void.
func (ip *Interp) Cons(head, tail Value) Value {
	if head.IsRuntime() || tail.IsRuntime() {
		h, t := ip.lowerNode(head), ip.lowerNode(tail)
		if h == nil || t == nil {
			return ip.Error()
		}
		return ip.NewRuntime(ip.AST.Cons(head.Loc(), h, t))
	}
	if !tail.IsList() && !tail.IsVoid() && !tail.IsError() {
		return ip.report(diag.EvalTypeMismatch, tail.Loc(),
			"Tail of cons cell must be a list or void, given '%s'.", ip.typeName(tail.Type()))
	}
	if head.IsError() || tail.IsError() {
		return ip.Error()
	}
	return ip.NewList(head.Loc(), &ListValue{Head: head, Tail: tail})
}

// IsEmpty tests a list or void for emptiness.
func (ip *Interp) IsEmpty(list Value) Value {
	if list.IsRuntime() {
		return ip.NewRuntime(ip.AST.IsEmpty(list.Loc(), list.Runtime()))
	}
	if !list.IsList() && !list.IsVoid() && !list.IsError() {
		return ip.report(diag.EvalTypeMismatch, list.Loc(),
			"Can only test emptiness of value of list type, given '%s'.", ip.typeName(list.Type()))
	}
	if list.IsError() {
		return ip.Error()
	}
	return ip.Bool(list.Loc(), list.IsVoid())
}

// Length counts string bytes or list elements.
func (ip *Interp) Length(v Value) Value {
	if v.IsError() {
		return ip.Error()
	}
	if v.IsRuntime() {
		return ip.NewRuntime(ip.AST.Length(v.Loc(), v.Runtime()))
	}
	if !v.IsString() && !v.IsList() {
		return ip.report(diag.EvalTypeMismatch, v.Loc(),
			"Expected string or list, given '%s'.", ip.typeName(v.Type()))
	}
	if v.IsString() {
		return ip.Int(v.Loc(), int64(len(v.Str().Value())))
	}
	return ip.Int(v.Loc(), int64(len(ToVector(v))))
}

// CharAt indexes a string, producing the byte code at the index. The
// runtime path emits a native call to _char_at.
func (ip *Interp) CharAt(str, idx Value) Value {
	if str.IsRuntime() || idx.IsRuntime() {
		s, i := ip.lowerNode(str), ip.lowerNode(idx)
		if s == nil || i == nil {
			return ip.Error()
		}
		b := ip.Types.Builtins()
		return ip.NewRuntime(ip.AST.NativeCall(str.Loc(), "_char_at", b.Int,
			[]*ast.Node{s, i}, []types.TypeID{b.String, b.Int}))
	}
	if !str.IsString() && !str.IsError() {
		return ip.report(diag.EvalTypeMismatch, str.Loc(),
			"Expected string, given '%s'.", ip.typeName(str.Type()))
	}
	if !idx.IsInt() && !idx.IsError() {
		return ip.report(diag.EvalTypeMismatch, idx.Loc(),
			"Expected integer to index string, given '%s'.", ip.typeName(idx.Type()))
	}
	if str.IsError() || idx.IsError() {
		return ip.Error()
	}
	s := str.Str().Value()
	if idx.Int() < 0 || idx.Int() >= int64(len(s)) {
		return ip.report(diag.EvalTypeMismatch, idx.Loc(),
			"String index %d out of range for string of length %d.", idx.Int(), len(s))
	}
	return ip.Int(str.Loc(), int64(s[idx.Int()]))
}

// TypeOf wraps the operand's type descriptor; it is never lowered.
func (ip *Interp) TypeOf(v Value) Value {
	return ip.TypeValue(v.Loc(), v.Type())
}

// Display emits a Display node; output always happens at runtime.
func (ip *Interp) Display(v Value) Value {
	n := ip.lowerNode(v)
	if n == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.Display(v.Loc(), n))
}

// ListOf folds elements into a cons chain terminated by void.
func (ip *Interp) ListOf(sp source.Span, elements ...Value) Value {
	l := ip.Empty(sp)
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i].IsError() {
			return ip.Error()
		}
		l = ip.Cons(elements[i], l)
	}
	return l
}
