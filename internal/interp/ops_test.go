package interp_test

import (
	"testing"

	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/interp"
)

func TestAddEager(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Add(num(ip, 2), num(ip, 3))
	wantInt(t, ip, v, 5)
	if v.Type() != ip.Types.Builtins().Int {
		t.Fatalf("result type = %s", ip.Types.String(v.Type()))
	}
	wantNoDiags(t, bag)
}

func TestAddRuntimeLowersBothSides(t *testing.T) {
	ip, bag := newTestInterp(t)
	rt := ip.NewRuntime(ip.AST.Int(noSpan, 2))
	v := ip.Add(rt, num(ip, 3))
	if !v.IsRuntime() {
		t.Fatalf("expected runtime result, got %s", ip.Format(v))
	}
	n := v.Runtime()
	if n.Kind != ast.KindBinaryMath || n.Math != ast.Add {
		t.Fatalf("node = %v %v", n.Kind, n.Math)
	}
	if n.Kids[0].Kind != ast.KindInt || n.Kids[0].Int != 2 {
		t.Fatalf("lhs node = %v %d", n.Kids[0].Kind, n.Kids[0].Int)
	}
	if n.Kids[1].Kind != ast.KindInt || n.Kids[1].Int != 3 {
		t.Fatalf("rhs node = %v %d", n.Kids[1].Kind, n.Kids[1].Int)
	}
	base, _ := ip.Types.RuntimeBase(v.Type())
	if base != ip.Types.Builtins().Int {
		t.Fatalf("base type = %s", ip.Types.String(base))
	}
	wantNoDiags(t, bag)
}

func TestArithmeticSemantics(t *testing.T) {
	ip, _ := newTestInterp(t)
	wantInt(t, ip, ip.Div(num(ip, -7), num(ip, 2)), -3)
	wantInt(t, ip, ip.Rem(num(ip, -7), num(ip, 2)), -1)
	wantInt(t, ip, ip.Rem(num(ip, 7), num(ip, -2)), 1)
	wantInt(t, ip, ip.Mul(num(ip, -4), num(ip, 6)), -24)
}

func TestDivisionByZeroReports(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Div(num(ip, 1), num(ip, 0))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestTypeMismatchReportsOnce(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Add(boolean(ip, true), num(ip, 1))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestErrorPropagatesSilently(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Add(ip.Error(), num(ip, 1))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantNoDiags(t, bag)
}

func TestLogicOps(t *testing.T) {
	ip, bag := newTestInterp(t)
	wantBool(t, ip, ip.And(boolean(ip, true), boolean(ip, false)), false)
	wantBool(t, ip, ip.Or(boolean(ip, true), boolean(ip, false)), true)
	wantBool(t, ip, ip.Xor(boolean(ip, true), boolean(ip, true)), false)
	wantBool(t, ip, ip.Not(boolean(ip, false)), true)
	wantNoDiags(t, bag)
}

func TestNotRuntime(t *testing.T) {
	ip, _ := newTestInterp(t)
	v := ip.Not(ip.NewRuntime(ip.AST.Bool(noSpan, true)))
	if !v.IsRuntime() || v.Runtime().Kind != ast.KindNot {
		t.Fatalf("expected Not node, got %s", ip.Format(v))
	}
}

func TestEqualityOps(t *testing.T) {
	ip, bag := newTestInterp(t)
	wantBool(t, ip, ip.Equal(boolean(ip, true), boolean(ip, false)), false)
	wantBool(t, ip, ip.Equal(str(ip, "a"), str(ip, "a")), true)
	wantBool(t, ip, ip.Inequal(num(ip, 1), num(ip, 2)), true)
	// Values of different types are simply unequal; no diagnostic.
	wantBool(t, ip, ip.Equal(num(ip, 1), str(ip, "1")), false)
	wantNoDiags(t, bag)
}

func TestEqualityRuntime(t *testing.T) {
	ip, _ := newTestInterp(t)
	v := ip.Equal(ip.NewRuntime(ip.AST.Int(noSpan, 1)), num(ip, 1))
	if !v.IsRuntime() || v.Runtime().Kind != ast.KindBinaryEqual || v.Runtime().Eq != ast.Equal {
		t.Fatalf("expected BinaryEqual node, got %s", ip.Format(v))
	}
}

func TestRelationalOps(t *testing.T) {
	ip, bag := newTestInterp(t)
	wantBool(t, ip, ip.Less(num(ip, 1), num(ip, 2)), true)
	wantBool(t, ip, ip.Greater(str(ip, "b"), str(ip, "a")), true)
	wantBool(t, ip, ip.LessEqual(num(ip, 2), num(ip, 2)), true)
	wantBool(t, ip, ip.GreaterEqual(num(ip, 1), num(ip, 2)), false)
	wantNoDiags(t, bag)

	v := ip.Less(num(ip, 1), str(ip, "a"))
	if !v.IsError() {
		t.Fatalf("mixed relational operands must fail")
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestConsHeadTail(t *testing.T) {
	ip, bag := newTestInterp(t)
	l := ip.ListOf(noSpan, num(ip, 2), num(ip, 3))
	c := ip.Cons(num(ip, 1), l)
	wantInt(t, ip, ip.Head(c), 1)
	if tail := ip.Tail(c); !interp.Equal(tail, l) {
		t.Fatalf("tail mismatch: %s", ip.Format(tail))
	}
	wantNoDiags(t, bag)
}

func TestConsOntoVoid(t *testing.T) {
	ip, bag := newTestInterp(t)
	c := ip.Cons(num(ip, 1), ip.Empty(noSpan))
	if !c.IsList() {
		t.Fatalf("cons onto void should build a list")
	}
	wantBool(t, ip, ip.IsEmpty(c), false)
	wantBool(t, ip, ip.IsEmpty(ip.Empty(noSpan)), true)
	wantNoDiags(t, bag)

	bad := ip.Cons(num(ip, 1), num(ip, 2))
	if !bad.IsError() {
		t.Fatalf("cons onto an int must fail")
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestLength(t *testing.T) {
	ip, bag := newTestInterp(t)
	wantInt(t, ip, ip.Length(ip.ListOf(noSpan, num(ip, 1), num(ip, 2), num(ip, 3))), 3)
	wantInt(t, ip, ip.Length(str(ip, "abc")), 3)
	wantNoDiags(t, bag)

	// The empty list is void, which is outside length's eager domain.
	if v := ip.Length(ip.Empty(noSpan)); !v.IsError() {
		t.Fatalf("length of void must fail, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestLengthRuntime(t *testing.T) {
	ip, _ := newTestInterp(t)
	rt := ip.NewRuntime(ip.AST.String(noSpan, "abc"))
	v := ip.Length(rt)
	if !v.IsRuntime() || v.Runtime().Kind != ast.KindLength {
		t.Fatalf("expected Length node, got %s", ip.Format(v))
	}
}

func TestCharAt(t *testing.T) {
	ip, bag := newTestInterp(t)
	wantInt(t, ip, ip.CharAt(str(ip, "abc"), num(ip, 1)), 'b')
	wantNoDiags(t, bag)

	v := ip.CharAt(str(ip, "abc"), num(ip, 5))
	if !v.IsError() {
		t.Fatalf("out-of-range index must fail")
	}
	wantOneDiag(t, bag, diag.EvalTypeMismatch)
}

func TestCharAtRuntimeEmitsNativeCall(t *testing.T) {
	ip, _ := newTestInterp(t)
	rt := ip.NewRuntime(ip.AST.String(noSpan, "abc"))
	v := ip.CharAt(rt, num(ip, 0))
	if !v.IsRuntime() {
		t.Fatalf("expected runtime result")
	}
	n := v.Runtime()
	if n.Kind != ast.KindNativeCall || n.Str != "_char_at" {
		t.Fatalf("node = %v %q", n.Kind, n.Str)
	}
	b := ip.Types.Builtins()
	if n.Type != b.Int || len(n.ArgTypes) != 2 || n.ArgTypes[0] != b.String || n.ArgTypes[1] != b.Int {
		t.Fatalf("native call signature mismatch: %+v", n)
	}
}

func TestTypeOf(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.TypeOf(num(ip, 1))
	if !v.IsType() || v.TypeValue() != ip.Types.Builtins().Int {
		t.Fatalf("type-of(1) = %s", ip.Format(v))
	}
	// type-of is never lowered: a runtime operand yields its runtime type.
	rt := ip.NewRuntime(ip.AST.Int(noSpan, 1))
	tv := ip.TypeOf(rt)
	if !tv.IsType() || tv.TypeValue() != rt.Type() {
		t.Fatalf("type-of(runtime) = %s", ip.Format(tv))
	}
	wantNoDiags(t, bag)
}

func TestDisplayAlwaysEmits(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Display(num(ip, 7))
	if !v.IsRuntime() || v.Runtime().Kind != ast.KindDisplay {
		t.Fatalf("expected Display node, got %s", ip.Format(v))
	}
	wantNoDiags(t, bag)
}
