// Package interp implements the staged evaluation core: the tagged value
// universe, the dual-mode primitive operators, lowering to the runtime code
// graph, call-graph discovery, on-demand monomorphization, call dispatch and
// assignment.
package interp

import (
	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/source"
	"sage/internal/symbols"
	"sage/internal/types"
)

// Value is a (type, payload, location) triple. Kind is cached off the type
// descriptor so accessors never consult the interner. Boxed payloads are
// shared on copy; the Go GC replaces the reference counts of a manual
// runtime.
type Value struct {
	typ  types.TypeID
	kind types.Kind
	span source.Span

	intv  int64
	boolv bool
	symv  symbols.SymbolID
	typev types.TypeID

	str   *StringValue
	list  *ListValue
	sum   *SumValue
	prod  *ProductValue
	fn    *FunctionValue
	alias *AliasValue
	macro *MacroValue
	node  *ast.Node
}

// Type returns the interned type descriptor.
func (v Value) Type() types.TypeID { return v.typ }

// Kind returns the kind of the type descriptor.
func (v Value) Kind() types.Kind { return v.kind }

// Loc returns the source location the value was constructed at.
func (v Value) Loc() source.Span { return v.span }

// WithLoc returns a copy of the value relocated to sp.
func (v Value) WithLoc(sp source.Span) Value {
	v.span = sp
	return v
}

func (v Value) IsVoid() bool { return v.kind == types.KindVoid }
func (v Value) IsError() bool { return v.kind == types.KindError }
func (v Value) IsInt() bool { return v.kind == types.KindInt }
func (v Value) IsBool() bool { return v.kind == types.KindBool }
func (v Value) IsSymbol() bool { return v.kind == types.KindSymbol }
func (v Value) IsType() bool { return v.kind == types.KindType }
func (v Value) IsString() bool { return v.kind == types.KindString }
func (v Value) IsList() bool { return v.kind == types.KindList }
func (v Value) IsSum() bool { return v.kind == types.KindSum }
func (v Value) IsProduct() bool { return v.kind == types.KindProduct }
func (v Value) IsFunction() bool { return v.kind == types.KindFunction }
func (v Value) IsAlias() bool { return v.kind == types.KindAlias }
func (v Value) IsMacro() bool { return v.kind == types.KindMacro }
func (v Value) IsRuntime() bool { return v.kind == types.KindRuntime }

func (v Value) Int() int64 { return v.intv }
func (v Value) Bool() bool { return v.boolv }
func (v Value) Symbol() symbols.SymbolID { return v.symv }
func (v Value) TypeValue() types.TypeID { return v.typev }
func (v Value) Str() *StringValue { return v.str }
func (v Value) List() *ListValue { return v.list }
func (v Value) Sum() *SumValue { return v.sum }
func (v Value) Product() *ProductValue { return v.prod }
func (v Value) Function() *FunctionValue { return v.fn }
func (v Value) Alias() *AliasValue { return v.alias }
func (v Value) Macro() *MacroValue { return v.macro }
func (v Value) Runtime() *ast.Node { return v.node }

// Interp owns the shared state of one evaluation unit: the type lattice, the
// node builder, the symbol table, and the diagnostic sink. Not safe for
// concurrent use; hosts that parallelize run one Interp per compilation unit.
type Interp struct {
	Types    *types.Interner
	AST      *ast.Builder
	Syms     *symbols.Table
	Reporter diag.Reporter

	root  *Env
	forms *specials
}

// Constructors -----------------------------------------------------------

// Void returns the unit/empty-list singleton.
func (ip *Interp) Void(sp source.Span) Value {
	return Value{typ: ip.Types.Builtins().Void, kind: types.KindVoid, span: sp}
}

// Error returns the failed-evaluation sentinel.
func (ip *Interp) Error() Value {
	return Value{typ: ip.Types.Builtins().Error, kind: types.KindError}
}

func (ip *Interp) Int(sp source.Span, v int64) Value {
	return Value{typ: ip.Types.Builtins().Int, kind: types.KindInt, span: sp, intv: v}
}

func (ip *Interp) Bool(sp source.Span, v bool) Value {
	return Value{typ: ip.Types.Builtins().Bool, kind: types.KindBool, span: sp, boolv: v}
}

// Symbol interns name and wraps its id.
func (ip *Interp) Symbol(sp source.Span, name string) Value {
	return ip.SymbolID(sp, ip.Syms.Value(name))
}

func (ip *Interp) SymbolID(sp source.Span, id symbols.SymbolID) Value {
	return Value{typ: ip.Types.Builtins().Symbol, kind: types.KindSymbol, span: sp, symv: id}
}

func (ip *Interp) String(sp source.Span, s string) Value {
	return Value{typ: ip.Types.Builtins().String, kind: types.KindString, span: sp, str: &StringValue{value: s}}
}

// TypeValue wraps a type descriptor as a first-class value.
func (ip *Interp) TypeValue(sp source.Span, t types.TypeID) Value {
	return Value{typ: ip.Types.Builtins().Type, kind: types.KindType, span: sp, typev: t}
}

// ListValue types as a list of the head's type. The empty list is Void, not
// a list value; callers use Cons/Empty.
func (ip *Interp) NewList(sp source.Span, cell *ListValue) Value {
	return Value{
		typ:  ip.Types.RegisterList(cell.Head.Type()),
		kind: types.KindList,
		span: sp,
		list: cell,
	}
}

// NewSum wraps an inner value with an explicit sum type.
func (ip *Interp) NewSum(sp source.Span, s *SumValue, sumType types.TypeID) Value {
	return Value{typ: sumType, kind: types.KindSum, span: sp, sum: s}
}

// NewProduct interns the product of the members' types.
func (ip *Interp) NewProduct(sp source.Span, p *ProductValue) Value {
	ts := make([]types.TypeID, len(p.Values))
	for i, v := range p.Values {
		ts[i] = v.Type()
	}
	return Value{
		typ:  ip.Types.RegisterProduct(ts),
		kind: types.KindProduct,
		span: sp,
		prod: p,
	}
}

// Product is a convenience wrapper over NewProduct.
func (ip *Interp) Product(sp source.Span, values ...Value) Value {
	return ip.NewProduct(sp, &ProductValue{Values: values})
}

// NewFunction types with two fresh variables: the concrete function type is
// not known until the first instantiation.
func (ip *Interp) NewFunction(sp source.Span, f *FunctionValue) Value {
	return Value{
		typ:  ip.Types.RegisterFunction(ip.Types.FreshVar(), ip.Types.FreshVar()),
		kind: types.KindFunction,
		span: sp,
		fn:   f,
	}
}

func (ip *Interp) NewAlias(sp source.Span, a *AliasValue) Value {
	return Value{typ: ip.Types.Builtins().Alias, kind: types.KindAlias, span: sp, alias: a}
}

func (ip *Interp) NewMacro(sp source.Span, m *MacroValue) Value {
	return Value{
		typ:   ip.Types.RegisterMacro(uint32(m.Arity())),
		kind:  types.KindMacro,
		span:  sp,
		macro: m,
	}
}

// NewRuntime wraps a node; the value's type is Runtime over the node's base
// type.
func (ip *Interp) NewRuntime(n *ast.Node) Value {
	return Value{
		typ:  ip.Types.RegisterRuntime(n.Type),
		kind: types.KindRuntime,
		span: n.Span,
		node: n,
	}
}

// Empty returns the empty list (the void singleton).
func (ip *Interp) Empty(sp source.Span) Value {
	return ip.Void(sp)
}

// ToVector linearizes a cons chain into a slice.
func ToVector(list Value) []Value {
	var values []Value
	v := list
	for v.IsList() {
		values = append(values, v.list.Head)
		v = v.list.Tail
	}
	return values
}
