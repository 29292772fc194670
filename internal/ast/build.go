package ast

import (
	"sage/internal/source"
	"sage/internal/symbols"
	"sage/internal/types"
)

// Builder constructs nodes against a shared type interner so every
// constructor can compute the base type of its result.
type Builder struct {
	Types *types.Interner
}

// NewBuilder wraps a type interner.
func NewBuilder(in *types.Interner) *Builder {
	return &Builder{Types: in}
}

func (b *Builder) Void(sp source.Span) *Node {
	return &Node{Kind: KindVoid, Span: sp, Type: b.Types.Builtins().Void}
}

func (b *Builder) Int(sp source.Span, v int64) *Node {
	return &Node{Kind: KindInt, Span: sp, Type: b.Types.Builtins().Int, Int: v}
}

func (b *Builder) Bool(sp source.Span, v bool) *Node {
	return &Node{Kind: KindBool, Span: sp, Type: b.Types.Builtins().Bool, Bool: v}
}

func (b *Builder) Symbol(sp source.Span, sym symbols.SymbolID) *Node {
	return &Node{Kind: KindSymbol, Span: sp, Type: b.Types.Builtins().Symbol, Sym: sym}
}

// VarRef is a Symbol node used as a variable reference: it carries the
// referenced binding's type instead of the symbol literal type.
func (b *Builder) VarRef(sp source.Span, sym symbols.SymbolID, t types.TypeID) *Node {
	return &Node{Kind: KindSymbol, Span: sp, Type: t, Sym: sym}
}

func (b *Builder) String(sp source.Span, s string) *Node {
	return &Node{Kind: KindString, Span: sp, Type: b.Types.Builtins().String, Str: s}
}

// Cons types as a list of the head's type.
func (b *Builder) Cons(sp source.Span, head, tail *Node) *Node {
	return &Node{
		Kind: KindCons,
		Span: sp,
		Type: b.Types.RegisterList(head.Type),
		Kids: []*Node{head, tail},
	}
}

// Head peels the element type off a list operand. A non-list operand type
// resolves to a fresh variable, to be pinned by later unification.
func (b *Builder) Head(sp source.Span, list *Node) *Node {
	elem, ok := b.Types.ListElem(b.Types.Resolve(list.Type))
	if !ok {
		elem = b.Types.FreshVar()
	}
	return &Node{Kind: KindHead, Span: sp, Type: elem, Kids: []*Node{list}}
}

func (b *Builder) Tail(sp source.Span, list *Node) *Node {
	return &Node{Kind: KindTail, Span: sp, Type: list.Type, Kids: []*Node{list}}
}

func (b *Builder) IsEmpty(sp source.Span, list *Node) *Node {
	return &Node{Kind: KindIsEmpty, Span: sp, Type: b.Types.Builtins().Bool, Kids: []*Node{list}}
}

func (b *Builder) Length(sp source.Span, v *Node) *Node {
	return &Node{Kind: KindLength, Span: sp, Type: b.Types.Builtins().Int, Kids: []*Node{v}}
}

func (b *Builder) Not(sp source.Span, v *Node) *Node {
	return &Node{Kind: KindNot, Span: sp, Type: b.Types.Builtins().Bool, Kids: []*Node{v}}
}

func (b *Builder) BinaryMath(sp source.Span, op MathOp, lhs, rhs *Node) *Node {
	return &Node{Kind: KindBinaryMath, Span: sp, Type: b.Types.Builtins().Int, Math: op, Kids: []*Node{lhs, rhs}}
}

func (b *Builder) BinaryLogic(sp source.Span, op LogicOp, lhs, rhs *Node) *Node {
	return &Node{Kind: KindBinaryLogic, Span: sp, Type: b.Types.Builtins().Bool, Logic: op, Kids: []*Node{lhs, rhs}}
}

func (b *Builder) BinaryEqual(sp source.Span, op EqualOp, lhs, rhs *Node) *Node {
	return &Node{Kind: KindBinaryEqual, Span: sp, Type: b.Types.Builtins().Bool, Eq: op, Kids: []*Node{lhs, rhs}}
}

func (b *Builder) BinaryRel(sp source.Span, op RelOp, lhs, rhs *Node) *Node {
	return &Node{Kind: KindBinaryRel, Span: sp, Type: b.Types.Builtins().Bool, Rel: op, Kids: []*Node{lhs, rhs}}
}

// If types as the unified type of its arms. Kids are [cond then else].
func (b *Builder) If(sp source.Span, cond, then, els *Node) *Node {
	b.Types.Unify(then.Type, els.Type)
	return &Node{Kind: KindIf, Span: sp, Type: b.Types.Resolve(then.Type), Kids: []*Node{cond, then, els}}
}

// Call unifies the callee's function type against the actual argument types,
// binding any free variables the callee carries, and types as the resolved
// result.
func (b *Builder) Call(sp source.Span, callee *Node, args []*Node) *Node {
	argTypes := make([]types.TypeID, len(args))
	for i, a := range args {
		argTypes[i] = a.Type
	}
	result := b.Types.FreshVar()
	want := b.Types.RegisterFunction(b.Types.RegisterProduct(argTypes), result)
	b.Types.Unify(callee.Type, want)
	kids := make([]*Node, 0, len(args)+1)
	kids = append(kids, callee)
	kids = append(kids, args...)
	return &Node{Kind: KindCall, Span: sp, Type: b.Types.Resolve(result), Kids: kids}
}

// Function wraps a monomorphized body. argType is the product of the
// positional parameter types; params are the positional parameter names in
// slot order.
func (b *Builder) Function(sp source.Span, env Env, argType types.TypeID, params []symbols.SymbolID, body *Node, name int64) *Node {
	return &Node{
		Kind:    KindFunction,
		Span:    sp,
		Type:    b.Types.RegisterFunction(argType, body.Type),
		Env:     env,
		ArgType: argType,
		Params:  params,
		Kids:    []*Node{body},
		Name:    name,
	}
}

// IncompleteFn is the placeholder installed in a monomorphization cache
// before the body is evaluated, so recursive self-references resolve to a
// legal handle instead of re-entering the instantiator.
func (b *Builder) IncompleteFn(sp source.Span, argType types.TypeID, name int64) *Node {
	return &Node{
		Kind:    KindIncompleteFn,
		Span:    sp,
		Type:    b.Types.RegisterFunction(argType, b.Types.FreshVar()),
		ArgType: argType,
		Name:    name,
	}
}

func (b *Builder) NativeCall(sp source.Span, name string, result types.TypeID, args []*Node, argTypes []types.TypeID) *Node {
	return &Node{
		Kind:     KindNativeCall,
		Span:     sp,
		Type:     result,
		Str:      name,
		Kids:     args,
		ArgTypes: argTypes,
	}
}

func (b *Builder) Display(sp source.Span, v *Node) *Node {
	return &Node{Kind: KindDisplay, Span: sp, Type: b.Types.Builtins().Void, Kids: []*Node{v}}
}

func (b *Builder) Assign(sp source.Span, env Env, name symbols.SymbolID, expr *Node) *Node {
	return &Node{Kind: KindAssign, Span: sp, Type: b.Types.Builtins().Void, Env: env, Sym: name, Kids: []*Node{expr}}
}

func (b *Builder) Define(sp source.Span, env Env, name symbols.SymbolID, expr *Node) *Node {
	return &Node{Kind: KindDefine, Span: sp, Type: b.Types.Builtins().Void, Env: env, Sym: name, Kids: []*Node{expr}}
}

func (b *Builder) Singleton(sp source.Span, t types.TypeID) *Node {
	return &Node{Kind: KindSingleton, Span: sp, Type: t}
}
