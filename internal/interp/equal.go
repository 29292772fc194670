package interp

import "reflect"

// Equal is structural equality. Values with differing type descriptors are
// unequal; descriptors are interned so descriptor equality is id equality.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch {
	case a.IsInt():
		return a.Int() == b.Int()
	case a.IsSymbol():
		return a.Symbol() == b.Symbol()
	case a.IsType():
		return a.TypeValue() == b.TypeValue()
	case a.IsBool():
		return a.Bool() == b.Bool()
	case a.IsString():
		return a.Str().Value() == b.Str().Value()
	case a.IsList():
		l, o := a, b
		for l.IsList() && o.IsList() {
			if !Equal(l.List().Head, o.List().Head) {
				return false
			}
			l, o = l.List().Tail, o.List().Tail
		}
		return l.IsVoid() && o.IsVoid()
	case a.IsSum():
		return Equal(a.Sum().Value, b.Sum().Value)
	case a.IsAlias():
		return Equal(a.Alias().Value, b.Alias().Value)
	case a.IsProduct():
		pa, pb := a.Product(), b.Product()
		if pa.Size() != pb.Size() {
			return false
		}
		for i := range pa.Values {
			if !Equal(pa.Values[i], pb.Values[i]) {
				return false
			}
		}
		return true
	case a.IsFunction():
		fa, fb := a.Function(), b.Function()
		if fa.IsBuiltin() || fb.IsBuiltin() {
			// Closures wrapping different natives can share a code pointer,
			// so builtin identity is the (pointer, name) pair.
			return fa.IsBuiltin() && fb.IsBuiltin() && fa.Name() == fb.Name() &&
				reflect.ValueOf(fa.Builtin()).Pointer() == reflect.ValueOf(fb.Builtin()).Pointer()
		}
		if fa.Arity() != fb.Arity() {
			return false
		}
		for i := range fa.Args() {
			if fa.Args()[i] != fb.Args()[i] {
				return false
			}
		}
		return Equal(fa.Body(), fb.Body())
	case a.IsMacro():
		ma, mb := a.Macro(), b.Macro()
		if ma.IsBuiltin() || mb.IsBuiltin() {
			return ma.IsBuiltin() && mb.IsBuiltin() &&
				reflect.ValueOf(ma.Builtin()).Pointer() == reflect.ValueOf(mb.Builtin()).Pointer()
		}
		if ma.Arity() != mb.Arity() {
			return false
		}
		for i := range ma.Args() {
			if ma.Args()[i] != mb.Args()[i] {
				return false
			}
		}
		return Equal(ma.Body(), mb.Body())
	case a.IsRuntime():
		return a.Runtime() == b.Runtime()
	}
	// Singleton kinds (void, error) and anything left compare by type alone.
	return true
}
