package interp

// Clone deep-copies structural payloads; scalars copy as-is. Runtime handles
// share their node shallowly: nodes are immutable after construction.
// Function and macro clones also clone the captured environment.
func (ip *Interp) Clone(v Value) Value {
	switch {
	case v.IsList():
		return ip.NewList(v.Loc(), &ListValue{
			Head: ip.Clone(v.List().Head),
			Tail: ip.Clone(v.List().Tail),
		})
	case v.IsString():
		return ip.String(v.Loc(), v.Str().Value())
	case v.IsSum():
		return ip.NewSum(v.Loc(), &SumValue{Value: ip.Clone(v.Sum().Value)}, v.Type())
	case v.IsProduct():
		values := make([]Value, 0, v.Product().Size())
		for _, member := range v.Product().Values {
			values = append(values, ip.Clone(member))
		}
		return Value{
			typ:  v.typ,
			kind: v.kind,
			span: v.span,
			prod: &ProductValue{Values: values},
		}
	case v.IsFunction():
		fn := v.Function()
		if fn.IsBuiltin() {
			return ip.NewFunction(v.Loc(),
				NewBuiltinFunction(fn.Env().Clone(), fn.Builtin(), fn.Arity(), fn.Name()))
		}
		return ip.NewFunction(v.Loc(),
			NewFunctionValue(fn.Env().Clone(), fn.Args(), ip.Clone(fn.Body()), fn.Name()))
	case v.IsAlias():
		return ip.NewAlias(v.Loc(), &AliasValue{Value: ip.Clone(v.Alias().Value)})
	case v.IsMacro():
		m := v.Macro()
		if m.IsBuiltin() {
			return ip.NewMacro(v.Loc(), NewBuiltinMacro(m.Env().Clone(), m.Builtin(), m.Arity()))
		}
		return ip.NewMacro(v.Loc(), NewMacroValue(m.Env().Clone(), m.Args(), ip.Clone(m.Body())))
	}
	return v
}
