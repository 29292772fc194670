package interp

import (
	"sage/internal/diag"
	"sage/internal/source"
)

// newPrelude builds the root environment with the operator set bound as
// builtin function values.
func (ip *Interp) newPrelude() *Env {
	env := NewEnv(nil)

	bind1 := func(name string, op func(Value) Value) {
		ip.bindBuiltin(env, name, 1, func(_ *Interp, _ *Env, args Value) Value {
			return op(args.Product().At(0))
		})
	}
	bind2 := func(name string, op func(a, b Value) Value) {
		ip.bindBuiltin(env, name, 2, func(_ *Interp, _ *Env, args Value) Value {
			return op(args.Product().At(0), args.Product().At(1))
		})
	}

	bind2("+", ip.Add)
	bind2("-", ip.Sub)
	bind2("*", ip.Mul)
	bind2("/", ip.Div)
	bind2("%", ip.Rem)
	bind2("and", ip.And)
	bind2("or", ip.Or)
	bind2("xor", ip.Xor)
	bind1("not", ip.Not)
	bind2("=", ip.Equal)
	bind2("!=", ip.Inequal)
	bind2("<", ip.Less)
	bind2(">", ip.Greater)
	bind2("<=", ip.LessEqual)
	bind2(">=", ip.GreaterEqual)
	bind1("head", ip.Head)
	bind1("tail", ip.Tail)
	bind2("cons", ip.Cons)
	bind1("empty?", ip.IsEmpty)
	bind1("length", ip.Length)
	bind2("char-at", ip.CharAt)
	bind1("type-of", ip.TypeOf)
	bind1("display", ip.Display)

	// list takes any number of arguments.
	listSym := ip.Syms.Value("list")
	listFn := NewBuiltinFunction(env, func(inner *Interp, _ *Env, args Value) Value {
		return inner.ListOf(args.Loc(), args.Product().Values...)
	}, -1, int64(listSym))
	env.Define(listSym, ip.NewFunction(source.Span{}, listFn))

	env.Define(ip.Syms.Value("empty"), ip.Void(source.Span{}))
	return env
}

// bindBuiltin registers a fixed-arity native function, wrapping it with the
// arity check call dispatch does not perform for builtins.
func (ip *Interp) bindBuiltin(env *Env, name string, arity int, fn BuiltinFn) {
	sym := ip.Syms.Value(name)
	checked := func(inner *Interp, callerEnv *Env, args Value) Value {
		if args.Product().Size() != arity {
			return inner.report(diag.EvalArityMismatch, args.Loc(),
				"Procedure requires %d arguments, %d provided.", arity, args.Product().Size())
		}
		return fn(inner, callerEnv, args)
	}
	env.Define(sym, ip.NewFunction(source.Span{}, NewBuiltinFunction(env, checked, arity, int64(sym))))
}
