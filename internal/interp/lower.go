package interp

import (
	"sage/internal/ast"
	"sage/internal/diag"
)

// Lower converts a compile-time value into an equivalent runtime node,
// returned as a runtime value. Runtime inputs pass through unchanged, so
// lowering is idempotent. Values with no runtime representation (functions,
// products, ...) report a diagnostic and produce the error sentinel.
func (ip *Interp) Lower(v Value) Value {
	switch {
	case v.IsRuntime():
		return v
	case v.IsVoid():
		return ip.NewRuntime(ip.AST.Void(v.Loc()))
	case v.IsInt():
		return ip.NewRuntime(ip.AST.Int(v.Loc(), v.Int()))
	case v.IsSymbol():
		return ip.NewRuntime(ip.AST.Symbol(v.Loc(), v.Symbol()))
	case v.IsString():
		return ip.NewRuntime(ip.AST.String(v.Loc(), v.Str().Value()))
	case v.IsBool():
		return ip.NewRuntime(ip.AST.Bool(v.Loc(), v.Bool()))
	case v.IsList():
		vals := ToVector(v)
		acc := ip.AST.Void(v.Loc())
		for i := len(vals) - 1; i >= 0; i-- {
			l := ip.Lower(vals[i])
			if l.IsError() {
				return ip.Error()
			}
			acc = ip.AST.Cons(v.Loc(), l.Runtime(), acc)
		}
		return ip.NewRuntime(acc)
	case v.IsError():
		return ip.NewRuntime(ip.AST.Singleton(v.Loc(), ip.Types.Builtins().Error))
	default:
		return ip.report(diag.EvalUnlowerable, v.Loc(), "Couldn't lower value '%s'.", ip.Format(v))
	}
}

// lowerNode lowers to a bare node, or nil when the value cannot be lowered.
func (ip *Interp) lowerNode(v Value) *ast.Node {
	lowered := ip.Lower(v)
	if lowered.IsError() {
		return nil
	}
	return lowered.Runtime()
}
