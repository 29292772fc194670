package interp

import (
	"sage/internal/diag"
)

// Assign rewrites a name binding. The first write to a binding still
// holding a compile-time value lowers the binding in place and emits a
// Define node, marking the introduction point of the runtime variable;
// every later write emits an Assign node.
func (ip *Interp) Assign(env *Env, dest, src Value) Value {
	if !dest.IsSymbol() {
		return ip.report(diag.EvalBadAssignTarget, dest.Loc(),
			"Invalid destination in assignment '%s'.", ip.Format(dest))
	}
	def := env.Find(dest.Symbol())
	if def == nil {
		return ip.report(diag.EvalUndefinedVariable, dest.Loc(),
			"Undefined variable '%s'.", ip.Syms.Name(dest.Symbol()))
	}
	lowered := src
	if !lowered.IsRuntime() {
		lowered = ip.Lower(src)
		if lowered.IsError() {
			return ip.Error()
		}
	}
	if def.Value.IsRuntime() {
		return ip.NewRuntime(ip.AST.Assign(dest.Loc(), env, dest.Symbol(), lowered.Runtime()))
	}
	current := ip.Lower(def.Value)
	if current.IsError() {
		return ip.Error()
	}
	def.Value = current
	return ip.NewRuntime(ip.AST.Define(dest.Loc(), env, dest.Symbol(), lowered.Runtime()))
}
