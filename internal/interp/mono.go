package interp

import (
	"sage/internal/ast"
	"sage/internal/source"
	"sage/internal/symbols"
	"sage/internal/types"
)

// instantiate produces the specialized body of fn for one argument-product
// type: the captured environment is cloned and flagged runtime, positional
// parameters are bound to Singleton stand-ins of the member types, and the
// cloned body is re-evaluated so every primitive it touches lowers itself.
// Returns nil when the body evaluation failed.
//
// Callers must have installed an IncompleteFn placeholder under
// fn.insts[argsType] first, so recursive calls inside the body resolve to a
// legal handle instead of re-entering. The real body replaces the
// placeholder on success.
func (ip *Interp) instantiate(sp source.Span, fn *FunctionValue, argsType types.TypeID) *ast.Node {
	newEnv := fn.Env().Clone()
	newEnv.MakeRuntime()
	j := 0
	var params []symbols.SymbolID
	for _, slot := range fn.Args() {
		if IsKeywordSlot(slot) {
			continue
		}
		name := SlotName(slot)
		member, ok := ip.Types.ProductMember(argsType, j)
		if !ok {
			return nil
		}
		stand := ip.NewRuntime(ip.AST.Singleton(sp, member))
		if def := newEnv.Find(name); def != nil {
			def.Value = stand
		} else {
			newEnv.Define(name, stand)
		}
		j++
		params = append(params, name)
	}
	cloned := ip.Clone(fn.Body())
	v := ip.Eval(newEnv, cloned)
	if v.IsError() {
		return nil
	}
	if !v.IsRuntime() {
		v = ip.Lower(v)
		if v.IsError() {
			return nil
		}
	}
	result := ip.AST.Function(sp, newEnv, argsType, params, v.Runtime(), fn.Name())
	fn.Instantiate(argsType, result)
	return result
}

// monomorphize consults the cache and runs the placeholder-then-instantiate
// dance when the entry is missing. Returns nil on failure.
func (ip *Interp) monomorphize(sp source.Span, fn *FunctionValue, argsType types.TypeID) *ast.Node {
	body := fn.Instantiation(argsType)
	if body == nil {
		fn.Instantiate(argsType, ip.AST.IncompleteFn(sp, argsType, fn.Name()))
		body = ip.instantiate(sp, fn, argsType)
	}
	return body
}
