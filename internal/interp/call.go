package interp

import (
	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/types"
)

// loweredArg pairs a call argument with its contribution to the
// argument-product type. Function-valued arguments defer lowering until the
// product type pins their expected parameter types.
type loweredArg struct {
	value    Value
	deferred bool
}

// collectArgTypes walks the argument product, lowering every non-function
// argument and inventing a function-type skeleton of fresh variables for
// each function-valued one. Reports false on a lowering failure.
func (ip *Interp) collectArgTypes(args *ProductValue) ([]types.TypeID, []loweredArg, bool) {
	argts := make([]types.TypeID, 0, args.Size())
	lowered := make([]loweredArg, 0, args.Size())
	for _, a := range args.Values {
		if a.IsFunction() {
			inner := make([]types.TypeID, max(a.Function().Arity(), 0))
			for j := range inner {
				inner[j] = ip.Types.FreshVar()
			}
			argts = append(argts, ip.Types.RegisterFunction(
				ip.Types.RegisterProduct(inner), ip.Types.FreshVar()))
			lowered = append(lowered, loweredArg{value: a, deferred: true})
			continue
		}
		l := ip.Lower(a)
		if l.IsError() {
			return nil, nil, false
		}
		base, _ := ip.Types.RuntimeBase(l.Type())
		argts = append(argts, base)
		lowered = append(lowered, loweredArg{value: l})
	}
	return argts, lowered, true
}

// resolveArgNodes turns the lowered arguments into call-operand nodes,
// monomorphizing each deferred function argument at the parameter type the
// product deduced for it. Returns nil on failure (diagnostic already
// emitted where required).
func (ip *Interp) resolveArgNodes(argt types.TypeID, lowered []loweredArg) []*ast.Node {
	nodes := make([]*ast.Node, 0, len(lowered))
	for i, la := range lowered {
		if !la.deferred {
			nodes = append(nodes, la.value.Runtime())
			continue
		}
		member, _ := ip.Types.ProductMember(argt, i)
		t := ip.Types.Resolve(member)
		if ip.Types.Kind(t) != types.KindFunction || !ip.Types.Concrete(ip.mustFnArg(t)) {
			ip.report(diag.EvalCannotDeduceType, la.value.Loc(),
				"Could not deduce type for function parameter, resolved to '%s'.", ip.typeName(t))
			return nil
		}
		fnarg := ip.Types.Resolve(ip.mustFnArg(t))
		body := ip.monomorphize(la.value.Loc(), la.value.Function(), fnarg)
		if body == nil {
			return nil
		}
		nodes = append(nodes, body)
	}
	return nodes
}

func (ip *Interp) mustFnArg(t types.TypeID) types.TypeID {
	info, ok := ip.Types.FnInfo(t)
	if !ok {
		return types.NoTypeID
	}
	return info.Arg
}

// checkKeyword validates one keyword slot against its argument.
func (ip *Interp) checkKeyword(slot uint64, arg Value) bool {
	if !arg.IsSymbol() || arg.Symbol() != SlotName(slot) {
		ip.report(diag.EvalKeywordMismatch, arg.Loc(),
			"Expected keyword '%s'.", ip.Syms.Name(SlotName(slot)))
		return false
	}
	return true
}

// Call applies a function value to an argument product, choosing
// compile-time execution, built-in invocation, or runtime emission.
func (ip *Interp) Call(env *Env, function, arg Value) Value {
	if function.IsRuntime() {
		return ip.callRuntime(function, arg)
	}
	if !function.IsFunction() && !function.IsError() {
		return ip.report(diag.EvalNotProcedure, function.Loc(), "Called value is not a procedure.")
	}
	if !arg.IsProduct() && !arg.IsError() {
		return ip.report(diag.EvalArgsNotProduct, arg.Loc(), "Arguments not provided as a product.")
	}
	if function.IsError() || arg.IsError() {
		return ip.Error()
	}

	fn := function.Function()
	if fn.IsBuiltin() {
		return fn.Builtin()(ip, env, arg)
	}

	fnEnv := fn.Env()
	argc, arity := arg.Product().Size(), len(fn.Args())
	if argc != arity {
		return ip.report(diag.EvalArityMismatch, function.Loc(),
			"Procedure requires %d arguments, %d provided.", arity, argc)
	}

	runtimeCall := false
	for _, a := range arg.Product().Values {
		if a.IsRuntime() {
			runtimeCall = true
		}
	}
	ip.FindCalls(fn, fnEnv)
	if fn.Recursive() {
		runtimeCall = true
	}

	if runtimeCall {
		return ip.callUserRuntime(function, fn, arg)
	}

	// Eager call: keyword slots are compile-time assertions, positional
	// slots rewrite the parameter bindings in the function's own
	// environment, then the body evaluates in place.
	for i, slot := range fn.Args() {
		a := arg.Product().At(i)
		if IsKeywordSlot(slot) {
			if !ip.checkKeyword(slot, a) {
				return ip.Error()
			}
			continue
		}
		if def := fnEnv.Find(SlotName(slot)); def != nil {
			def.Value = a
		} else {
			fnEnv.Define(SlotName(slot), a)
		}
	}
	return ip.Eval(fnEnv, fn.Body())
}

// callRuntime emits a Call node around an already-runtime callee.
func (ip *Interp) callRuntime(function, arg Value) Value {
	if !arg.IsProduct() && !arg.IsError() {
		return ip.report(diag.EvalArgsNotProduct, arg.Loc(), "Arguments not provided as a product.")
	}
	if arg.IsError() {
		return ip.Error()
	}
	argts, lowered, ok := ip.collectArgTypes(arg.Product())
	if !ok {
		return ip.Error()
	}
	argt := ip.Types.RegisterProduct(argts)
	nodes := ip.resolveArgNodes(argt, lowered)
	if nodes == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.Call(function.Loc(), function.Runtime(), nodes))
}

// callUserRuntime monomorphizes a user-defined callee at the deduced
// argument-product type and emits a Call node against the specialized body.
func (ip *Interp) callUserRuntime(function Value, fn *FunctionValue, arg Value) Value {
	argts := make([]types.TypeID, 0, arg.Product().Size())
	lowered := make([]loweredArg, 0, arg.Product().Size())
	for i, slot := range fn.Args() {
		a := arg.Product().At(i)
		if IsKeywordSlot(slot) {
			if !ip.checkKeyword(slot, a) {
				return ip.Error()
			}
			// Keywords are validated but never emitted into the call.
			continue
		}
		if a.IsFunction() {
			inner := make([]types.TypeID, max(a.Function().Arity(), 0))
			for j := range inner {
				inner[j] = ip.Types.FreshVar()
			}
			argts = append(argts, ip.Types.RegisterFunction(
				ip.Types.RegisterProduct(inner), ip.Types.FreshVar()))
			lowered = append(lowered, loweredArg{value: a, deferred: true})
			continue
		}
		l := ip.Lower(a)
		if l.IsError() {
			return ip.Error()
		}
		base, _ := ip.Types.RuntimeBase(l.Type())
		argts = append(argts, base)
		lowered = append(lowered, loweredArg{value: l})
	}

	argt := ip.Types.RegisterProduct(argts)
	body := ip.monomorphize(function.Loc(), fn, argt)
	if body == nil {
		return ip.Error()
	}
	nodes := ip.resolveArgNodes(argt, lowered)
	if nodes == nil {
		return ip.Error()
	}
	return ip.NewRuntime(ip.AST.Call(function.Loc(), body, nodes))
}
