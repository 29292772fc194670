package interp

import (
	"sage/internal/ast"
	"sage/internal/diag"
)

// Special form names, interned lazily per table.
type specials struct {
	def    uint64
	lambda uint64
	macro  uint64
	ifSym  uint64
	do     uint64
	let    uint64
	quote  uint64
	set    uint64
}

func (ip *Interp) specials() specials {
	if ip.forms != nil {
		return *ip.forms
	}
	ip.forms = &specials{
		def:    uint64(ip.Syms.Value("def")),
		lambda: uint64(ip.Syms.Value("lambda")),
		macro:  uint64(ip.Syms.Value("macro")),
		ifSym:  uint64(ip.Syms.Value("if")),
		do:     uint64(ip.Syms.Value("do")),
		let:    uint64(ip.Syms.Value("let")),
		quote:  uint64(ip.Syms.Value("quote")),
		set:    uint64(ip.Syms.Value("set!")),
	}
	return *ip.forms
}

// IntroducesEnv reports whether the term opens a new lexical scope (or
// shields its interior from evaluation), which stops call-graph descent.
func IntroducesEnv(ip *Interp, term Value) bool {
	if !term.IsList() {
		return false
	}
	h := term.List().Head
	if !h.IsSymbol() {
		return false
	}
	s := ip.specials()
	switch uint64(h.Symbol()) {
	case s.lambda, s.macro, s.let, s.quote:
		return true
	}
	return false
}

// Eval evaluates a term. Literals and runtime handles self-evaluate,
// symbols resolve through the environment, lists apply special forms or
// dispatch a call.
func (ip *Interp) Eval(env *Env, term Value) Value {
	switch {
	case term.IsSymbol():
		def := env.Find(term.Symbol())
		if def == nil {
			return ip.report(diag.EvalUndefinedVariable, term.Loc(),
				"Undefined variable '%s'.", ip.Syms.Name(term.Symbol()))
		}
		// A binding holding a Singleton stand-in is a runtime parameter:
		// reads become variable references typed as the parameter type.
		if def.Value.IsRuntime() && def.Value.Runtime().Kind == ast.KindSingleton {
			return ip.NewRuntime(ip.AST.VarRef(term.Loc(), term.Symbol(), def.Value.Runtime().Type))
		}
		return def.Value.WithLoc(term.Loc())
	case term.IsList():
		return ip.evalList(env, term)
	default:
		return term
	}
}

func (ip *Interp) evalList(env *Env, term Value) Value {
	h := term.List().Head
	if h.IsSymbol() {
		s := ip.specials()
		switch uint64(h.Symbol()) {
		case s.def:
			return ip.evalDef(env, term)
		case s.lambda:
			return ip.evalLambda(env, term)
		case s.macro:
			return ip.evalMacro(env, term)
		case s.ifSym:
			return ip.evalIf(env, term)
		case s.do:
			return ip.evalDo(env, term)
		case s.let:
			return ip.evalLet(env, term)
		case s.quote:
			rest := term.List().Tail
			if !rest.IsList() {
				return ip.Void(term.Loc())
			}
			return rest.List().Head
		case s.set:
			return ip.evalSet(env, term)
		}
	}

	callee := ip.Eval(env, h)
	if callee.IsMacro() {
		return ip.applyMacro(env, callee, term)
	}
	args := ToVector(term.List().Tail)
	evaled := make([]Value, len(args))
	for i, a := range args {
		evaled[i] = ip.Eval(env, a)
	}
	return ip.Call(env, callee, ip.Product(term.Loc(), evaled...))
}

func (ip *Interp) formArgs(term Value) []Value {
	return ToVector(term.List().Tail)
}

func (ip *Interp) evalDef(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) != 2 || !args[0].IsSymbol() {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (def name expr).")
	}
	v := ip.Eval(env, args[1])
	if v.IsError() {
		return ip.Error()
	}
	if v.IsFunction() && v.Function().Name() == NoFnName {
		v.Function().SetName(int64(args[0].Symbol()))
	}
	env.Define(args[0].Symbol(), v)
	return v
}

// evalLambda builds a function value. The parameter list accepts plain
// symbols (positional slots) and quoted symbols (keyword slots). The
// function's environment is a child of the defining scope holding a slot
// per positional parameter, which call dispatch rewrites in place.
func (ip *Interp) evalLambda(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) < 2 {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (lambda (params...) body...).")
	}
	slots, ok := ip.paramSlots(args[0])
	if !ok {
		return ip.Error()
	}
	fnEnv := env.Child()
	for _, slot := range slots {
		if !IsKeywordSlot(slot) {
			fnEnv.Define(SlotName(slot), ip.Void(term.Loc()))
		}
	}
	body := ip.formBody(term, args[1:])
	return ip.NewFunction(term.Loc(), NewFunctionValue(fnEnv, slots, body, NoFnName))
}

func (ip *Interp) evalMacro(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) < 2 {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (macro (params...) body...).")
	}
	slots, ok := ip.paramSlots(args[0])
	if !ok {
		return ip.Error()
	}
	mEnv := env.Child()
	for _, slot := range slots {
		if !IsKeywordSlot(slot) {
			mEnv.Define(SlotName(slot), ip.Void(term.Loc()))
		}
	}
	body := ip.formBody(term, args[1:])
	return ip.NewMacro(term.Loc(), NewMacroValue(mEnv, slots, body))
}

// paramSlots reads a parameter list: symbols become positional slots,
// quoted symbols keyword slots.
func (ip *Interp) paramSlots(list Value) ([]uint64, bool) {
	var slots []uint64
	quote := ip.Syms.Value("quote")
	for _, p := range ToVector(list) {
		switch {
		case p.IsSymbol():
			slots = append(slots, PositionalSlot(p.Symbol()))
		case p.IsList():
			elems := ToVector(p)
			if len(elems) == 2 && elems[0].IsSymbol() && elems[0].Symbol() == quote && elems[1].IsSymbol() {
				slots = append(slots, KeywordSlot(elems[1].Symbol()))
				continue
			}
			ip.report(diag.EvalBadSpecialForm, p.Loc(), "Invalid parameter '%s'.", ip.Format(p))
			return nil, false
		default:
			ip.report(diag.EvalBadSpecialForm, p.Loc(), "Invalid parameter '%s'.", ip.Format(p))
			return nil, false
		}
	}
	return slots, true
}

// formBody wraps multi-form bodies in an implicit do.
func (ip *Interp) formBody(term Value, forms []Value) Value {
	if len(forms) == 1 {
		return forms[0]
	}
	doSym := ip.SymbolID(term.Loc(), ip.Syms.Value("do"))
	return ip.ListOf(term.Loc(), append([]Value{doSym}, forms...)...)
}

// evalIf is eager on a concrete condition; a runtime condition lowers both
// arms and emits an If node.
func (ip *Interp) evalIf(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) != 3 {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (if cond then else).")
	}
	cond := ip.Eval(env, args[0])
	if cond.IsError() {
		return ip.Error()
	}
	if cond.IsRuntime() {
		thenV := ip.Eval(env, args[1])
		elseV := ip.Eval(env, args[2])
		if thenV.IsError() || elseV.IsError() {
			return ip.Error()
		}
		t, e := ip.lowerNode(thenV), ip.lowerNode(elseV)
		if t == nil || e == nil {
			return ip.Error()
		}
		return ip.NewRuntime(ip.AST.If(term.Loc(), cond.Runtime(), t, e))
	}
	if !cond.IsBool() {
		return ip.report(diag.EvalTypeMismatch, cond.Loc(),
			"Expected boolean value in conditional, given '%s'.", ip.typeName(cond.Type()))
	}
	if cond.Bool() {
		return ip.Eval(env, args[1])
	}
	return ip.Eval(env, args[2])
}

func (ip *Interp) evalDo(env *Env, term Value) Value {
	result := ip.Void(term.Loc())
	for _, form := range ip.formArgs(term) {
		result = ip.Eval(env, form)
	}
	return result
}

func (ip *Interp) evalLet(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) < 2 || !(args[0].IsList() || args[0].IsVoid()) {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (let ((name expr)...) body...).")
	}
	child := env.Child()
	for _, binding := range ToVector(args[0]) {
		elems := ToVector(binding)
		if len(elems) != 2 || !elems[0].IsSymbol() {
			return ip.report(diag.EvalBadSpecialForm, binding.Loc(),
				"Invalid let binding '%s'.", ip.Format(binding))
		}
		v := ip.Eval(child, elems[1])
		if v.IsError() {
			return ip.Error()
		}
		child.Define(elems[0].Symbol(), v)
	}
	return ip.Eval(child, ip.formBody(term, args[1:]))
}

func (ip *Interp) evalSet(env *Env, term Value) Value {
	args := ip.formArgs(term)
	if len(args) != 2 {
		return ip.report(diag.EvalBadSpecialForm, term.Loc(), "Expected (set! name expr).")
	}
	src := ip.Eval(env, args[1])
	if src.IsError() {
		return ip.Error()
	}
	return ip.Assign(env, args[0], src)
}

// applyMacro binds the unevaluated argument terms to the macro's slots,
// evaluates the body to an expansion, then evaluates the expansion in the
// caller's scope.
func (ip *Interp) applyMacro(env *Env, callee, term Value) Value {
	m := callee.Macro()
	args := ToVector(term.List().Tail)
	if m.IsBuiltin() {
		return m.Builtin()(ip, env, ip.Product(term.Loc(), args...))
	}
	if len(args) != len(m.Args()) {
		return ip.report(diag.EvalArityMismatch, term.Loc(),
			"Macro requires %d arguments, %d provided.", len(m.Args()), len(args))
	}
	mEnv := m.Env().Clone()
	for i, slot := range m.Args() {
		if IsKeywordSlot(slot) {
			if !ip.checkKeyword(slot, args[i]) {
				return ip.Error()
			}
			continue
		}
		if def := mEnv.Find(SlotName(slot)); def != nil {
			def.Value = args[i]
		} else {
			mEnv.Define(SlotName(slot), args[i])
		}
	}
	expansion := ip.Eval(mEnv, ip.Clone(m.Body()))
	if expansion.IsError() {
		return ip.Error()
	}
	return ip.Eval(env, expansion)
}
