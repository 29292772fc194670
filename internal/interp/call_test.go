package interp_test

import (
	"testing"

	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/types"
)

func TestEagerCall(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	fn := defineFn(t, ip, env, "f", form(ip, sym(ip, "x")),
		form(ip, sym(ip, "+"), sym(ip, "x"), num(ip, 1)))

	v := ip.Eval(env, form(ip, sym(ip, "f"), num(ip, 10)))
	wantInt(t, ip, v, 11)
	if fn.Instantiations() != 0 {
		t.Fatalf("an eager call must not monomorphize")
	}
	wantNoDiags(t, bag)
}

func TestRuntimeCallMonomorphizes(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	fn := defineFn(t, ip, env, "f", form(ip, sym(ip, "x")),
		form(ip, sym(ip, "+"), sym(ip, "x"), num(ip, 1)))

	fv := env.Find(ip.Syms.Value("f")).Value
	rt := ip.NewRuntime(ip.AST.Int(noSpan, 10))
	res := ip.Call(env, fv, ip.Product(noSpan, rt))
	wantNoDiags(t, bag)
	if !res.IsRuntime() {
		t.Fatalf("expected runtime result, got %s", ip.Format(res))
	}

	call := res.Runtime()
	if call.Kind != ast.KindCall {
		t.Fatalf("expected Call node, got %v", call.Kind)
	}
	callee, arg := call.Kids[0], call.Kids[1]
	if callee.Kind != ast.KindFunction {
		t.Fatalf("callee = %v, want Function", callee.Kind)
	}
	if arg.Kind != ast.KindInt || arg.Int != 10 {
		t.Fatalf("argument node = %v %d", arg.Kind, arg.Int)
	}

	argType := ip.Types.RegisterProduct([]types.TypeID{ip.Types.Builtins().Int})
	if callee.ArgType != argType {
		t.Fatalf("callee arg type = %s", ip.Types.String(callee.ArgType))
	}
	body := callee.Kids[0]
	if body.Kind != ast.KindBinaryMath || body.Math != ast.Add {
		t.Fatalf("monomorphized body = %v", body.Kind)
	}
	if body.Kids[0].Kind != ast.KindSymbol || body.Kids[0].Sym != ip.Syms.Value("x") {
		t.Fatalf("lhs of body should reference x, got %v", body.Kids[0].Kind)
	}
	if body.Kids[1].Kind != ast.KindInt || body.Kids[1].Int != 1 {
		t.Fatalf("rhs of body = %v", body.Kids[1].Kind)
	}

	if fn.Instantiations() != 1 {
		t.Fatalf("cache holds %d entries, want 1", fn.Instantiations())
	}
	if fn.Instantiation(argType) != callee {
		t.Fatalf("cache entry is not the emitted callee")
	}
}

func TestSecondCallReusesInstantiation(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	fn := defineFn(t, ip, env, "f", form(ip, sym(ip, "x")),
		form(ip, sym(ip, "+"), sym(ip, "x"), num(ip, 1)))

	fv := env.Find(ip.Syms.Value("f")).Value
	first := ip.Call(env, fv, ip.Product(noSpan, ip.NewRuntime(ip.AST.Int(noSpan, 1))))
	second := ip.Call(env, fv, ip.Product(noSpan, ip.NewRuntime(ip.AST.Int(noSpan, 2))))
	wantNoDiags(t, bag)

	if first.Runtime().Kids[0] != second.Runtime().Kids[0] {
		t.Fatalf("the cached body must be reused by pointer identity")
	}
	if fn.Instantiations() != 1 {
		t.Fatalf("cache holds %d entries, want 1", fn.Instantiations())
	}
}

func TestDistinctArgTypesInstantiateSeparately(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	fn := defineFn(t, ip, env, "id", form(ip, sym(ip, "x")), sym(ip, "x"))

	fv := env.Find(ip.Syms.Value("id")).Value
	ip.Call(env, fv, ip.Product(noSpan, ip.NewRuntime(ip.AST.Int(noSpan, 1))))
	ip.Call(env, fv, ip.Product(noSpan, ip.NewRuntime(ip.AST.String(noSpan, "s"))))
	wantNoDiags(t, bag)
	if fn.Instantiations() != 2 {
		t.Fatalf("cache holds %d entries, want 2", fn.Instantiations())
	}
}

func TestRecursiveFunctionForcesRuntime(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	// g(n) = if (empty? n) 0 else 1 + g(tail n)
	body := form(ip, sym(ip, "if"),
		form(ip, sym(ip, "empty?"), sym(ip, "n")),
		num(ip, 0),
		form(ip, sym(ip, "+"), num(ip, 1),
			form(ip, sym(ip, "g"), form(ip, sym(ip, "tail"), sym(ip, "n")))))
	fn := defineFn(t, ip, env, "g", form(ip, sym(ip, "n")), body)

	res := ip.Eval(env, form(ip, sym(ip, "g"), form(ip, sym(ip, "list"), num(ip, 1))))
	wantNoDiags(t, bag)
	if !fn.Recursive() {
		t.Fatalf("g must be detected as recursive")
	}
	if !res.IsRuntime() || res.Runtime().Kind != ast.KindCall {
		t.Fatalf("a recursive call must emit a Call node, got %s", ip.Format(res))
	}

	callee := res.Runtime().Kids[0]
	if callee.Kind != ast.KindFunction {
		t.Fatalf("callee = %v, want Function", callee.Kind)
	}
	// The recursive site inside the body resolves to the placeholder.
	ifNode := callee.Kids[0]
	if ifNode.Kind != ast.KindIf {
		t.Fatalf("body = %v, want If", ifNode.Kind)
	}
	addNode := ifNode.Kids[2]
	if addNode.Kind != ast.KindBinaryMath {
		t.Fatalf("else arm = %v, want BinaryMath", addNode.Kind)
	}
	recCall := addNode.Kids[1]
	if recCall.Kind != ast.KindCall {
		t.Fatalf("recursive site = %v, want Call", recCall.Kind)
	}
	if recCall.Kids[0].Kind != ast.KindIncompleteFn {
		t.Fatalf("recursive callee = %v, want IncompleteFn", recCall.Kids[0].Kind)
	}
}

func TestRecursiveCallWithConcreteArgsStaysRuntime(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	body := form(ip, sym(ip, "if"),
		form(ip, sym(ip, "empty?"), sym(ip, "n")),
		num(ip, 0),
		form(ip, sym(ip, "+"), num(ip, 1),
			form(ip, sym(ip, "g"), form(ip, sym(ip, "tail"), sym(ip, "n")))))
	defineFn(t, ip, env, "g", form(ip, sym(ip, "n")), body)

	first := ip.Eval(env, form(ip, sym(ip, "g"), form(ip, sym(ip, "list"), num(ip, 1))))
	second := ip.Eval(env, form(ip, sym(ip, "g"), form(ip, sym(ip, "list"), num(ip, 2))))
	wantNoDiags(t, bag)
	if !first.IsRuntime() || !second.IsRuntime() {
		t.Fatalf("every call to a recursive function is a runtime call")
	}
}

func TestArityMismatch(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	defineFn(t, ip, env, "f", form(ip, sym(ip, "x")),
		form(ip, sym(ip, "+"), sym(ip, "x"), num(ip, 1)))
	v := ip.Eval(env, form(ip, sym(ip, "f"), num(ip, 1), num(ip, 2)))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalArityMismatch)
}

func TestCallNonProcedure(t *testing.T) {
	ip, bag := newTestInterp(t)
	v := ip.Call(ip.Root(), num(ip, 3), ip.Product(noSpan, num(ip, 1)))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalNotProcedure)
}

func TestCallArgsMustBeProduct(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	defineFn(t, ip, env, "f", form(ip, sym(ip, "x")), sym(ip, "x"))
	fv := env.Find(ip.Syms.Value("f")).Value
	v := ip.Call(env, fv, num(ip, 1))
	if !v.IsError() {
		t.Fatalf("expected error, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalArgsNotProduct)
}

func TestKeywordSlots(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	// f = (lambda (x 'of y) (+ x y)) — the middle slot demands the keyword of.
	params := form(ip, sym(ip, "x"), quoted(ip, sym(ip, "of")), sym(ip, "y"))
	defineFn(t, ip, env, "f", params,
		form(ip, sym(ip, "+"), sym(ip, "x"), sym(ip, "y")))

	v := ip.Eval(env, form(ip, sym(ip, "f"),
		num(ip, 1), quoted(ip, sym(ip, "of")), num(ip, 2)))
	wantInt(t, ip, v, 3)
	wantNoDiags(t, bag)

	bad := ip.Eval(env, form(ip, sym(ip, "f"),
		num(ip, 1), quoted(ip, sym(ip, "with")), num(ip, 2)))
	if !bad.IsError() {
		t.Fatalf("wrong keyword must fail, got %s", ip.Format(bad))
	}
	wantOneDiag(t, bag, diag.EvalKeywordMismatch)
}

func TestKeywordOmittedFromRuntimeCall(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	params := form(ip, sym(ip, "x"), quoted(ip, sym(ip, "of")), sym(ip, "y"))
	defineFn(t, ip, env, "f", params,
		form(ip, sym(ip, "+"), sym(ip, "x"), sym(ip, "y")))

	fv := env.Find(ip.Syms.Value("f")).Value
	res := ip.Call(env, fv, ip.Product(noSpan,
		ip.NewRuntime(ip.AST.Int(noSpan, 1)),
		sym(ip, "of"),
		num(ip, 2)))
	wantNoDiags(t, bag)
	if !res.IsRuntime() {
		t.Fatalf("expected runtime call, got %s", ip.Format(res))
	}
	// Callee plus the two positional arguments; the keyword is asserted,
	// not emitted.
	if got := len(res.Runtime().Kids); got != 3 {
		t.Fatalf("call node carries %d children, want 3", got)
	}
}

func TestHigherOrderRuntimeCall(t *testing.T) {
	ip, bag := newTestInterp(t)
	env := ip.Root()
	// apply(f, x) = f(x); id(x) = x
	defineFn(t, ip, env, "apply",
		form(ip, sym(ip, "fun"), sym(ip, "x")),
		form(ip, sym(ip, "fun"), sym(ip, "x")))
	idFn := defineFn(t, ip, env, "id", form(ip, sym(ip, "x")), sym(ip, "x"))

	applyV := env.Find(ip.Syms.Value("apply")).Value
	idV := env.Find(ip.Syms.Value("id")).Value
	res := ip.Call(env, applyV, ip.Product(noSpan,
		idV, ip.NewRuntime(ip.AST.Int(noSpan, 5))))
	wantNoDiags(t, bag)
	if !res.IsRuntime() || res.Runtime().Kind != ast.KindCall {
		t.Fatalf("expected Call node, got %s", ip.Format(res))
	}
	// The function-valued argument is passed as its monomorphized body.
	fnArg := res.Runtime().Kids[1]
	if fnArg.Kind != ast.KindFunction {
		t.Fatalf("function argument node = %v, want Function", fnArg.Kind)
	}
	if idFn.Instantiations() != 1 {
		t.Fatalf("the passed function must be monomorphized once, got %d", idFn.Instantiations())
	}
}
