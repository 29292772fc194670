package interp_test

import (
	"testing"

	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/interp"
)

func TestLowerIsIdempotent(t *testing.T) {
	ip, _ := newTestInterp(t)
	once := ip.Lower(num(ip, 5))
	twice := ip.Lower(once)
	if !interp.Equal(once, twice) {
		t.Fatalf("lowering a runtime value must be the identity")
	}
	if once.Runtime() != twice.Runtime() {
		t.Fatalf("identity lowering must preserve the node pointer")
	}
}

func TestLowerScalars(t *testing.T) {
	ip, bag := newTestInterp(t)
	cases := []struct {
		v    interp.Value
		kind ast.Kind
	}{
		{ip.Void(noSpan), ast.KindVoid},
		{num(ip, 3), ast.KindInt},
		{boolean(ip, true), ast.KindBool},
		{sym(ip, "s"), ast.KindSymbol},
		{str(ip, "text"), ast.KindString},
	}
	for _, tc := range cases {
		l := ip.Lower(tc.v)
		if !l.IsRuntime() || l.Runtime().Kind != tc.kind {
			t.Fatalf("lower(%s) node = %v, want %v", ip.Format(tc.v), l.Runtime().Kind, tc.kind)
		}
	}
	wantNoDiags(t, bag)
}

func TestLowerListRightFold(t *testing.T) {
	ip, _ := newTestInterp(t)
	l := ip.Lower(ip.ListOf(noSpan, num(ip, 1), num(ip, 2)))
	n := l.Runtime()
	if n.Kind != ast.KindCons || n.Kids[0].Int != 1 {
		t.Fatalf("outer cell = %v", n.Kind)
	}
	inner := n.Kids[1]
	if inner.Kind != ast.KindCons || inner.Kids[0].Int != 2 {
		t.Fatalf("inner cell = %v", inner.Kind)
	}
	if inner.Kids[1].Kind != ast.KindVoid {
		t.Fatalf("chain must terminate in Void, got %v", inner.Kids[1].Kind)
	}
}

func TestLowerErrorBecomesSingleton(t *testing.T) {
	ip, bag := newTestInterp(t)
	l := ip.Lower(ip.Error())
	if !l.IsRuntime() || l.Runtime().Kind != ast.KindSingleton {
		t.Fatalf("lower(error) = %s", ip.Format(l))
	}
	if l.Runtime().Type != ip.Types.Builtins().Error {
		t.Fatalf("singleton type = %s", ip.Types.String(l.Runtime().Type))
	}
	wantNoDiags(t, bag)
}

func TestLowerRejectsFunctions(t *testing.T) {
	ip, bag := newTestInterp(t)
	defineFn(t, ip, ip.Root(), "f", form(ip, sym(ip, "x")), sym(ip, "x"))
	v := ip.Lower(ip.Root().Find(ip.Syms.Value("f")).Value)
	if !v.IsError() {
		t.Fatalf("functions must not lower, got %s", ip.Format(v))
	}
	wantOneDiag(t, bag, diag.EvalUnlowerable)
}
