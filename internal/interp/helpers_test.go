package interp_test

import (
	"testing"

	"sage/internal/diag"
	"sage/internal/interp"
	"sage/internal/source"
)

func newTestInterp(t *testing.T) (*interp.Interp, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	return interp.New(diag.BagReporter{Bag: bag}), bag
}

var noSpan = source.Span{}

func sym(ip *interp.Interp, name string) interp.Value {
	return ip.Symbol(noSpan, name)
}

func num(ip *interp.Interp, v int64) interp.Value {
	return ip.Int(noSpan, v)
}

func boolean(ip *interp.Interp, v bool) interp.Value {
	return ip.Bool(noSpan, v)
}

func str(ip *interp.Interp, s string) interp.Value {
	return ip.String(noSpan, s)
}

func form(ip *interp.Interp, elems ...interp.Value) interp.Value {
	return ip.ListOf(noSpan, elems...)
}

// quoted builds (quote v).
func quoted(ip *interp.Interp, v interp.Value) interp.Value {
	return form(ip, sym(ip, "quote"), v)
}

// defineFn evaluates (def name (lambda params body)) and returns the
// function payload.
func defineFn(t *testing.T, ip *interp.Interp, env *interp.Env, name string, params, body interp.Value) *interp.FunctionValue {
	t.Helper()
	v := ip.Eval(env, form(ip, sym(ip, "def"), sym(ip, name),
		form(ip, sym(ip, "lambda"), params, body)))
	if !v.IsFunction() {
		t.Fatalf("defining %s did not produce a function: %s", name, ip.Format(v))
	}
	return v.Function()
}

func wantInt(t *testing.T, ip *interp.Interp, v interp.Value, want int64) {
	t.Helper()
	if !v.IsInt() || v.Int() != want {
		t.Fatalf("got %s, want %d", ip.Format(v), want)
	}
}

func wantBool(t *testing.T, ip *interp.Interp, v interp.Value, want bool) {
	t.Helper()
	if !v.IsBool() || v.Bool() != want {
		t.Fatalf("got %s, want %v", ip.Format(v), want)
	}
}

func wantNoDiags(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func wantOneDiag(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d: %+v", bag.Len(), bag.Items())
	}
	if got := bag.Items()[0].Code; got != code {
		t.Fatalf("diagnostic code = %v, want %v", got, code)
	}
}
