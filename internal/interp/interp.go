package interp

import (
	"fmt"

	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/source"
	"sage/internal/symbols"
	"sage/internal/types"
)

// New builds an evaluation unit with its own type lattice, symbol table and
// node builder, reporting diagnostics to r.
func New(r diag.Reporter) *Interp {
	if r == nil {
		r = diag.NopReporter{}
	}
	tin := types.NewInterner()
	ip := &Interp{
		Types:    tin,
		AST:      ast.NewBuilder(tin),
		Syms:     symbols.NewTable(),
		Reporter: r,
	}
	ip.root = ip.newPrelude()
	return ip
}

// Root returns the prelude environment the unit evaluates under.
func (ip *Interp) Root() *Env {
	return ip.root
}

// report emits exactly one diagnostic and returns the error sentinel.
// Inputs that are already errors never reach this; they short-circuit
// without further diagnostics.
func (ip *Interp) report(code diag.Code, sp source.Span, format string, args ...any) Value {
	diag.ReportError(ip.Reporter, code, sp, fmt.Sprintf(format, args...))
	return ip.Error()
}

// typeName renders a type for diagnostics.
func (ip *Interp) typeName(t types.TypeID) string {
	return ip.Types.String(t)
}
