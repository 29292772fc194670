package types

import (
	"fmt"

	"fortio.org/safecast"
)

// VarInfo stores the binding slot of a type variable. Actual is NoTypeID
// while the variable is free.
type VarInfo struct {
	Actual TypeID
}

// FreshVar creates a new, unbound type variable. Variables are never
// deduplicated: every call mints a distinct identity.
func (in *Interner) FreshVar() TypeID {
	in.vars = append(in.vars, VarInfo{})
	slot, err := safecast.Conv[uint32](len(in.vars) - 1)
	if err != nil {
		panic(fmt.Errorf("var info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindVar, Payload: slot})
}

// VarActual returns the binding of a type variable (NoTypeID when free).
func (in *Interner) VarActual(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindVar {
		return NoTypeID, false
	}
	if int(tt.Payload) >= len(in.vars) {
		return NoTypeID, false
	}
	return in.vars[tt.Payload].Actual, true
}

// BindVar binds a free type variable to actual. Rebinding to the same type
// is a no-op; rebinding to a different type reports false.
func (in *Interner) BindVar(id, actual TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindVar || int(tt.Payload) >= len(in.vars) {
		return false
	}
	slot := &in.vars[tt.Payload]
	if slot.Actual != NoTypeID {
		return slot.Actual == actual
	}
	slot.Actual = actual
	return true
}

// Resolve follows bound variable chains until a non-variable or a free
// variable is reached.
func (in *Interner) Resolve(id TypeID) TypeID {
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindVar {
			return id
		}
		actual := in.vars[tt.Payload].Actual
		if actual == NoTypeID {
			return id
		}
		id = actual
	}
}
