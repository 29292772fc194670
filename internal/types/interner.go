package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every program needs.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Error   TypeID
	Int     TypeID
	Bool    TypeID
	Symbol  TypeID
	Type    TypeID
	String  TypeID
	Alias   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Descriptor identity is TypeID identity: two structurally equal types
// always intern to the same id, so equality and map keys use the id alone.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	sums     []SumInfo
	products []ProductInfo
	fns      []FnInfo
	vars     []VarInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.sums = append(in.sums, SumInfo{}) // reserve 0 as invalid sentinel
	in.products = append(in.products, ProductInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.vars = append(in.vars, VarInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Symbol = in.Intern(Type{Kind: KindSymbol})
	in.builtins.Type = in.Intern(Type{Kind: KindType})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Alias = in.Intern(Type{Kind: KindAlias})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind for a TypeID (KindInvalid for unknown ids).
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// RegisterList creates or finds the list type over elem.
func (in *Interner) RegisterList(elem TypeID) TypeID {
	return in.Intern(MakeList(elem))
}

// ListElem returns the element type of a list TypeID.
func (in *Interner) ListElem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindList {
		return NoTypeID, false
	}
	return tt.Elem, true
}

// RegisterRuntime creates or finds the runtime type over base.
func (in *Interner) RegisterRuntime(base TypeID) TypeID {
	return in.Intern(MakeRuntime(base))
}

// RuntimeBase returns the eventual value type of a runtime TypeID.
func (in *Interner) RuntimeBase(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRuntime {
		return NoTypeID, false
	}
	return tt.Elem, true
}

// RegisterMacro creates or finds the macro type of the given arity.
func (in *Interner) RegisterMacro(arity uint32) TypeID {
	return in.Intern(MakeMacro(arity))
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}
