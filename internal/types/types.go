package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindError
	KindInt
	KindBool
	KindSymbol
	KindType
	KindString
	KindList
	KindSum
	KindProduct
	KindFunction
	KindAlias
	KindMacro
	KindRuntime
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindError:
		return "error"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindType:
		return "type"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSum:
		return "sum"
	case KindProduct:
		return "product"
	case KindFunction:
		return "function"
	case KindAlias:
		return "alias"
	case KindMacro:
		return "macro"
	case KindRuntime:
		return "runtime"
	case KindVar:
		return "var"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Boxed reports whether values of this kind own a heap payload. Copying and
// destroying such values shares the payload.
func (k Kind) Boxed() bool {
	switch k {
	case KindString, KindList, KindSum, KindProduct, KindFunction, KindAlias, KindMacro, KindRuntime:
		return true
	default:
		return false
	}
}

// Type is a compact descriptor for any supported type. Elem carries the list
// element or runtime base; Payload indexes a side table for slotted kinds
// (sum, product, function, var) and holds the arity for macro types.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

// MakeList describes a list of the given element type.
func MakeList(elem TypeID) Type {
	return Type{Kind: KindList, Elem: elem}
}

// MakeRuntime describes a deferred value whose eventual type is base.
func MakeRuntime(base TypeID) Type {
	return Type{Kind: KindRuntime, Elem: base}
}

// MakeMacro describes a macro of the given arity.
func MakeMacro(arity uint32) Type {
	return Type{Kind: KindMacro, Payload: arity}
}
