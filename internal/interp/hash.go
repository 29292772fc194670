package interp

import (
	"hash/maphash"
	"reflect"
)

// Per-kind salts keep same-shaped payloads from colliding across
// constructors.
const (
	saltVoid    uint64 = 11103515024943898793
	saltError   uint64 = 14933118315469276343
	saltInt     uint64 = 6909969109598810741
	saltSymbol  uint64 = 1899430078708870091
	saltString  uint64 = 1276873522146073541
	saltTrue    uint64 = 9269586835432337327
	saltFalse   uint64 = 18442604092978916717
	saltList    uint64 = 9572917161082946201
	saltSum     uint64 = 7458465441398727979
	saltProduct uint64 = 16629385277682082909
	saltFn      uint64 = 10916307465547805281
	saltAlias   uint64 = 6860110315984869641
	saltMacro   uint64 = 16414641732770006573
)

var hashSeed = maphash.MakeSeed()

func hashUint64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

func hashString(s string) uint64 {
	return maphash.String(hashSeed, s)
}

func hashPointer(p any) uint64 {
	return hashUint64(uint64(reflect.ValueOf(p).Pointer()))
}

// Hash depends only on observable structural identity: equal values hash
// equally.
func (ip *Interp) Hash(v Value) uint64 {
	switch {
	case v.IsVoid():
		return saltVoid
	case v.IsError():
		return saltError
	case v.IsInt():
		return hashUint64(uint64(v.Int())) ^ saltInt
	case v.IsSymbol():
		return hashUint64(uint64(v.Symbol())) ^ saltSymbol
	case v.IsString():
		return hashString(v.Str().Value()) ^ saltString
	case v.IsType():
		return ip.Types.Hash(v.TypeValue())
	case v.IsBool():
		if v.Bool() {
			return saltTrue
		}
		return saltFalse
	case v.IsList():
		h := saltList
		ptr := v
		for ptr.IsList() {
			h ^= ip.Hash(ptr.List().Head)
			ptr = ptr.List().Tail
		}
		return h
	case v.IsSum():
		return ip.Hash(v.Sum().Value) ^ saltSum
	case v.IsProduct():
		h := saltProduct
		for _, member := range v.Product().Values {
			h ^= ip.Hash(member)
		}
		return h
	case v.IsFunction():
		h := saltFn
		fn := v.Function()
		if fn.IsBuiltin() {
			h ^= hashPointer(fn.Builtin()) ^ hashUint64(uint64(fn.Name()))
		} else {
			h ^= ip.Hash(fn.Body())
			for _, arg := range fn.Args() {
				h ^= hashUint64(arg)
			}
		}
		return h
	case v.IsAlias():
		return saltAlias
	case v.IsMacro():
		h := saltMacro
		m := v.Macro()
		if m.IsBuiltin() {
			h ^= hashPointer(m.Builtin())
		} else {
			h ^= ip.Hash(m.Body())
			for _, arg := range m.Args() {
				h ^= hashUint64(arg)
			}
		}
		return h
	case v.IsRuntime():
		return ip.Types.Hash(v.Type()) ^ hashPointer(v.Runtime())
	}
	return 0
}
