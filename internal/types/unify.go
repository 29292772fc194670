package types

// Concrete reports whether no free type variable is reachable from id.
func (in *Interner) Concrete(id TypeID) bool {
	id = in.Resolve(id)
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindVar:
		return false
	case KindList, KindRuntime:
		return in.Concrete(tt.Elem)
	case KindSum:
		info, _ := in.SumInfo(id)
		for _, m := range info.Members {
			if !in.Concrete(m) {
				return false
			}
		}
		return true
	case KindProduct:
		info, _ := in.ProductInfo(id)
		for _, m := range info.Members {
			if !in.Concrete(m) {
				return false
			}
		}
		return true
	case KindFunction:
		info, _ := in.FnInfo(id)
		return in.Concrete(info.Arg) && in.Concrete(info.Result)
	default:
		return true
	}
}

// Unify makes a and b equal by binding free variables, reporting success.
// Bindings are permanent; callers only unify types they are committing to.
func (in *Interner) Unify(a, b TypeID) bool {
	a, b = in.Resolve(a), in.Resolve(b)
	if a == b {
		return true
	}
	ta, oka := in.Lookup(a)
	tb, okb := in.Lookup(b)
	if !oka || !okb {
		return false
	}
	if ta.Kind == KindVar {
		return in.BindVar(a, b)
	}
	if tb.Kind == KindVar {
		return in.BindVar(b, a)
	}
	if ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindList, KindRuntime:
		return in.Unify(ta.Elem, tb.Elem)
	case KindProduct:
		ia, _ := in.ProductInfo(a)
		ib, _ := in.ProductInfo(b)
		if len(ia.Members) != len(ib.Members) {
			return false
		}
		for i := range ia.Members {
			if !in.Unify(ia.Members[i], ib.Members[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		ia, _ := in.FnInfo(a)
		ib, _ := in.FnInfo(b)
		return in.Unify(ia.Arg, ib.Arg) && in.Unify(ia.Result, ib.Result)
	default:
		// Scalars and sums are interned, so distinct ids are distinct types.
		return false
	}
}

// Salts keep structurally similar kinds from colliding.
const (
	hashSaltList    uint64 = 9572917161082946201
	hashSaltSum     uint64 = 7458465441398727979
	hashSaltProduct uint64 = 16629385277682082909
	hashSaltFn      uint64 = 10916307465547805281
	hashSaltRuntime uint64 = 5857289404596606329
)

// Hash returns a structural hash for a type. Equal ids hash equally; since
// descriptors are interned the id itself is already a perfect key, but the
// hash is stable across interners with the same registration order.
func (in *Interner) Hash(id TypeID) uint64 {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch tt.Kind {
	case KindList:
		return in.Hash(tt.Elem) ^ hashSaltList
	case KindRuntime:
		return in.Hash(tt.Elem) ^ hashSaltRuntime
	case KindSum:
		h := hashSaltSum
		info, _ := in.SumInfo(id)
		for _, m := range info.Members {
			h ^= in.Hash(m)
		}
		return h
	case KindProduct:
		h := hashSaltProduct
		info, _ := in.ProductInfo(id)
		for i, m := range info.Members {
			h ^= mix(in.Hash(m), uint64(i))
		}
		return h
	case KindFunction:
		info, _ := in.FnInfo(id)
		return hashSaltFn ^ mix(in.Hash(info.Arg), 1) ^ mix(in.Hash(info.Result), 2)
	case KindVar:
		return mix(uint64(id), uint64(tt.Payload))
	default:
		return mix(uint64(tt.Kind), 0x9e3779b97f4a7c15)
	}
}

func mix(h, salt uint64) uint64 {
	h ^= salt
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}
