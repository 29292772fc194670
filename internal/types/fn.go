package types

import (
	"fmt"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types. Arg is always a product type
// holding the parameter types in order.
type FnInfo struct {
	Arg    TypeID
	Result TypeID
}

// RegisterFunction creates or finds a function type from arg product to result.
func (in *Interner) RegisterFunction(arg, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFunction {
			continue
		}
		if int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Arg == arg && info.Result == result {
			return id
		}
	}
	slot := in.appendFnInfo(FnInfo{Arg: arg, Result: result})
	return in.internRaw(Type{Kind: KindFunction, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}
