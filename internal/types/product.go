package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// ProductInfo stores the member types for a product type, in order.
type ProductInfo struct {
	Members []TypeID
}

// RegisterProduct creates or finds a product type with the given members.
func (in *Interner) RegisterProduct(members []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindProduct {
			continue
		}
		if int(tt.Payload) >= len(in.products) {
			continue
		}
		if slices.Equal(in.products[tt.Payload].Members, members) {
			return id
		}
	}
	slot := in.appendProductInfo(ProductInfo{Members: slices.Clone(members)})
	return in.internRaw(Type{Kind: KindProduct, Payload: slot})
}

// ProductInfo retrieves product type metadata by TypeID.
func (in *Interner) ProductInfo(id TypeID) (*ProductInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindProduct {
		return nil, false
	}
	if int(tt.Payload) >= len(in.products) {
		return nil, false
	}
	return &in.products[tt.Payload], true
}

// ProductMember returns the i-th member of a product TypeID.
func (in *Interner) ProductMember(id TypeID, i int) (TypeID, bool) {
	info, ok := in.ProductInfo(id)
	if !ok || i < 0 || i >= len(info.Members) {
		return NoTypeID, false
	}
	return info.Members[i], true
}

func (in *Interner) appendProductInfo(info ProductInfo) uint32 {
	in.products = append(in.products, info)
	slot, err := safecast.Conv[uint32](len(in.products) - 1)
	if err != nil {
		panic(fmt.Errorf("product info overflow: %w", err))
	}
	return slot
}
