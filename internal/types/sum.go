package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// SumInfo stores the member types of a sum type, sorted for identity.
type SumInfo struct {
	Members []TypeID
}

// RegisterSum creates or finds a sum type over the given members. Member
// order does not affect identity.
func (in *Interner) RegisterSum(members []TypeID) TypeID {
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindSum {
			continue
		}
		if int(tt.Payload) >= len(in.sums) {
			continue
		}
		if slices.Equal(in.sums[tt.Payload].Members, sorted) {
			return id
		}
	}
	slot := in.appendSumInfo(SumInfo{Members: sorted})
	return in.internRaw(Type{Kind: KindSum, Payload: slot})
}

// SumInfo retrieves sum type metadata by TypeID.
func (in *Interner) SumInfo(id TypeID) (*SumInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindSum {
		return nil, false
	}
	if int(tt.Payload) >= len(in.sums) {
		return nil, false
	}
	return &in.sums[tt.Payload], true
}

// SumHas reports whether member is one of the sum's members.
func (in *Interner) SumHas(id, member TypeID) bool {
	info, ok := in.SumInfo(id)
	if !ok {
		return false
	}
	return slices.Contains(info.Members, member)
}

func (in *Interner) appendSumInfo(info SumInfo) uint32 {
	in.sums = append(in.sums, info)
	slot, err := safecast.Conv[uint32](len(in.sums) - 1)
	if err != nil {
		panic(fmt.Errorf("sum info overflow: %w", err))
	}
	return slot
}
