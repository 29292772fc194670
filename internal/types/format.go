package types

import (
	"fmt"
	"strings"
)

// String renders a type for diagnostics and value formatting.
func (in *Interner) String(id TypeID) string {
	id = in.Resolve(id)
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch tt.Kind {
	case KindList:
		return "[" + in.String(tt.Elem) + "]"
	case KindRuntime:
		return in.String(tt.Elem)
	case KindSum:
		info, _ := in.SumInfo(id)
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = in.String(m)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case KindProduct:
		info, _ := in.ProductInfo(id)
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = in.String(m)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFunction:
		info, _ := in.FnInfo(id)
		return in.String(info.Arg) + " -> " + in.String(info.Result)
	case KindMacro:
		return fmt.Sprintf("macro[%d]", tt.Payload)
	case KindVar:
		return fmt.Sprintf("'t%d", tt.Payload)
	default:
		return tt.Kind.String()
	}
}
