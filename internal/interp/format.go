package interp

import (
	"strconv"
	"strings"
)

// Format renders a value's printed form.
func (ip *Interp) Format(v Value) string {
	var sb strings.Builder
	ip.formatInto(&sb, v)
	return sb.String()
}

func (ip *Interp) formatInto(sb *strings.Builder, v Value) {
	switch {
	case v.IsVoid():
		sb.WriteString("()")
	case v.IsError():
		sb.WriteString("error")
	case v.IsInt():
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case v.IsSymbol():
		sb.WriteString(ip.Syms.Name(v.Symbol()))
	case v.IsString():
		sb.WriteByte('"')
		sb.WriteString(v.Str().Value())
		sb.WriteByte('"')
	case v.IsType():
		sb.WriteString(ip.Types.String(v.TypeValue()))
	case v.IsBool():
		if v.Bool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case v.IsList():
		sb.WriteByte('(')
		first := true
		ptr := v
		for ptr.IsList() {
			if !first {
				sb.WriteByte(' ')
			}
			ip.formatInto(sb, ptr.List().Head)
			ptr = ptr.List().Tail
			first = false
		}
		sb.WriteByte(')')
	case v.IsSum():
		ip.formatInto(sb, v.Sum().Value)
	case v.IsProduct():
		sb.WriteByte('(')
		for i, member := range v.Product().Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			ip.formatInto(sb, member)
		}
		sb.WriteByte(')')
	case v.IsFunction():
		sb.WriteString("<#procedure>")
	case v.IsAlias():
		sb.WriteString("<#alias>")
	case v.IsMacro():
		sb.WriteString("<#macro>")
	case v.IsRuntime():
		base, _ := ip.Types.RuntimeBase(v.Type())
		sb.WriteString("<#runtime ")
		sb.WriteString(ip.Types.String(base))
		sb.WriteByte('>')
	}
}
