package value

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders h for display, the way a driver would print a
// top-level execute() result. It never fails: an invalid handle prints
// as "<invalid>".
func (s *Store) String(h Handle) string {
	c, err := s.cell(h)
	if err != nil {
		return "<invalid>"
	}

	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.text
	case KindMoney:
		sign := ""
		amt := c.moneyAmount
		if amt < 0 {
			sign = "-"
			amt = -amt
		}

		return fmt.Sprintf("%s%d.%04d %s", sign, amt/SubunitsPerUnit, amt%SubunitsPerUnit, c.moneyCurrency)
	case KindTime:
		return fmt.Sprintf("%02d:%02d:%02d.%03d", c.hour, c.minute, c.second, c.millisecond)
	case KindDate:
		return fmt.Sprintf("%04d-%02d-%02d", c.year, c.month, c.day)
	case KindDateTime:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
			c.year, c.month, c.day, c.hour, c.minute, c.second, c.millisecond)
	case KindPercentage:
		return strconv.FormatFloat(c.num, 'g', -1, 64) + "%"
	case KindRatio:
		return fmt.Sprintf("%g/%g", c.ratioNum, c.ratioDen)
	case KindBoolean:
		return strconv.FormatBool(c.boolean)
	case KindUnknown:
		return "unknown"
	case KindNil:
		return "nil"
	case KindList:
		parts := make([]string, len(c.elems))
		for i, e := range c.elems {
			parts[i] = s.String(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case KindRecord:
		parts := make([]string, 0, len(c.attrOrder))
		for _, k := range c.attrOrder {
			parts = append(parts, fmt.Sprintf("%s: %s", k, s.String(c.attrs[k])))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s/%d>", c.fnName, len(c.fnParams))
	case KindTrigger:
		return fmt.Sprintf("<trigger %s>", c.reactName)
	case KindConstraint:
		return fmt.Sprintf("<constraint %s>", c.reactName)
	default:
		return "<invalid>"
	}
}
