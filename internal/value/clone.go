package value

// Clone performs a deep copy of h: lists and records are recursively
// copied (a record's parent is itself a deep copy, never a shared
// reference — spec.md §4.1), money's currency string is copied into
// fresh store-owned storage, and scalars are copied by value. Functions,
// triggers, and constraints are returned as-is: their AST bodies are
// immutable and their captured environment is shared by design (closures
// alias their defining scope).
func (s *Store) Clone(h Handle) Handle {
	c, err := s.cell(h)
	if err != nil {
		return InvalidHandle
	}

	switch c.kind {
	case KindNumber:
		return s.NewNumber(c.num)
	case KindText:
		return s.NewText(c.text)
	case KindMoney:
		currency := string(append([]byte(nil), c.moneyCurrency...))

		return s.NewMoney(c.moneyAmount, currency)
	case KindTime:
		h2, _ := s.NewTime(c.hour, c.minute, c.second, c.millisecond)

		return h2
	case KindDate:
		h2, _ := s.NewDate(c.year, c.month, c.day)

		return h2
	case KindDateTime:
		h2, _ := s.NewDateTime(c.year, c.month, c.day, c.hour, c.minute, c.second, c.millisecond)

		return h2
	case KindPercentage:
		return s.NewPercentage(c.num)
	case KindRatio:
		h2, _ := s.NewRatio(c.ratioNum, c.ratioDen)

		return h2
	case KindBoolean:
		return s.NewBool(c.boolean)
	case KindUnknown:
		return s.NewUnknown()
	case KindNil:
		return s.NewNil()
	case KindList:
		elems := make([]Handle, len(c.elems))
		for i, e := range c.elems {
			elems[i] = s.Clone(e)
		}

		return s.NewList(elems)
	case KindRecord:
		parent := InvalidHandle
		if c.parent.Valid() {
			parent = s.Clone(c.parent)
		}
		out := s.NewRecord(parent)
		for _, k := range c.attrOrder {
			_ = s.RecordSet(out, k, s.Clone(c.attrs[k]))
		}

		return out
	case KindFunction, KindTrigger, KindConstraint:
		// Reactive and function values are immutable descriptors over
		// shared AST; aliasing them on copy is observably indistinguishable
		// from copying, and avoids re-walking AST bodies.
		return h
	default:
		return InvalidHandle
	}
}
