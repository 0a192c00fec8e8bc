package algebra

import (
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// Compare returns -1/0/+1 per spec.md §4.2's comparison rules.
func Compare(s *value.Store, a, b value.Handle) (int, error) {
	ak, bk := s.Kind(a), s.Kind(b)

	switch {
	case isNumeric(ak) && isNumeric(bk):
		av, err := toFloat(s, a)
		if err != nil {
			return 0, err
		}
		bv, err := toFloat(s, b)
		if err != nil {
			return 0, err
		}

		return signOf(av - bv), nil

	case ak == value.KindMoney && bk == value.KindMoney:
		aAmt, aCur, _ := s.Money(a)
		bAmt, bCur, _ := s.Money(b)
		if aCur != bCur {
			return 0, quillerr.New(quillerr.CurrencyMismatch, "cannot compare %s with %s", aCur, bCur)
		}

		return signOf64(aAmt - bAmt), nil

	case ak == value.KindDate && bk == value.KindDate:
		ay, am, ad, _ := s.Date(a)
		by, bm, bd, _ := s.Date(b)

		return compareTriples(ay, am, ad, by, bm, bd), nil

	case ak == value.KindTime && bk == value.KindTime:
		ah, amin, as, ams, _ := s.Time(a)
		bh, bmin, bs, bms, _ := s.Time(b)

		return compareQuads(ah, amin, as, ams, bh, bmin, bs, bms), nil

	case ak == value.KindDateTime && bk == value.KindDateTime:
		ay, am, ad, ah, amin, as, ams, _ := s.DateTime(a)
		by, bm, bd, bh, bmin, bs, bms, _ := s.DateTime(b)
		if c := compareTriples(ay, am, ad, by, bm, bd); c != 0 {
			return c, nil
		}

		return compareQuads(ah, amin, as, ams, bh, bmin, bs, bms), nil

	case ak == value.KindText && bk == value.KindText:
		av, _ := s.Text(a)
		bv, _ := s.Text(b)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}

	case ak == value.KindBoolean && bk == value.KindBoolean:
		av, _ := s.Bool(a)
		bv, _ := s.Bool(b)
		switch {
		case av == bv:
			return 0, nil
		case av:
			return 1, nil
		default:
			return -1, nil
		}

	default:
		return 0, quillerr.New(quillerr.TypeMismatch, "cannot compare %s with %s", ak, bk)
	}
}

// Equal implements strict equality: comparison == 0, propagating any
// error (including CurrencyMismatch) to the caller, per spec.md §4.2.
// When a is a list, record, ratio, nil, unknown or reactive value, the
// comparison is structural instead and never returns an error: elements
// that fail to compare count as unequal.
func Equal(s *value.Store, a, b value.Handle) (bool, error) {
	if structuralSpecialCase(s, a, b) {
		return structuralEqual(s, a, b), nil
	}
	c, err := Compare(s, a, b)
	if err != nil {
		return false, err
	}

	return c == 0, nil
}

// LooseEqual implements the caller-requested loose-equality mode from
// spec.md §4.2: a CurrencyMismatch during comparison becomes false
// instead of propagating.
func LooseEqual(s *value.Store, a, b value.Handle) bool {
	eq, err := Equal(s, a, b)
	if err != nil {
		return false
	}

	return eq
}

// structuralSpecialCase reports whether a and b need structural recursion
// (lists, records, nil/unknown, functions) instead of the scalar
// Compare rules above.
func structuralSpecialCase(s *value.Store, a, b value.Handle) bool {
	ak, bk := s.Kind(a), s.Kind(b)
	switch ak {
	case value.KindList, value.KindRecord, value.KindNil, value.KindUnknown, value.KindFunction, value.KindTrigger, value.KindConstraint, value.KindRatio:
		return true
	}
	_ = bk

	return false
}

func structuralEqual(s *value.Store, a, b value.Handle) bool {
	ak, bk := s.Kind(a), s.Kind(b)
	if ak != bk {
		return false
	}

	switch ak {
	case value.KindNil, value.KindUnknown:
		return true
	case value.KindRatio:
		an, ad, _ := s.Ratio(a)
		bn, bd, _ := s.Ratio(b)

		return an*bd == bn*ad
	case value.KindList:
		ae, _ := s.ListElements(a)
		be, _ := s.ListElements(b)
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !LooseEqual(s, ae[i], be[i]) {
				return false
			}
		}

		return true
	case value.KindRecord:
		ak2, _ := s.RecordOwnKeys(a)
		bk2, _ := s.RecordOwnKeys(b)
		if len(ak2) != len(bk2) {
			return false
		}
		for _, k := range ak2 {
			av, _ := s.RecordGet(a, k)
			bv, ok := s.RecordGet(b, k)
			if !ok || !LooseEqual(s, av, bv) {
				return false
			}
		}

		return true
	case value.KindFunction, value.KindTrigger, value.KindConstraint:
		return a == b
	default:
		return false
	}
}

func isNumeric(k value.Kind) bool {
	return k == value.KindNumber || k == value.KindMoney || k == value.KindPercentage
}

func toFloat(s *value.Store, h value.Handle) (float64, error) {
	switch s.Kind(h) {
	case value.KindNumber:
		v, _ := s.Number(h)

		return v, nil
	case value.KindPercentage:
		v, _ := s.Percentage(h)

		return v, nil
	case value.KindMoney:
		amt, _, _ := s.Money(h)

		return float64(amt) / value.SubunitsPerUnit, nil
	default:
		return 0, quillerr.New(quillerr.TypeMismatch, "not numeric: %s", s.Kind(h))
	}
}

func signOf(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func signOf64(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func compareTriples(ay, am, ad, by, bm, bd int) int {
	if c := signOf(float64(ay - by)); c != 0 {
		return c
	}
	if c := signOf(float64(am - bm)); c != 0 {
		return c
	}

	return signOf(float64(ad - bd))
}

func compareQuads(ah, am, as, ams, bh, bm, bs, bms int) int {
	if c := signOf(float64(ah - bh)); c != 0 {
		return c
	}
	if c := signOf(float64(am - bm)); c != 0 {
		return c
	}
	if c := signOf(float64(as - bs)); c != 0 {
		return c
	}

	return signOf(float64(ams - bms))
}
