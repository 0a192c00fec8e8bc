package algebra

import (
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// Add implements +, per spec.md §4.2.
func Add(s *value.Store, a, b value.Handle) (value.Handle, error) {
	ak, bk := s.Kind(a), s.Kind(b)

	switch {
	case ak == value.KindNumber && bk == value.KindNumber:
		av, _ := s.Number(a)
		bv, _ := s.Number(b)

		return s.NewNumber(av + bv), nil

	case ak == value.KindNumber && bk == value.KindMoney:
		return numberMoney(s, a, b, func(sub, n int64) int64 { return sub + n })
	case ak == value.KindMoney && bk == value.KindNumber:
		return numberMoney(s, b, a, func(sub, n int64) int64 { return sub + n })

	case ak == value.KindMoney && bk == value.KindMoney:
		return moneyMoney(s, a, b, func(x, y int64) int64 { return x + y })

	case ak == value.KindPercentage && bk == value.KindPercentage:
		av, _ := s.Percentage(a)
		bv, _ := s.Percentage(b)

		return s.NewPercentage(av + bv), nil

	case ak == value.KindText && bk == value.KindText:
		av, _ := s.Text(a)
		bv, _ := s.Text(b)

		return s.NewText(av + bv), nil

	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"cannot add %s and %s", ak, bk)
	}
}

// Sub implements -, per spec.md §4.2.
func Sub(s *value.Store, a, b value.Handle) (value.Handle, error) {
	ak, bk := s.Kind(a), s.Kind(b)

	switch {
	case ak == value.KindNumber && bk == value.KindNumber:
		av, _ := s.Number(a)
		bv, _ := s.Number(b)

		return s.NewNumber(av - bv), nil

	case ak == value.KindNumber && bk == value.KindMoney:
		// number - money: scaledNumber - moneySub
		return numberMoney(s, a, b, func(scaledNumber, moneySub int64) int64 { return scaledNumber - moneySub })
	case ak == value.KindMoney && bk == value.KindNumber:
		// money - number: moneySub - scaledNumber
		return numberMoney(s, b, a, func(scaledNumber, moneySub int64) int64 { return moneySub - scaledNumber })

	case ak == value.KindMoney && bk == value.KindMoney:
		return moneyMoney(s, a, b, func(x, y int64) int64 { return x - y })

	case ak == value.KindPercentage && bk == value.KindPercentage:
		av, _ := s.Percentage(a)
		bv, _ := s.Percentage(b)

		return s.NewPercentage(av - bv), nil

	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"cannot subtract %s and %s", ak, bk)
	}
}

// Mul implements *, per spec.md §4.2.
func Mul(s *value.Store, a, b value.Handle) (value.Handle, error) {
	ak, bk := s.Kind(a), s.Kind(b)

	switch {
	case ak == value.KindNumber && bk == value.KindNumber:
		av, _ := s.Number(a)
		bv, _ := s.Number(b)

		return s.NewNumber(av * bv), nil

	case ak == value.KindNumber && bk == value.KindMoney:
		av, _ := s.Number(a)
		amt, cur, _ := s.Money(b)

		return s.NewMoney(scaleMoney(amt, av), cur), nil
	case ak == value.KindMoney && bk == value.KindNumber:
		return Mul(s, b, a)

	case ak == value.KindPercentage && bk == value.KindMoney:
		pv, _ := s.Percentage(a)
		amt, cur, _ := s.Money(b)

		return s.NewMoney(scaleMoney(amt, pv/100), cur), nil
	case ak == value.KindMoney && bk == value.KindPercentage:
		return Mul(s, b, a)

	case ak == value.KindPercentage && bk == value.KindPercentage:
		av, _ := s.Percentage(a)
		bv, _ := s.Percentage(b)

		return s.NewPercentage(av * bv / 100), nil

	case ak == value.KindRatio && bk == value.KindRatio:
		an, ad, _ := s.Ratio(a)
		bn, bd, _ := s.Ratio(b)

		return s.NewRatio(an*bn, ad*bd)

	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"cannot multiply %s and %s", ak, bk)
	}
}

// Div implements /, per spec.md §4.2.
func Div(s *value.Store, a, b value.Handle) (value.Handle, error) {
	ak, bk := s.Kind(a), s.Kind(b)

	switch {
	case ak == value.KindNumber && bk == value.KindNumber:
		av, _ := s.Number(a)
		bv, _ := s.Number(b)
		if bv == 0 {
			return value.InvalidHandle, quillerr.New(quillerr.DivisionByZero, "division by zero")
		}

		return s.NewNumber(av / bv), nil

	case ak == value.KindMoney && bk == value.KindNumber:
		amt, cur, _ := s.Money(a)
		bv, _ := s.Number(b)
		if bv == 0 {
			return value.InvalidHandle, quillerr.New(quillerr.DivisionByZero, "division by zero")
		}

		return s.NewMoney(scaleMoney(amt, 1/bv), cur), nil

	case ak == value.KindMoney && bk == value.KindMoney:
		aAmt, aCur, _ := s.Money(a)
		bAmt, bCur, _ := s.Money(b)
		if aCur != bCur {
			return value.InvalidHandle, quillerr.New(quillerr.CurrencyMismatch,
				"cannot divide %s by %s", aCur, bCur)
		}
		if bAmt == 0 {
			return value.InvalidHandle, quillerr.New(quillerr.DivisionByZero, "division by zero")
		}

		return s.NewNumber(float64(aAmt) / float64(bAmt)), nil

	case ak == value.KindRatio && bk == value.KindRatio:
		an, ad, _ := s.Ratio(a)
		bn, bd, _ := s.Ratio(b)
		if bn == 0 {
			return value.InvalidHandle, quillerr.New(quillerr.DivisionByZero, "division by zero")
		}

		return s.NewRatio(an*bd, ad*bn)

	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"cannot divide %s by %s", ak, bk)
	}
}

// numberMoney combines a number and money's sub-unit amount after scaling
// the number to the sub-unit scale, per spec.md §4.2 ("the number is
// scaled by 10,000 to reach the sub-unit scale, then added/subtracted").
func numberMoney(s *value.Store, number, money value.Handle, combine func(scaledNumber, moneySub int64) int64) (value.Handle, error) {
	nv, _ := s.Number(number)
	amt, cur, _ := s.Money(money)
	scaled := int64(nv * value.SubunitsPerUnit)

	return s.NewMoney(combine(scaled, amt), cur), nil
}

func moneyMoney(s *value.Store, a, b value.Handle, combine func(x, y int64) int64) (value.Handle, error) {
	aAmt, aCur, _ := s.Money(a)
	bAmt, bCur, _ := s.Money(b)
	if aCur != bCur {
		return value.InvalidHandle, quillerr.New(quillerr.CurrencyMismatch,
			"currency mismatch: %s vs %s", aCur, bCur)
	}

	return s.NewMoney(combine(aAmt, bAmt), aCur), nil
}

// scaleMoney scales a sub-unit amount by an arbitrary factor, rounding to
// the nearest sub-unit.
func scaleMoney(amountSubunits int64, factor float64) int64 {
	return int64(float64(amountSubunits)*factor + sign(float64(amountSubunits)*factor)*0.5)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}

	return 1
}

// Negate implements unary -, for number, money, percentage, and ratio.
func Negate(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindNumber:
		v, _ := s.Number(a)

		return s.NewNumber(-v), nil
	case value.KindMoney:
		amt, cur, _ := s.Money(a)

		return s.NewMoney(-amt, cur), nil
	case value.KindPercentage:
		v, _ := s.Percentage(a)

		return s.NewPercentage(-v), nil
	case value.KindRatio:
		n, d, _ := s.Ratio(a)

		return s.NewRatio(-n, d)
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"cannot negate %s", s.Kind(a))
	}
}

// Not implements unary !, boolean only.
func Not(s *value.Store, a value.Handle) (value.Handle, error) {
	b, ok := s.Bool(a)
	if !ok {
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch,
			"! requires boolean, got %s", s.Kind(a))
	}

	return s.NewBool(!b), nil
}
