package algebra

import (
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// ToMoney converts a number to money in the given currency, scaling by
// value.SubunitsPerUnit, per spec.md §4.2's conversion rules.
func ToMoney(s *value.Store, a value.Handle, currency string) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindNumber:
		v, _ := s.Number(a)

		return s.NewMoney(int64(v*value.SubunitsPerUnit), currency), nil
	case value.KindMoney:
		amt, cur, _ := s.Money(a)
		if cur != currency {
			return value.InvalidHandle, quillerr.New(quillerr.CurrencyMismatch,
				"cannot reinterpret %s as %s without conversion", cur, currency)
		}

		return s.NewMoney(amt, cur), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to money", s.Kind(a))
	}
}

// ToNumber projects a, dropping the unit tag it carries.
func ToNumber(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindNumber:
		return s.Clone(a), nil
	case value.KindMoney:
		amt, _, _ := s.Money(a)

		return s.NewNumber(float64(amt) / value.SubunitsPerUnit), nil
	case value.KindPercentage:
		v, _ := s.Percentage(a)

		return s.NewNumber(v), nil
	case value.KindRatio:
		n, d, _ := s.Ratio(a)

		return s.NewNumber(n / d), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to number", s.Kind(a))
	}
}

// ToPercentage converts a plain number into a percentage with the same
// numeric value (5 becomes 5%, not 500%), per spec.md §4.2.
func ToPercentage(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindNumber:
		v, _ := s.Number(a)

		return s.NewPercentage(v), nil
	case value.KindPercentage:
		return s.Clone(a), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to percentage", s.Kind(a))
	}
}

// ToDateTime lifts a date to midnight on that day, or passes a date_time
// through unchanged.
func ToDateTime(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindDate:
		y, m, d, _ := s.Date(a)

		return s.NewDateTime(y, m, d, 0, 0, 0, 0)
	case value.KindDateTime:
		return s.Clone(a), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to date_time", s.Kind(a))
	}
}

// ToDate projects the date component out of a date_time, or passes a
// date through unchanged.
func ToDate(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindDateTime:
		y, m, d, _, _, _, _, _ := s.DateTime(a)

		return s.NewDate(y, m, d)
	case value.KindDate:
		return s.Clone(a), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to date", s.Kind(a))
	}
}

// ToTime projects the time-of-day component out of a date_time, or
// passes a time through unchanged.
func ToTime(s *value.Store, a value.Handle) (value.Handle, error) {
	switch s.Kind(a) {
	case value.KindDateTime:
		_, _, _, h, mi, sec, ms, _ := s.DateTime(a)

		return s.NewTime(h, mi, sec, ms)
	case value.KindTime:
		return s.Clone(a), nil
	default:
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "cannot convert %s to time", s.Kind(a))
	}
}

// AddDays returns a new date value n days after (or, if n is negative,
// before) a, carrying across month and year boundaries per the
// days-in-month/leap-year rules in spec.md §3.
func AddDays(s *value.Store, a value.Handle, n int) (value.Handle, error) {
	y, m, d, ok := s.Date(a)
	if !ok {
		return value.InvalidHandle, quillerr.New(quillerr.TypeMismatch, "add_days requires a date, got %s", s.Kind(a))
	}

	y, m, d = shiftDate(y, m, d, n)

	return s.NewDate(y, m, d)
}

// NextDate returns the calendar date immediately following a.
func NextDate(s *value.Store, a value.Handle) (value.Handle, error) {
	return AddDays(s, a, 1)
}

// PreviousDate returns the calendar date immediately preceding a.
func PreviousDate(s *value.Store, a value.Handle) (value.Handle, error) {
	return AddDays(s, a, -1)
}

// shiftDate walks the given number of days forward or backward one day
// at a time, wrapping at month and year boundaries. A day-at-a-time walk
// keeps the leap-year rule in one place (value.DaysInMonth) instead of
// duplicating it in a closed-form calendar formula.
func shiftDate(year, month, day, n int) (int, int, int) {
	for n > 0 {
		last := value.DaysInMonth(year, month)
		if day < last {
			day++
		} else {
			day = 1
			month++
			if month > 12 {
				month = 1
				year++
			}
		}
		n--
	}
	for n < 0 {
		if day > 1 {
			day--
		} else {
			month--
			if month < 1 {
				month = 12
				year--
			}
			day = value.DaysInMonth(year, month)
		}
		n++
	}

	return year, month, day
}
