package litparse

import "github.com/quilllang/quill/pkg/quillerr"

// Date holds the parsed components of a "YYYY-MM-DD" literal payload.
type Date struct {
	Year, Month, Day int
}

// ParseDate parses the canonical date literal payload from spec.md §6:
// "YYYY-MM-DD". It does not validate day-of-month or leap-year rules;
// that belongs to the Value Store constructors, which own those
// invariants.
func ParseDate(s string) (Date, error) {
	sc := newScanner(s)

	negative := false
	if sc.ch == '-' {
		negative = true
		sc.readChar()
	}

	year, d := sc.readDigits(0)
	if d == 0 {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: missing year", s)
	}
	if err := sc.expect('-'); err != nil {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: %v", s, err)
	}

	month, d := sc.readDigits(2)
	if d == 0 {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: missing month", s)
	}
	if err := sc.expect('-'); err != nil {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: %v", s, err)
	}

	day, d := sc.readDigits(2)
	if d == 0 {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: missing day", s)
	}
	if sc.ch != 0 {
		return Date{}, quillerr.New(quillerr.InvalidValue, "date literal %q: trailing characters", s)
	}

	y := atoi(year)
	if negative {
		y = -y
	}

	return Date{Year: y, Month: atoi(month), Day: atoi(day)}, nil
}
