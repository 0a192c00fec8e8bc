package litparse

import "github.com/quilllang/quill/pkg/quillerr"

// Time holds the parsed components of an "HH:MM:SS[.mmm]" literal payload.
type Time struct {
	Hour, Minute, Second, Millisecond int
}

// ParseTime parses the canonical time literal payload from spec.md §6.
func ParseTime(s string) (Time, error) {
	sc := newScanner(s)
	t, err := parseTimeFrom(sc)
	if err != nil {
		return Time{}, quillerr.New(quillerr.InvalidValue, "time literal %q: %v", s, err)
	}
	if sc.ch != 0 {
		return Time{}, quillerr.New(quillerr.InvalidValue, "time literal %q: trailing characters", s)
	}

	return t, nil
}

// parseTimeFrom consumes "HH:MM:SS[.mmm]" from sc without requiring EOF
// afterward, so ParseDateTime can reuse it mid-stream.
func parseTimeFrom(sc *scanner) (Time, error) {
	hour, d := sc.readDigits(2)
	if d == 0 {
		return Time{}, quillerr.New(quillerr.InvalidValue, "missing hour")
	}
	if err := sc.expect(':'); err != nil {
		return Time{}, err
	}

	minute, d := sc.readDigits(2)
	if d == 0 {
		return Time{}, quillerr.New(quillerr.InvalidValue, "missing minute")
	}
	if err := sc.expect(':'); err != nil {
		return Time{}, err
	}

	second, d := sc.readDigits(2)
	if d == 0 {
		return Time{}, quillerr.New(quillerr.InvalidValue, "missing second")
	}

	ms := 0
	if sc.ch == '.' {
		sc.readChar()
		frac, d := sc.readDigits(3)
		if d == 0 {
			return Time{}, quillerr.New(quillerr.InvalidValue, "missing millisecond digits after '.'")
		}
		ms = atoi(padRight(frac, 3))
	}

	return Time{Hour: atoi(hour), Minute: atoi(minute), Second: atoi(second), Millisecond: ms}, nil
}

// padRight right-pads a fractional digit string with zeros to n digits
// so ".5" means 500ms and ".05" means 50ms (n=3), or ".5" means 50 cents
// in a money literal (n=2), matching decimal-fraction semantics rather
// than raw digit-count semantics.
func padRight(s string, n int) string {
	for len(s) < n {
		s += "0"
	}

	return s
}
