package litparse

import "github.com/quilllang/quill/pkg/quillerr"

// DateTime holds the parsed components of a combined date and time
// literal payload.
type DateTime struct {
	Year, Month, Day                  int
	Hour, Minute, Second, Millisecond int
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS[.mmm]" or the same with a
// "T" separator, per spec.md §6.
func ParseDateTime(s string) (DateTime, error) {
	sep := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == 'T' {
			sep = i

			break
		}
	}
	if sep < 0 {
		return DateTime{}, quillerr.New(quillerr.InvalidValue, "date_time literal %q: missing date/time separator", s)
	}

	d, err := ParseDate(s[:sep])
	if err != nil {
		return DateTime{}, err
	}

	sc := newScanner(s[sep+1:])
	t, err := parseTimeFrom(sc)
	if err != nil {
		return DateTime{}, quillerr.New(quillerr.InvalidValue, "date_time literal %q: %v", s, err)
	}
	if sc.ch != 0 {
		return DateTime{}, quillerr.New(quillerr.InvalidValue, "date_time literal %q: trailing characters", s)
	}

	return DateTime{
		Year: d.Year, Month: d.Month, Day: d.Day,
		Hour: t.Hour, Minute: t.Minute, Second: t.Second, Millisecond: t.Millisecond,
	}, nil
}
