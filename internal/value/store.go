package value

import (
	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/pkg/quillerr"
)

// cell is the internal tagged-variant payload for one arena slot. Go has
// no sum type, so a single struct carries every arm's fields; Kind says
// which are live. This is the "single sum type with per-variant
// payloads" design from spec.md §9, generalized from the teacher's
// interface-per-variant Value into one arena-friendly struct so handles
// can be plain integers instead of boxed interfaces.
type cell struct {
	kind Kind

	num float64 // number, percentage (already in percent units)

	text string // text

	moneyAmount   int64 // money, fixed-point, SubunitsPerUnit per whole unit
	moneyCurrency string

	hour, minute, second, millisecond int // time, date_time
	year, month, day                  int // date, date_time

	ratioNum, ratioDen float64 // ratio

	boolean bool // boolean

	elems []Handle // list

	attrs      map[string]Handle // record: own (local) fields only
	attrOrder  []string          // record: insertion order of own fields
	parent     Handle            // record: optional parent, InvalidHandle if none

	fnName   string    // function
	fnParams []string  // function
	fnBody   types.Expr // function
	fnEnv    *Env       // function: captured environment, nil for top-level

	reactName   string     // trigger, constraint
	reactEvent  EventKind  // trigger only
	reactCond   types.Expr // trigger, constraint
	reactAction types.Expr // trigger (action), constraint (healing, may be nil)
}

// Store is the arena that owns every live value for one runtime
// instance. It hands out stable Handles and never reclaims a slot while
// the Store is alive (spec.md §4.1: arena semantics, no per-value
// reclamation during a program).
type Store struct {
	cells []cell // index 0 is reserved so the zero Handle is invalid
}

// NewStore creates an empty arena.
func NewStore() *Store {
	return &Store{cells: make([]cell, 1, 256)}
}

func (s *Store) alloc(c cell) Handle {
	if len(s.cells) >= 1<<32-1 {
		// Unreachable in practice; documents the ResourceExhausted contract
		// from spec.md §4.1 rather than ever firing.
		panic(quillerr.New(quillerr.ResourceExhausted, "value store exhausted"))
	}
	s.cells = append(s.cells, c)

	return Handle(len(s.cells) - 1)
}

func (s *Store) cell(h Handle) (*cell, error) {
	if !h.Valid() || int(h) >= len(s.cells) {
		return nil, quillerr.New(quillerr.ResourceExhausted, "invalid handle %s", h)
	}

	return &s.cells[h], nil
}

// Kind returns the tag of the value at h.
func (s *Store) Kind(h Handle) Kind {
	c, err := s.cell(h)
	if err != nil {
		return KindNil
	}

	return c.kind
}

// ---------------------------------------------------------------------
// Scalar constructors
// ---------------------------------------------------------------------

func (s *Store) NewNumber(v float64) Handle { return s.alloc(cell{kind: KindNumber, num: v}) }

func (s *Store) NewText(v string) Handle {
	return s.alloc(cell{kind: KindText, text: string(append([]byte(nil), v...))})
}

// NewMoney constructs a money value. amountSubunits is already on the
// fixed SubunitsPerUnit scale.
func (s *Store) NewMoney(amountSubunits int64, currency string) Handle {
	return s.alloc(cell{kind: KindMoney, moneyAmount: amountSubunits, moneyCurrency: currency})
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}

		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func validateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return quillerr.New(quillerr.InvalidValue, "month %d out of range 1..12", month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return quillerr.New(quillerr.InvalidValue, "day %d out of range for %04d-%02d", day, year, month)
	}

	return nil
}

// NewDate constructs a date value, enforcing the days-in-month and leap
// year invariants from spec.md §3.
func (s *Store) NewDate(year, month, day int) (Handle, error) {
	if err := validateDate(year, month, day); err != nil {
		return InvalidHandle, err
	}

	return s.alloc(cell{kind: KindDate, year: year, month: month, day: day}), nil
}

func validateTime(hour, minute, second, ms int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 || ms < 0 || ms > 999 {
		return quillerr.New(quillerr.InvalidValue, "time component out of range")
	}

	return nil
}

// NewTime constructs a time-of-day value.
func (s *Store) NewTime(hour, minute, second, ms int) (Handle, error) {
	if err := validateTime(hour, minute, second, ms); err != nil {
		return InvalidHandle, err
	}

	return s.alloc(cell{kind: KindTime, hour: hour, minute: minute, second: second, millisecond: ms}), nil
}

// NewDateTime constructs a combined date and time value.
func (s *Store) NewDateTime(year, month, day, hour, minute, second, ms int) (Handle, error) {
	if err := validateDate(year, month, day); err != nil {
		return InvalidHandle, err
	}
	if err := validateTime(hour, minute, second, ms); err != nil {
		return InvalidHandle, err
	}

	return s.alloc(cell{
		kind: KindDateTime,
		year: year, month: month, day: day,
		hour: hour, minute: minute, second: second, millisecond: ms,
	}), nil
}

// NewPercentage constructs a percentage value; v is already in percent
// units (12.5 means 12.5%), per spec.md §3.
func (s *Store) NewPercentage(v float64) Handle {
	return s.alloc(cell{kind: KindPercentage, num: v})
}

// NewRatio constructs a ratio value. denominator must be nonzero.
func (s *Store) NewRatio(numerator, denominator float64) (Handle, error) {
	if denominator == 0 {
		return InvalidHandle, quillerr.New(quillerr.InvalidValue, "ratio denominator must be nonzero")
	}

	return s.alloc(cell{kind: KindRatio, ratioNum: numerator, ratioDen: denominator}), nil
}

func (s *Store) NewBool(v bool) Handle { return s.alloc(cell{kind: KindBoolean, boolean: v}) }

func (s *Store) NewUnknown() Handle { return s.alloc(cell{kind: KindUnknown}) }

func (s *Store) NewNil() Handle { return s.alloc(cell{kind: KindNil}) }

// ---------------------------------------------------------------------
// Scalar accessors
// ---------------------------------------------------------------------

func (s *Store) Number(h Handle) (float64, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindNumber {
		return 0, false
	}

	return c.num, true
}

func (s *Store) Text(h Handle) (string, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindText {
		return "", false
	}

	return c.text, true
}

func (s *Store) Money(h Handle) (amountSubunits int64, currency string, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindMoney {
		return 0, "", false
	}

	return c.moneyAmount, c.moneyCurrency, true
}

func (s *Store) Date(h Handle) (year, month, day int, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindDate {
		return 0, 0, 0, false
	}

	return c.year, c.month, c.day, true
}

func (s *Store) Time(h Handle) (hour, minute, second, ms int, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindTime {
		return 0, 0, 0, 0, false
	}

	return c.hour, c.minute, c.second, c.millisecond, true
}

func (s *Store) DateTime(h Handle) (year, month, day, hour, minute, second, ms int, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindDateTime {
		return 0, 0, 0, 0, 0, 0, 0, false
	}

	return c.year, c.month, c.day, c.hour, c.minute, c.second, c.millisecond, true
}

func (s *Store) Percentage(h Handle) (float64, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindPercentage {
		return 0, false
	}

	return c.num, true
}

func (s *Store) Ratio(h Handle) (numerator, denominator float64, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindRatio {
		return 0, 0, false
	}

	return c.ratioNum, c.ratioDen, true
}

func (s *Store) Bool(h Handle) (bool, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindBoolean {
		return false, false
	}

	return c.boolean, true
}

// DaysInMonth exposes the leap-year-aware month length for callers
// outside the package (e.g. date arithmetic in pkg/algebra).
func DaysInMonth(year, month int) int { return daysInMonth(year, month) }

// IsLeapYear exposes the leap rule from spec.md §3.
func IsLeapYear(year int) bool { return isLeapYear(year) }
