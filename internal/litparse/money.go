package litparse

import "github.com/quilllang/quill/pkg/quillerr"

// Money holds a parsed money literal's amount, already scaled to
// value.SubunitsPerUnit (10,000 per whole unit). Currency is resolved by
// the caller from the runtime's default_currency option; the literal
// syntax carries no currency tag (spec.md §6).
type Money struct {
	AmountSubunits int64
}

// ParseMoney parses the canonical money literal payload from spec.md §6:
// "$[-]D.CC", truncating fractional digits beyond the second toward
// zero (the resolved reading of the Open Question in spec.md §9).
func ParseMoney(s string) (Money, error) {
	sc := newScanner(s)

	negative := false
	if sc.ch == '-' {
		negative = true
		sc.readChar()
	}
	if sc.ch == '$' {
		sc.readChar()
	}
	if !negative && sc.ch == '-' {
		negative = true
		sc.readChar()
	}

	intPart, d := sc.readDigits(0)
	if d == 0 {
		return Money{}, quillerr.New(quillerr.InvalidValue, "money literal %q: missing integer part", s)
	}

	cents := "00"
	if sc.ch == '.' {
		sc.readChar()
		frac, d := sc.readDigits(0)
		if d == 0 {
			return Money{}, quillerr.New(quillerr.InvalidValue, "money literal %q: missing fractional digits after '.'", s)
		}
		// Truncate toward zero beyond the second fractional digit.
		if len(frac) > 2 {
			frac = frac[:2]
		}
		cents = padRight(frac, 2)
	}
	if sc.ch != 0 {
		return Money{}, quillerr.New(quillerr.InvalidValue, "money literal %q: trailing characters", s)
	}

	amount := int64(atoi(intPart))*10000 + int64(atoi(cents))*100
	if negative {
		amount = -amount
	}

	return Money{AmountSubunits: amount}, nil
}
