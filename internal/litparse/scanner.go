// Package litparse scans the canonical literal payload strings described
// in spec.md §6 — the text that follows an "@" literal marker or a money
// sign, not general expression syntax. It is deliberately narrow: the
// full lexer and parser are out of the runtime's scope (spec.md §1); this
// package exists only because the runtime is the one place that must
// agree on what "YYYY-MM-DD" or "$12.345" means once the AST hands it a
// MoneyLit/DateLit/etc. literal payload string.
//
// The scanning style (position/ch, readChar/peekChar) is carried over
// from the teacher's character-level lexer, narrowed to single-purpose
// parsers instead of a general token stream.
package litparse

import (
	"github.com/quilllang/quill/pkg/quillerr"
)

type scanner struct {
	input    string
	position int
	ch       byte
}

func newScanner(input string) *scanner {
	sc := &scanner{input: input}
	sc.readChar()

	return sc
}

func (sc *scanner) readChar() {
	if sc.position >= len(sc.input) {
		sc.ch = 0
	} else {
		sc.ch = sc.input[sc.position]
	}
	sc.position++
}

func (sc *scanner) peekChar() byte {
	if sc.position >= len(sc.input) {
		return 0
	}

	return sc.input[sc.position]
}

func (sc *scanner) readDigits(max int) (string, int) {
	start := sc.position - 1
	n := 0
	for isDigit(sc.ch) && (max <= 0 || n < max) {
		sc.readChar()
		n++
	}

	return sc.input[start : sc.position-1], n
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func (sc *scanner) expect(ch byte) error {
	if sc.ch != ch {
		return quillerr.New(quillerr.InvalidValue, "expected %q at position %d, got %q", ch, sc.position-1, sc.ch)
	}
	sc.readChar()

	return nil
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}

	return n
}
