// Package quillerr defines the error kinds shared by every runtime
// component, per spec.md §7. Every failure the runtime surfaces to a
// caller is a *Error so callers can switch on Kind instead of matching
// message text. Components return *Error values as they are; Wrap and
// Unwrap are available to chain an underlying cause.
package quillerr

import (
	"errors"
	"fmt"

	"github.com/quilllang/quill/internal/types"
)

// Kind enumerates the error kinds named in spec.md §7.
type Kind byte

const (
	// Value Algebra
	TypeMismatch Kind = iota
	InvalidOperator
	DivisionByZero
	CurrencyMismatch

	// Evaluator
	UndefinedName
	ArgumentMismatch
	InvalidCallTarget
	InvalidAssignmentTarget
	IndexOutOfRange
	ReturnOutsideFunction

	// Constraint Engine
	ConstraintViolation
	HealingOverflow

	// Registration APIs
	InvalidValue

	// Value Store
	ResourceExhausted
)

func (k Kind) String() string {
	names := [...]string{
		"TypeMismatch", "InvalidOperator", "DivisionByZero", "CurrencyMismatch",
		"UndefinedName", "ArgumentMismatch", "InvalidCallTarget", "InvalidAssignmentTarget",
		"IndexOutOfRange", "ReturnOutsideFunction",
		"ConstraintViolation", "HealingOverflow",
		"InvalidValue",
		"ResourceExhausted",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// Error is the single error type surfaced by every Quill component.
type Error struct {
	Kind    Kind
	Message string
	Pos     *types.SourcePos // nil when no source position applies
	Cause   error
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Pos)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, quillerr.New(SomeKind, "")) compare by Kind only,
// ignoring Message/Pos/Cause — the usual pattern for sentinel-style kind
// checks without allocating one sentinel per kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// New builds an Error with no source position.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At builds an Error carrying a source position.
func At(kind Kind, pos types.SourcePos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: &pos}
}

// Wrap builds an Error that chains an underlying cause via %w semantics.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}
