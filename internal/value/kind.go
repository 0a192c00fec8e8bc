package value

import "fmt"

// Kind tags the arm of a Value, per spec.md §3's tagged-variant table.
type Kind byte

const (
	KindNumber Kind = iota
	KindText
	KindMoney
	KindTime
	KindDate
	KindDateTime
	KindPercentage
	KindRatio
	KindBoolean
	KindUnknown
	KindNil
	KindList
	KindRecord
	KindFunction
	KindTrigger
	KindConstraint
)

func (k Kind) String() string {
	names := [...]string{
		"number", "text", "money", "time", "date", "date_time",
		"percentage", "ratio", "boolean", "unknown", "nil",
		"list", "record", "function", "trigger", "constraint",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// EventKind enumerates the trigger event kinds from spec.md §6.
type EventKind byte

const (
	EventDataChanged EventKind = iota
	EventTimer
	EventStartup
	EventShutdown
	EventCustom
)

func (e EventKind) String() string {
	names := [...]string{"data_changed", "timer", "startup", "shutdown", "custom"}
	if int(e) < len(names) {
		return names[e]
	}

	return fmt.Sprintf("EventKind(%d)", e)
}

// SubunitsPerUnit is the fixed money scale from spec.md §3: every
// currency uses 10,000 sub-units per whole unit regardless of its
// conventional display precision.
const SubunitsPerUnit = 10_000
