package reactor

import (
	"time"

	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/eval"
	"github.com/quilllang/quill/pkg/quillerr"
)

// Scheduler drives moments, the Trigger Scheduler from spec.md §4.9. It
// is driven externally, one tick at a time, by pkg/runtime's single-
// threaded event loop; the Scheduler itself never spawns a goroutine or
// touches a clock beyond comparing the timestamps it's handed, keeping
// the "ticker only signals, never evaluates" design note in SPEC_FULL.md
// true all the way down.
type Scheduler struct {
	Store          *value.Store
	Index          *DependencyIndex
	Log            *ChangeLog
	Eval           Evaluator
	Env            *value.Env
	MomentDuration time.Duration
	Observe        Observer

	lastMomentTime time.Time
	counter        int
	startupFired   bool
}

// NewScheduler constructs a Scheduler. momentDuration <= 0 defaults to
// 333ms, per spec.md §4.9.
func NewScheduler(store *value.Store, index *DependencyIndex, log *ChangeLog, evaluator Evaluator, env *value.Env, momentDuration time.Duration) *Scheduler {
	if momentDuration <= 0 {
		momentDuration = 333 * time.Millisecond
	}

	return &Scheduler{Store: store, Index: index, Log: log, Eval: evaluator, Env: env, MomentDuration: momentDuration}
}

// MomentIndex returns the count of moments processed so far.
func (sch *Scheduler) MomentIndex() int { return sch.counter }

// Tick is called once per polling interval by the owning event loop. It
// processes exactly one moment if moment_duration has elapsed since the
// last one, per spec.md §4.9's tick algorithm, and reports whether it did.
func (sch *Scheduler) Tick(now time.Time) bool {
	if sch.lastMomentTime.IsZero() {
		sch.lastMomentTime = now
	}
	if now.Sub(sch.lastMomentTime) < sch.MomentDuration {
		return false
	}

	sch.processMoment()
	// Advance by the fixed duration, not to now, to avoid drift.
	sch.lastMomentTime = sch.lastMomentTime.Add(sch.MomentDuration)
	sch.counter++

	return true
}

func (sch *Scheduler) processMoment() {
	if !sch.startupFired {
		sch.startupFired = true
		sch.fireByEvent(value.EventStartup)
	}

	changed := sch.Log.Drain()
	for _, h := range sch.affectedTriggers(changed) {
		sch.fireOne(h)
	}

	sch.fireByEvent(value.EventTimer)
}

// Shutdown fires every registered shutdown-kind trigger, per spec.md §6's
// lifecycle point for the shutdown event. Called by pkg/runtime's
// Stop(), outside the normal moment cadence.
func (sch *Scheduler) Shutdown() {
	sch.fireByEvent(value.EventShutdown)
}

// FireCustom fires every custom-kind trigger registered under name, per
// spec.md §6's fire_custom(name) API.
func (sch *Scheduler) FireCustom(name string) {
	for _, h := range sch.Index.All() {
		n, event, _, _, ok := sch.Store.Trigger(h)
		if !ok || event != value.EventCustom || n != name {
			continue
		}
		sch.fireOne(h)
	}
}

// affectedTriggers computes the union, over each changed name, of the
// data_changed triggers referencing it in the Dependency Index — each
// handle appears at most once, in Dependency-Index registration order
// (spec.md §4.9's "exactly once per moment" tie-break). A changed
// eval.WildcardName counts as touching every registered trigger.
func (sch *Scheduler) affectedTriggers(changed []string) []value.Handle {
	wanted := make(map[value.Handle]struct{})
	for _, name := range changed {
		watchers := sch.Index.Watchers(name)
		if name == eval.WildcardName {
			watchers = sch.Index.All()
		}
		for _, h := range watchers {
			wanted[h] = struct{}{}
		}
	}

	out := make([]value.Handle, 0, len(wanted))
	for _, h := range sch.Index.All() {
		if _, ok := wanted[h]; !ok {
			continue
		}
		_, event, _, _, ok := sch.Store.Trigger(h)
		if !ok || event != value.EventDataChanged {
			continue
		}
		out = append(out, h)
	}

	return out
}

func (sch *Scheduler) fireByEvent(kind value.EventKind) {
	for _, h := range sch.Index.All() {
		_, event, _, _, ok := sch.Store.Trigger(h)
		if !ok || event != kind {
			continue
		}
		sch.fireOne(h)
	}
}

func (sch *Scheduler) fireOne(h value.Handle) {
	name, _, cond, action, ok := sch.Store.Trigger(h)
	if !ok {
		return
	}

	condVal, err := sch.Eval.Eval(cond, sch.Env)
	if err != nil {
		sch.Observe.emit(Event{MomentIndex: sch.counter, Kind: EventTriggerError, SubjectName: name, Payload: err})

		return
	}
	b, ok := sch.Store.Bool(condVal)
	if !ok {
		err := quillerr.New(quillerr.TypeMismatch, "trigger %q condition must be boolean", name)
		sch.Observe.emit(Event{MomentIndex: sch.counter, Kind: EventTriggerError, SubjectName: name, Payload: err})

		return
	}
	if !b {
		return
	}

	if _, err := sch.Eval.Eval(action, sch.Env); err != nil {
		sch.Observe.emit(Event{MomentIndex: sch.counter, Kind: EventTriggerError, SubjectName: name, Payload: err})

		return
	}

	sch.Observe.emit(Event{MomentIndex: sch.counter, Kind: EventTriggerFired, SubjectName: name})
}
