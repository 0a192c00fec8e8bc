package reactor

import (
	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/algebra"
	"github.com/quilllang/quill/pkg/eval"
	"github.com/quilllang/quill/pkg/quillerr"
)

// Evaluator is the capability the Constraint Engine needs to re-evaluate
// a constraint's condition and healing AST. *eval.Evaluator satisfies
// this structurally; pkg/runtime wires the two together without either
// package importing the other's concrete type in the opposite direction.
type Evaluator interface {
	Eval(expr types.Expr, env *value.Env) (value.Handle, error)
}

// Engine is the Constraint Engine from spec.md §4.8.
type Engine struct {
	Store         *value.Store
	Index         *DependencyIndex
	Log           *ChangeLog
	Eval          Evaluator
	HealingDepth  int
	Observe       Observer
	CurrentMoment func() int

	depth int
}

// NewEngine constructs a Constraint Engine. healingDepth <= 0 defaults
// to 16, per spec.md §4.8's default.
func NewEngine(store *value.Store, index *DependencyIndex, log *ChangeLog, evaluator Evaluator, healingDepth int) *Engine {
	if healingDepth <= 0 {
		healingDepth = 16
	}

	return &Engine{Store: store, Index: index, Log: log, Eval: evaluator, HealingDepth: healingDepth}
}

func (en *Engine) momentIndex() int {
	if en.CurrentMoment == nil {
		return 0
	}

	return en.CurrentMoment()
}

// Assign implements eval.ConstraintEngine, running the full protocol
// from spec.md §4.8 for one pending write.
func (en *Engine) Assign(env *value.Env, req eval.AssignRequest) error {
	if req.HasOld && algebra.LooseEqual(en.Store, req.Old, req.New) {
		// Step 1: no observable change, skip the engine entirely.
		return nil
	}

	if err := req.Commit(req.New); err != nil {
		return err
	}

	for _, c := range en.constraintsFor(req.Name) {
		if err := en.check(env, c); err != nil {
			en.rollback(req)

			return err
		}
	}

	en.Log.Mark(req.Name)

	return nil
}

func (en *Engine) rollback(req eval.AssignRequest) {
	if req.HasOld {
		_ = req.Commit(req.Old)

		return
	}
	if req.Remove != nil {
		_ = req.Remove()
	}
}

func (en *Engine) constraintsFor(name string) []value.Handle {
	var candidates []value.Handle
	if name == eval.WildcardName {
		candidates = en.Index.All()
	} else {
		candidates = en.Index.Watchers(name)
	}

	out := make([]value.Handle, 0, len(candidates))
	for _, h := range candidates {
		if en.Store.Kind(h) == value.KindConstraint {
			out = append(out, h)
		}
	}

	return out
}

// check evaluates one constraint's condition, attempting healing once if
// it fails and a healing action is present.
func (en *Engine) check(env *value.Env, c value.Handle) error {
	name, cond, heal, ok := en.Store.Constraint(c)
	if !ok {
		return nil
	}

	satisfied, err := en.evalCondition(env, cond)
	if err != nil {
		return err
	}
	if satisfied {
		return nil
	}

	if heal == nil {
		en.Observe.emit(Event{MomentIndex: en.momentIndex(), Kind: EventConstraintViolation, SubjectName: name})

		return quillerr.New(quillerr.ConstraintViolation, "constraint %q violated", name)
	}

	en.Observe.emit(Event{MomentIndex: en.momentIndex(), Kind: EventHealingInvoked, SubjectName: name})

	if err := en.runHealing(env, heal); err != nil {
		en.Observe.emit(Event{MomentIndex: en.momentIndex(), Kind: EventHealingFailed, SubjectName: name, Payload: err})

		return err
	}

	satisfied, err = en.evalCondition(env, cond)
	if err != nil {
		return err
	}
	if !satisfied {
		en.Observe.emit(Event{MomentIndex: en.momentIndex(), Kind: EventHealingFailed, SubjectName: name})
		en.Observe.emit(Event{MomentIndex: en.momentIndex(), Kind: EventConstraintViolation, SubjectName: name})

		return quillerr.New(quillerr.ConstraintViolation, "constraint %q violated after healing", name)
	}

	return nil
}

// CheckNow validates constraint handle c against the current environment
// immediately, attempting healing once if the condition fails. It is used
// when a constraint is freshly registered so the caller learns right away
// whether existing state already violates it, instead of only discovering
// the violation on the next write to a watched name (spec.md §6's
// register_constraint documents ConstraintViolation as a failure mode of
// registration itself, not just of later assignment).
func (en *Engine) CheckNow(env *value.Env, c value.Handle) error {
	return en.check(env, c)
}

func (en *Engine) evalCondition(env *value.Env, cond types.Expr) (bool, error) {
	h, err := en.Eval.Eval(cond, env)
	if err != nil {
		return false, err
	}
	b, ok := en.Store.Bool(h)
	if !ok {
		return false, quillerr.New(quillerr.TypeMismatch, "constraint condition must be boolean")
	}

	return b, nil
}

// runHealing evaluates a healing action, bounding recursion: healing
// actions may themselves assign variables, which recursively invoke this
// same engine (spec.md §4.8).
func (en *Engine) runHealing(env *value.Env, heal types.Expr) error {
	en.depth++
	defer func() { en.depth-- }()

	if en.depth > en.HealingDepth {
		return quillerr.New(quillerr.HealingOverflow, "healing recursion exceeded depth %d", en.HealingDepth)
	}

	_, err := en.Eval.Eval(heal, env)

	return err
}
