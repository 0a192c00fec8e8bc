package runtime

import (
	"time"

	"go.uber.org/zap"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/eval"
	"github.com/quilllang/quill/pkg/quillerr"
	"github.com/quilllang/quill/pkg/reactor"
)

// EventFunc is the observability hook from spec.md §6:
// {moment_index, kind, subject_name, payload}.
type EventFunc func(reactor.Event)

// Runtime is the Runtime Façade (spec.md §6, §9). It owns every runtime
// component and serializes all API calls and moment ticks onto a single
// goroutine started by Start, per spec.md §5's concurrency model.
type Runtime struct {
	opts Options

	store     *value.Store
	env       *value.Env
	index     *reactor.DependencyIndex
	changelog *reactor.ChangeLog
	evaluator *eval.Evaluator
	engine    *reactor.Engine
	scheduler *reactor.Scheduler

	log *zap.SugaredLogger

	hooks []EventFunc

	requests chan func()
	done     chan struct{}
	stopped  chan struct{}
	running  bool
}

// New constructs a Runtime with opts, implementing spec.md §6's
// create_runtime(options). The runtime is not yet ticking; call Start.
func New(opts Options) *Runtime {
	opts = opts.withDefaults()

	store := value.NewStore()
	env := value.NewEnv()
	index := reactor.NewDependencyIndex()
	changelog := reactor.NewChangeLog()

	evaluator := eval.New(store, nil, opts.DefaultCurrency, opts.Logger)
	engine := reactor.NewEngine(store, index, changelog, evaluator, opts.HealingDepth)
	scheduler := reactor.NewScheduler(store, index, changelog, evaluator, env, opts.MomentDuration)
	evaluator.Engine = engine

	rt := &Runtime{
		opts:      opts,
		store:     store,
		env:       env,
		index:     index,
		changelog: changelog,
		evaluator: evaluator,
		engine:    engine,
		scheduler: scheduler,
		log:       opts.Logger,
		requests:  make(chan func()),
	}

	engine.CurrentMoment = scheduler.MomentIndex
	observe := rt.dispatch
	engine.Observe = observe
	scheduler.Observe = observe

	return rt
}

// Store exposes the underlying Value Store for callers that allocate
// values outside the normal evaluation path (spec.md §6's
// allocate_value), e.g. host bindings seeding initial state before Start.
func (rt *Runtime) Store() *value.Store { return rt.store }

// Env exposes the single top-level Environment every trigger, constraint,
// and top-level execute(ast) call evaluates against.
func (rt *Runtime) Env() *value.Env { return rt.env }

// On registers an observability hook (spec.md §6's on_event). Hooks fire
// in registration order; On may be called before or after Start.
func (rt *Runtime) On(fn EventFunc) {
	rt.do(func() { rt.hooks = append(rt.hooks, fn) })
}

func (rt *Runtime) dispatch(ev reactor.Event) {
	for _, h := range rt.hooks {
		h(ev)
	}
	if rt.log == nil {
		return
	}
	fields := []interface{}{"moment", ev.MomentIndex, "subject", ev.SubjectName}
	switch ev.Kind {
	case reactor.EventTriggerError, reactor.EventConstraintViolation, reactor.EventHealingFailed:
		rt.log.Warnw(ev.Kind.String(), fields...)
	default:
		rt.log.Infow(ev.Kind.String(), fields...)
	}
}

// RegisterTrigger implements spec.md §6's register_trigger: it allocates
// a trigger value and indexes it by the names its condition references
// (spec.md §4.6).
func (rt *Runtime) RegisterTrigger(name string, event value.EventKind, cond, action types.Expr) value.Handle {
	var h value.Handle
	rt.do(func() {
		h = rt.store.NewTrigger(name, event, cond, action)
		rt.index.Register(reactor.ExtractNames(cond), h)
	})

	return h
}

// UnregisterTrigger implements spec.md §6's unregister_trigger.
func (rt *Runtime) UnregisterTrigger(h value.Handle) {
	rt.do(func() { rt.index.Unregister(h) })
}

// RegisterConstraint implements spec.md §6's register_constraint. heal
// may be nil for a constraint with no healing action. It checks cond
// against current state immediately (attempting heal once if cond fails),
// and returns an InvalidHandle plus a *quillerr.Error{Kind:
// ConstraintViolation} without registering the constraint if the current
// state doesn't satisfy it — spec.md §6's documented failure mode for
// registration, not just for later assignment.
func (rt *Runtime) RegisterConstraint(name string, cond, heal types.Expr) (value.Handle, error) {
	var (
		h   value.Handle
		err error
	)
	rt.do(func() {
		h = rt.store.NewConstraint(name, cond, heal)
		rt.index.Register(reactor.ExtractNames(cond), h)

		if checkErr := rt.engine.CheckNow(rt.env, h); checkErr != nil {
			rt.index.Unregister(h)
			h, err = value.InvalidHandle, checkErr
		}
	})

	return h, err
}

// UnregisterConstraint implements spec.md §6's unregister_constraint.
func (rt *Runtime) UnregisterConstraint(h value.Handle) {
	rt.do(func() { rt.index.Unregister(h) })
}

// Execute implements spec.md §6's execute(ast): evaluates expr against
// the top-level Environment, running the full assignment protocol for
// any writes it performs. A Return that escapes to this top level (there
// is no enclosing function call left to catch it) is reported as
// quillerr.ReturnOutsideFunction rather than the raw internal signal
// (spec.md §4.5, §7).
func (rt *Runtime) Execute(expr types.Expr) (value.Handle, error) {
	var (
		h   value.Handle
		err error
	)
	rt.do(func() {
		h, err = rt.evaluator.Eval(expr, rt.env)
		if err != nil {
			if _, ok := eval.AsReturn(err); ok {
				h, err = value.InvalidHandle, quillerr.New(quillerr.ReturnOutsideFunction, "return outside function")
			}
		}
	})

	return h, err
}

// Assign implements spec.md §6's assign(name, value): a direct write to
// a top-level name, routed through the same Constraint Engine protocol
// as an AssignExpr evaluated by Execute.
func (rt *Runtime) Assign(name string, v value.Handle) error {
	var err error
	rt.do(func() {
		old, hasOld := rt.env.Lookup(name)
		if !hasOld {
			err = quillerr.New(quillerr.UndefinedName, "undefined name: %s", name)

			return
		}
		req := eval.AssignRequest{
			Name: name, New: v, Old: old, HasOld: true,
			Commit: func(chosen value.Handle) error { return rt.env.Assign(name, chosen) },
		}
		err = rt.engine.Assign(rt.env, req)
	})

	return err
}

// Define binds name in the top-level Environment without going through
// the Constraint Engine, for seeding initial state before Start — it is
// the "variable declaration statement" spec.md §9's resolved Open
// Question #1 requires before assign(name, ...) is legal.
func (rt *Runtime) Define(name string, v value.Handle) {
	rt.do(func() { rt.env.Define(name, v) })
}

// FireCustom implements the supplemented Runtime.FireCustom(name) API
// from SPEC_FULL.md §9, firing every custom-kind trigger registered
// under name immediately, outside the moment cadence.
func (rt *Runtime) FireCustom(name string) {
	rt.do(func() { rt.scheduler.FireCustom(name) })
}

// Start begins the moment loop (spec.md §5/§6's start()). It launches
// the single event-loop goroutine that serializes every API call and
// moment tick, plus a ticker goroutine that only ever sends a signal.
// Calling Start on an already-started Runtime is a no-op.
func (rt *Runtime) Start() {
	if rt.running {
		return
	}
	rt.running = true
	rt.done = make(chan struct{})
	rt.stopped = make(chan struct{})

	pollInterval := rt.opts.MomentDuration / 4
	if pollInterval < time.Millisecond {
		pollInterval = time.Millisecond
	}
	ticker := time.NewTicker(pollInterval)

	go func() {
		defer close(rt.stopped)
		defer ticker.Stop()
		for {
			select {
			case <-rt.done:
				rt.scheduler.Shutdown()

				return
			case fn := <-rt.requests:
				fn()
			case now := <-ticker.C:
				rt.scheduler.Tick(now)
			}
		}
	}()
}

// Stop implements spec.md §6's stop(): it signals the event loop to
// exit after firing every shutdown-kind trigger, and blocks until the
// loop has exited. Stop is idempotent and non-blocking to call twice.
func (rt *Runtime) Stop() {
	if !rt.running {
		return
	}
	close(rt.done)
	<-rt.stopped
	rt.running = false
}

// do submits fn to the event loop and blocks for its completion. Before
// Start is called (or after Stop), fn runs synchronously on the caller's
// goroutine instead — Runtime is usable as a plain in-process object
// without ever calling Start, for callers that drive moments manually
// via tests or a host that owns its own scheduling loop.
func (rt *Runtime) do(fn func()) {
	if !rt.running {
		fn()

		return
	}
	done := make(chan struct{})
	rt.requests <- func() {
		fn()
		close(done)
	}
	<-done
}
