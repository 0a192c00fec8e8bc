package reactor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/eval"
)

func TestDependencyIndexRegistrationIsIdempotent(t *testing.T) {
	idx := NewDependencyIndex()
	h := value.Handle(7)

	idx.Register([]string{"x", "y"}, h)
	idx.Register([]string{"x"}, h)

	assert.Equal(t, []value.Handle{h}, idx.Watchers("x"))
	assert.Equal(t, []value.Handle{h}, idx.All())
}

func TestDependencyIndexUnregisterRemovesEverywhere(t *testing.T) {
	idx := NewDependencyIndex()
	h := value.Handle(3)
	idx.Register([]string{"x", "y"}, h)

	idx.Unregister(h)

	assert.Empty(t, idx.Watchers("x"))
	assert.Empty(t, idx.Watchers("y"))
	assert.Empty(t, idx.All())
}

func TestChangeLogDrainClears(t *testing.T) {
	log := NewChangeLog()
	log.Mark("x")
	log.Mark("y")

	got := log.Drain()

	assert.ElementsMatch(t, []string{"x", "y"}, got)
	assert.Empty(t, log.Drain())
}

func TestExtractNamesDottedMember(t *testing.T) {
	expr := &types.BinaryExpr{
		Left:  &types.MemberExpr{Object: &types.Ident{Name: "account"}, Name: "balance"},
		Op:    types.OpGT,
		Right: &types.IntLit{Value: 0},
	}

	assert.Equal(t, []string{"account.balance"}, ExtractNames(expr))
}

// setup builds an Evaluator wired to an Engine the way pkg/runtime would,
// for engine- and scheduler-level tests that need real condition/healing
// evaluation.
func setup(t *testing.T) (*value.Store, *value.Env, *eval.Evaluator, *Engine) {
	t.Helper()
	store := value.NewStore()
	env := value.NewEnv()
	index := NewDependencyIndex()
	log := NewChangeLog()

	evaluator := eval.New(store, nil, "USD", nil)
	engine := NewEngine(store, index, log, evaluator, 16)
	evaluator.Engine = engine

	return store, env, evaluator, engine
}

func TestConstraintHealing(t *testing.T) {
	store, env, evaluator, engine := setup(t)

	x := store.NewNumber(5)
	env.Define("x", x)

	// constraint: x < 20, healing: x = 19
	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpLT, Right: &types.IntLit{Value: 20}}
	heal := &types.AssignExpr{Target: &types.Ident{Name: "x"}, Value: &types.IntLit{Value: 19}}
	c := store.NewConstraint("x_under_20", cond, heal)
	engine.Index.Register(ExtractNames(cond), c)

	req := eval.AssignRequest{
		Name: "x", New: store.NewNumber(25), Old: x, HasOld: true,
		Commit: func(h value.Handle) error { return env.Assign("x", h) },
	}
	err := engine.Assign(env, req)
	require.NoError(t, err)

	final, ok := env.Lookup("x")
	require.True(t, ok)
	v, _ := store.Number(final)
	assert.Equal(t, float64(19), v)

	_ = evaluator
}

func TestConstraintRollbackWithoutHealing(t *testing.T) {
	store, env, _, engine := setup(t)

	x := store.NewNumber(5)
	env.Define("x", x)

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpLT, Right: &types.IntLit{Value: 20}}
	c := store.NewConstraint("x_under_20", cond, nil)
	engine.Index.Register(ExtractNames(cond), c)

	req := eval.AssignRequest{
		Name: "x", New: store.NewNumber(30), Old: x, HasOld: true,
		Commit: func(h value.Handle) error { return env.Assign("x", h) },
	}
	err := engine.Assign(env, req)
	require.Error(t, err)

	final, ok := env.Lookup("x")
	require.True(t, ok)
	v, _ := store.Number(final)
	assert.Equal(t, float64(5), v)
}

func TestSchedulerFiresTriggerExactlyOncePerMoment(t *testing.T) {
	store, env, evaluator, _ := setup(t)
	index := NewDependencyIndex()
	log := NewChangeLog()

	env.Define("x", store.NewNumber(5))
	env.Define("y", store.NewNumber(3))

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpGT, Right: &types.Ident{Name: "y"}}
	fired := 0
	action := &types.AssignExpr{Target: &types.Ident{Name: "y"}, Value: &types.IntLit{Value: -1}}
	trig := store.NewTrigger("x_gt_y", value.EventDataChanged, cond, action)
	index.Register(ExtractNames(cond), trig)

	sched := NewScheduler(store, index, log, evaluator, env, time.Millisecond)
	sched.Observe = func(ev Event) {
		if ev.Kind == EventTriggerFired {
			fired++
		}
	}

	log.Mark("x")
	log.Mark("y")

	now := time.Now()
	sched.Tick(now)
	assert.True(t, sched.Tick(now.Add(2*time.Millisecond)))

	assert.Equal(t, 1, fired)
}

func TestSchedulerCustomTriggerFiresOnDemand(t *testing.T) {
	store, env, evaluator, _ := setup(t)
	index := NewDependencyIndex()
	log := NewChangeLog()

	fired := false
	action := &types.BoolLit{Value: true}
	cond := &types.BoolLit{Value: true}
	trig := store.NewTrigger("ping", value.EventCustom, cond, action)
	index.Register(nil, trig)

	sched := NewScheduler(store, index, log, evaluator, env, time.Millisecond)
	sched.Observe = func(ev Event) {
		if ev.Kind == EventTriggerFired && ev.SubjectName == "ping" {
			fired = true
		}
	}

	sched.FireCustom("ping")

	assert.True(t, fired)
}
