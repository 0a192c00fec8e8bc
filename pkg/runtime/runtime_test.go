package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
	"github.com/quilllang/quill/pkg/reactor"
)

func newTestRuntime() *Runtime {
	return New(Options{DefaultCurrency: "USD"})
}

// TestScenarioMoneyArithmetic covers spec.md §8 scenario 1: 123.45 USD +
// 10.00 USD, then + 1.5, must land on exactly 1,334,500 then 1,349,500
// subunits.
func TestScenarioMoneyArithmetic(t *testing.T) {
	rt := newTestRuntime()

	sum, err := rt.Execute(&types.BinaryExpr{
		Left:  &types.MoneyLit{AmountSubunits: 1234500, Currency: "USD"},
		Op:    types.OpAdd,
		Right: &types.MoneyLit{AmountSubunits: 100000, Currency: "USD"},
	})
	require.NoError(t, err)
	amt, cur, ok := rt.Store().Money(sum)
	require.True(t, ok)
	assert.Equal(t, int64(1334500), amt)
	assert.Equal(t, "USD", cur)

	rt.Define("sum", sum)
	total, err := rt.Execute(&types.BinaryExpr{
		Left:  &types.Ident{Name: "sum"},
		Op:    types.OpAdd,
		Right: &types.FloatLit{Value: 1.5},
	})
	require.NoError(t, err)
	amt, cur, ok = rt.Store().Money(total)
	require.True(t, ok)
	assert.Equal(t, int64(1349500), amt)
	assert.Equal(t, "USD", cur)
}

// TestScenarioDateArithmeticAcrossBoundaries covers spec.md §8 scenario
// 2: crossing a month boundary and a leap-year February boundary.
func TestScenarioDateArithmeticAcrossBoundaries(t *testing.T) {
	rt := newTestRuntime()

	march30, err := rt.Store().NewDate(2024, 3, 30)
	require.NoError(t, err)
	rt.Define("d", march30)

	april2, err := rt.Execute(&types.CallExpr{
		Callee: &types.MemberExpr{Object: &types.Ident{Name: "d"}, Name: "add_days"},
		Args:   []types.Expr{&types.IntLit{Value: 3}},
	})
	require.NoError(t, err)
	y, m, d, ok := rt.Store().Date(april2)
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 4, m)
	assert.Equal(t, 2, d)

	feb28, err := rt.Store().NewDate(2024, 2, 28)
	require.NoError(t, err)
	rt.Define("leap", feb28)

	feb29, err := rt.Execute(&types.CallExpr{
		Callee: &types.MemberExpr{Object: &types.Ident{Name: "leap"}, Name: "next"},
	})
	require.NoError(t, err)
	_, m, d, _ = rt.Store().Date(feb29)
	assert.Equal(t, 2, m)
	assert.Equal(t, 29, d)

	rt.Define("leap2", feb29)
	mar1, err := rt.Execute(&types.CallExpr{
		Callee: &types.MemberExpr{Object: &types.Ident{Name: "leap2"}, Name: "next"},
	})
	require.NoError(t, err)
	_, m, d, _ = rt.Store().Date(mar1)
	assert.Equal(t, 3, m)
	assert.Equal(t, 1, d)
}

// TestScenarioTriggerFiresOncePerMoment covers spec.md §8 scenario 3: a
// trigger watching x must fire exactly once even though x changes
// multiple times within the same moment, via direct Runtime.Assign calls
// driven through the moment loop by hand (no Start goroutine needed,
// since Runtime methods run synchronously until Start is called).
func TestScenarioTriggerFiresOncePerMoment(t *testing.T) {
	rt := newTestRuntime()

	rt.Define("x", rt.Store().NewNumber(0))
	rt.Define("y", rt.Store().NewNumber(0))

	fired := 0
	rt.On(func(ev reactor.Event) {
		if ev.Kind == reactor.EventTriggerFired {
			fired++
		}
	})

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpGT, Right: &types.IntLit{Value: 0}}
	action := &types.AssignExpr{Target: &types.Ident{Name: "y"}, Value: &types.Ident{Name: "x"}}
	rt.RegisterTrigger("x_changed", value.EventDataChanged, cond, action)

	require.NoError(t, rt.Assign("x", rt.Store().NewNumber(1)))
	require.NoError(t, rt.Assign("x", rt.Store().NewNumber(2)))

	now := time.Now()
	rt.scheduler.Tick(now)
	rt.scheduler.Tick(now.Add(rt.opts.MomentDuration))

	assert.Equal(t, 1, fired)
}

// TestScenarioConstraintHealing covers spec.md §8 scenario 4.
func TestScenarioConstraintHealing(t *testing.T) {
	rt := newTestRuntime()

	rt.Define("stock", rt.Store().NewNumber(10))

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "stock"}, Op: types.OpGTE, Right: &types.IntLit{Value: 0}}
	heal := &types.AssignExpr{Target: &types.Ident{Name: "stock"}, Value: &types.IntLit{Value: 0}}
	_, regErr := rt.RegisterConstraint("stock_nonnegative", cond, heal)
	require.NoError(t, regErr)

	err := rt.Assign("stock", rt.Store().NewNumber(-5))
	require.NoError(t, err)

	final, ok := rt.Env().Lookup("stock")
	require.True(t, ok)
	v, _ := rt.Store().Number(final)
	assert.Equal(t, float64(0), v)
}

// TestScenarioConstraintRollback covers spec.md §8 scenario 5.
func TestScenarioConstraintRollback(t *testing.T) {
	rt := newTestRuntime()

	rt.Define("balance", rt.Store().NewNumber(100))

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "balance"}, Op: types.OpGTE, Right: &types.IntLit{Value: 0}}
	_, regErr := rt.RegisterConstraint("balance_nonnegative", cond, nil)
	require.NoError(t, regErr)

	err := rt.Assign("balance", rt.Store().NewNumber(-50))
	require.Error(t, err)

	final, ok := rt.Env().Lookup("balance")
	require.True(t, ok)
	v, _ := rt.Store().Number(final)
	assert.Equal(t, float64(100), v)
}

// TestScenarioRecordInheritanceDeepCopy covers spec.md §8 scenario 6:
// record inheritance through the parent chain, and that a deep copy is
// independent of the original.
func TestScenarioRecordInheritanceDeepCopy(t *testing.T) {
	rt := newTestRuntime()

	parent := &types.RecordLit{Fields: []types.RecordField{{Name: "species", Value: &types.TextLit{Value: "person"}}}}
	parentHandle, err := rt.Execute(parent)
	require.NoError(t, err)
	rt.Define("p", parentHandle)

	child := &types.RecordLit{
		Parent: &types.Ident{Name: "p"},
		Fields: []types.RecordField{{Name: "name", Value: &types.TextLit{Value: "Ada"}}},
	}
	childHandle, err := rt.Execute(child)
	require.NoError(t, err)

	species, ok := rt.Store().RecordGet(childHandle, "species")
	require.True(t, ok)
	speciesText, _ := rt.Store().Text(species)
	assert.Equal(t, "person", speciesText)

	clone := rt.Store().Clone(childHandle)
	require.NoError(t, rt.Store().RecordSet(clone, "name", rt.Store().NewText("Grace")))

	originalName, _ := rt.Store().RecordGet(childHandle, "name")
	cloneName, _ := rt.Store().RecordGet(clone, "name")
	originalText, _ := rt.Store().Text(originalName)
	cloneText, _ := rt.Store().Text(cloneName)
	assert.Equal(t, "Ada", originalText)
	assert.Equal(t, "Grace", cloneText)
}

// TestRegisterConstraintRejectsAlreadyViolatedState covers spec.md §6's
// register_constraint failure mode: registering a constraint whose
// condition the current state already fails, with no healing action to
// fall back on, must fail the registration itself rather than silently
// succeed and only fail on the next write.
func TestRegisterConstraintRejectsAlreadyViolatedState(t *testing.T) {
	rt := newTestRuntime()
	rt.Define("x", rt.Store().NewNumber(30))

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpLT, Right: &types.IntLit{Value: 20}}
	h, err := rt.RegisterConstraint("x_under_20", cond, nil)
	require.Error(t, err)
	assert.False(t, h.Valid())

	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.ConstraintViolation, k)

	// the rejected constraint must not remain registered: a later write
	// that would have failed it should succeed undisturbed.
	require.NoError(t, rt.Assign("x", rt.Store().NewNumber(25)))
}

// TestRegisterConstraintHealsAlreadyViolatedState covers the same
// registration-time check succeeding via a healing action.
func TestRegisterConstraintHealsAlreadyViolatedState(t *testing.T) {
	rt := newTestRuntime()
	rt.Define("x", rt.Store().NewNumber(30))

	cond := &types.BinaryExpr{Left: &types.Ident{Name: "x"}, Op: types.OpLT, Right: &types.IntLit{Value: 20}}
	heal := &types.AssignExpr{Target: &types.Ident{Name: "x"}, Value: &types.IntLit{Value: 19}}
	h, err := rt.RegisterConstraint("x_under_20_healed", cond, heal)
	require.NoError(t, err)
	assert.True(t, h.Valid())

	healed, ok := rt.Env().Lookup("x")
	require.True(t, ok)
	v, _ := rt.Store().Number(healed)
	assert.Equal(t, float64(19), v)
}

// TestExecuteReturnOutsideFunctionIsReported covers spec.md §4.5/§7: a
// Return with no enclosing function call must surface as
// quillerr.ReturnOutsideFunction, not the internal return signal.
func TestExecuteReturnOutsideFunctionIsReported(t *testing.T) {
	rt := newTestRuntime()

	_, err := rt.Execute(&types.ReturnExpr{Value: &types.IntLit{Value: 1}})
	require.Error(t, err)
	k, ok := quillerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, quillerr.ReturnOutsideFunction, k)
}

// TestIndexAssignmentThroughRecordFieldRoot covers spec.md §4.5's
// index-assignment contract for a root that is not a bare identifier
// (here, a record field holding a list): the write must be observable
// through the record afterward, not silently discarded.
func TestIndexAssignmentThroughRecordFieldRoot(t *testing.T) {
	rt := newTestRuntime()

	items := rt.Store().NewList([]value.Handle{rt.Store().NewNumber(1), rt.Store().NewNumber(2)})
	order := rt.Store().NewRecord(value.InvalidHandle)
	require.NoError(t, rt.Store().RecordSet(order, "items", items))
	rt.Define("order", order)

	_, err := rt.Execute(&types.AssignExpr{
		Target: &types.IndexExpr{
			Object: &types.MemberExpr{Object: &types.Ident{Name: "order"}, Name: "items"},
			Index:  &types.IntLit{Value: 0},
		},
		Value: &types.IntLit{Value: 99},
	})
	require.NoError(t, err)

	updatedList, ok := rt.Store().RecordGet(order, "items")
	require.True(t, ok)
	first, err := rt.Store().ListGet(updatedList, 0)
	require.NoError(t, err)
	v, _ := rt.Store().Number(first)
	assert.Equal(t, float64(99), v)
}

func TestDecodeOptionsMillisecondDuration(t *testing.T) {
	opts, err := DecodeOptions(map[string]interface{}{
		"moment_duration":  500,
		"default_currency": "EUR",
		"healing_depth":    "8",
	})
	require.NoError(t, err)
	assert.Equal(t, 500*1e6, float64(opts.MomentDuration))
	assert.Equal(t, "EUR", opts.DefaultCurrency)
	assert.Equal(t, 8, opts.HealingDepth)
}
