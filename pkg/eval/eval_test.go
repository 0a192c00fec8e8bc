package eval

import (
	"testing"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

func newEvaluator() (*Evaluator, *value.Store, *value.Env) {
	s := value.NewStore()

	return New(s, nil, "USD", nil), s, value.NewEnv()
}

func testNumberResult(t *testing.T, s *value.Store, h value.Handle, expected float64) {
	t.Helper()
	v, ok := s.Number(h)
	if !ok {
		t.Fatalf("result is not a number, got kind %s", s.Kind(h))
	}
	if v != expected {
		t.Errorf("got %v, want %v", v, expected)
	}
}

func testBoolResult(t *testing.T, s *value.Store, h value.Handle, expected bool) {
	t.Helper()
	v, ok := s.Bool(h)
	if !ok {
		t.Fatalf("result is not a boolean, got kind %s", s.Kind(h))
	}
	if v != expected {
		t.Errorf("got %v, want %v", v, expected)
	}
}

func TestEvalArithmetic(t *testing.T) {
	e, s, env := newEvaluator()

	// 2 + 3 * 4
	expr := &types.BinaryExpr{
		Left: &types.IntLit{Value: 2},
		Op:   types.OpAdd,
		Right: &types.BinaryExpr{
			Left:  &types.IntLit{Value: 3},
			Op:    types.OpMul,
			Right: &types.IntLit{Value: 4},
		},
	}

	h, err := e.Eval(expr, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testNumberResult(t, s, h, 14)
}

func TestEvalMoneyArithmetic(t *testing.T) {
	e, s, env := newEvaluator()

	// 123.45 USD + 10.00 USD
	sum, err := e.Eval(&types.BinaryExpr{
		Left:  &types.MoneyLit{AmountSubunits: 1234500, Currency: "USD"},
		Op:    types.OpAdd,
		Right: &types.MoneyLit{AmountSubunits: 100000, Currency: "USD"},
	}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	amt, cur, ok := s.Money(sum)
	if !ok {
		t.Fatalf("result is not money")
	}
	if amt != 1334500 || cur != "USD" {
		t.Errorf("got %d %s, want 1334500 USD", amt, cur)
	}

	// + 1.5 (a plain number)
	total, err := e.Eval(&types.BinaryExpr{
		Left:  &types.Ident{Name: "sum"},
		Op:    types.OpAdd,
		Right: &types.FloatLit{Value: 1.5},
	}, envWith(env, "sum", sum))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amt, cur, ok = s.Money(total)
	if !ok || amt != 1349500 || cur != "USD" {
		t.Errorf("got %d %s ok=%v, want 1349500 USD", amt, cur, ok)
	}
}

func TestEvalCurrencyMismatch(t *testing.T) {
	e, _, env := newEvaluator()

	_, err := e.Eval(&types.BinaryExpr{
		Left:  &types.MoneyLit{AmountSubunits: 100, Currency: "USD"},
		Op:    types.OpAdd,
		Right: &types.MoneyLit{AmountSubunits: 100, Currency: "EUR"},
	}, env)
	if k, ok := quillerr.KindOf(err); !ok || k != quillerr.CurrencyMismatch {
		t.Fatalf("expected CurrencyMismatch, got %v", err)
	}
}

func TestEvalIfAndComparison(t *testing.T) {
	e, s, env := newEvaluator()

	cond := &types.BinaryExpr{Left: &types.IntLit{Value: 5}, Op: types.OpGT, Right: &types.IntLit{Value: 3}}
	h, err := e.Eval(cond, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testBoolResult(t, s, h, true)

	ifExpr := &types.IfExpr{
		Cond: cond,
		Then: &types.IntLit{Value: 1},
		Else: &types.IntLit{Value: 0},
	}
	h, err = e.Eval(ifExpr, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testNumberResult(t, s, h, 1)
}

func TestEvalFunctionCallAndArityMismatch(t *testing.T) {
	e, s, env := newEvaluator()

	fn := &types.FuncDef{
		Params: []types.Param{{Name: "x"}, {Name: "y"}},
		Body: &types.BinaryExpr{
			Left: &types.Ident{Name: "x"}, Op: types.OpAdd, Right: &types.Ident{Name: "y"},
		},
	}
	fnHandle, err := e.Eval(fn, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := &types.CallExpr{
		Callee: &types.Ident{Name: "add"},
		Args:   []types.Expr{&types.IntLit{Value: 2}, &types.IntLit{Value: 40}},
	}
	env2 := envWith(env, "add", fnHandle)
	h, err := e.Eval(call, env2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testNumberResult(t, s, h, 42)

	badCall := &types.CallExpr{
		Callee: &types.Ident{Name: "add"},
		Args:   []types.Expr{&types.IntLit{Value: 1}},
	}
	if _, err := e.Eval(badCall, env2); err == nil {
		t.Fatalf("expected ArgumentMismatch error")
	}
}

// TestEvalReturnPropagatesAsSignal confirms Eval itself never catches a
// Return — that only happens at the nearest enclosing function call
// (callFunction) or, for one that escapes every call, at
// runtime.Runtime.Execute, which turns it into
// quillerr.ReturnOutsideFunction. Eval is an internal building block, not
// the spec.md §6 execute(ast) entry point, so it still reports the raw
// signal here.
func TestEvalReturnPropagatesAsSignal(t *testing.T) {
	e, _, env := newEvaluator()

	_, err := e.Eval(&types.ReturnExpr{Value: &types.IntLit{Value: 1}}, env)
	if _, ok := AsReturn(err); !ok {
		t.Fatalf("expected a propagating return signal, got %v", err)
	}
}

func TestEvalRecordInheritance(t *testing.T) {
	e, s, env := newEvaluator()

	parent := &types.RecordLit{Fields: []types.RecordField{{Name: "name", Value: &types.TextLit{Value: "Generic Person"}}}}
	parentHandle, err := e.Eval(parent, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := &types.RecordLit{
		Parent: &types.Ident{Name: "p"},
		Fields: []types.RecordField{{Name: "job", Value: &types.TextLit{Value: "Engineer"}}},
	}
	childHandle, err := e.Eval(child, envWith(env, "p", parentHandle))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, ok := s.RecordGet(childHandle, "name")
	if !ok {
		t.Fatalf("expected inherited field name")
	}
	testTextResult(t, s, name, "Generic Person")
}

func testTextResult(t *testing.T, s *value.Store, h value.Handle, expected string) {
	t.Helper()
	v, ok := s.Text(h)
	if !ok {
		t.Fatalf("result is not text, got kind %s", s.Kind(h))
	}
	if v != expected {
		t.Errorf("got %q, want %q", v, expected)
	}
}

func envWith(env *value.Env, name string, h value.Handle) *value.Env {
	frame := env.Extend()
	frame.Define(name, h)

	return frame
}
