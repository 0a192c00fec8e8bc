package eval

import (
	"go.uber.org/zap"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// ConstraintEngine is the capability the Evaluator needs from the
// Constraint Engine (spec.md §4.8) to run the assignment protocol. The
// concrete implementation lives in pkg/reactor; pkg/runtime wires it in.
type ConstraintEngine interface {
	// Assign runs the full assignment protocol for req against env: skip
	// if no observable change, tentatively commit via req.Commit,
	// evaluate and (if needed) heal every constraint watching req.Name,
	// roll back via req.Commit(req.Old) on failure, and mark the Change
	// Log on success.
	Assign(env *value.Env, req AssignRequest) error
}

// AssignRequest describes one pending write for the Constraint Engine.
// Commit performs the actual storage write (identifier, record field, or
// list element) and is called once optimistically and, on failure, once
// more to roll back to Old.
type AssignRequest struct {
	Name   string
	New    value.Handle
	Old    value.Handle
	HasOld bool
	Commit func(value.Handle) error
	// Remove undoes a tentative commit when HasOld is false (the write
	// created a binding that didn't exist before). Only called during
	// rollback; nil when the target can never lack a prior binding
	// (identifiers, list indices).
	Remove func() error
}

// Evaluator walks an AST and returns value handles, per spec.md §4.5.
type Evaluator struct {
	Store           *value.Store
	Engine          ConstraintEngine
	DefaultCurrency string
	Log             *zap.SugaredLogger
}

// New creates an Evaluator. engine may be nil, in which case assignments
// commit directly without running any constraint; it can also be set
// afterward through the Engine field, as pkg/runtime does.
// defaultCurrency is used by number→money conversions and money literals
// with no explicit currency.
func New(store *value.Store, engine ConstraintEngine, defaultCurrency string, log *zap.SugaredLogger) *Evaluator {
	return &Evaluator{Store: store, Engine: engine, DefaultCurrency: defaultCurrency, Log: log}
}

// Eval dispatches on expr's concrete type, the central switch mirrored
// on the teacher's evalExpr.
func (e *Evaluator) Eval(expr types.Expr, env *value.Env) (value.Handle, error) {
	switch n := expr.(type) {
	case *types.IntLit:
		return e.Store.NewNumber(float64(n.Value)), nil
	case *types.FloatLit:
		return e.Store.NewNumber(n.Value), nil
	case *types.TextLit:
		return e.Store.NewText(n.Value), nil
	case *types.BoolLit:
		return e.Store.NewBool(n.Value), nil
	case *types.NilLit:
		return e.Store.NewNil(), nil
	case *types.UnknownLit:
		return e.Store.NewUnknown(), nil
	case *types.MoneyLit:
		currency := n.Currency
		if currency == "" {
			currency = e.DefaultCurrency
		}

		return e.Store.NewMoney(n.AmountSubunits, currency), nil
	case *types.DateLit:
		return e.Store.NewDate(n.Year, n.Month, n.Day)
	case *types.TimeLit:
		return e.Store.NewTime(n.Hour, n.Minute, n.Second, n.Millisecond)
	case *types.DateTimeLit:
		return e.Store.NewDateTime(n.Year, n.Month, n.Day, n.Hour, n.Minute, n.Second, n.Millisecond)
	case *types.PercentageLit:
		return e.Store.NewPercentage(n.Value), nil
	case *types.RatioLit:
		return e.Store.NewRatio(n.Numerator, n.Denominator)

	case *types.Ident:
		return e.evalIdent(n, env)

	case *types.ListLit:
		return e.evalList(n, env)
	case *types.RecordLit:
		return e.evalRecord(n, env)

	case *types.BinaryExpr:
		return e.evalBinary(n, env)
	case *types.UnaryExpr:
		return e.evalUnary(n, env)

	case *types.MemberExpr:
		return e.evalMember(n, env)
	case *types.IndexExpr:
		return e.evalIndex(n, env)
	case *types.CallExpr:
		return e.evalCall(n, env)

	case *types.AssignExpr:
		return e.evalAssign(n, env)

	case *types.BlockExpr:
		return e.evalBlock(n, env)
	case *types.ExprStmt:
		return e.Eval(n.Expr, env)
	case *types.VarDecl:
		return e.evalVarDecl(n, env)
	case *types.IfExpr:
		return e.evalIf(n, env)
	case *types.WhileExpr:
		return e.evalWhile(n, env)
	case *types.ForExpr:
		return e.evalFor(n, env)
	case *types.ForInExpr:
		return e.evalForIn(n, env)
	case *types.ReturnExpr:
		return e.evalReturn(n, env)
	case *types.FuncDef:
		return e.evalFuncDef(n, env)

	default:
		return value.InvalidHandle, quillerr.At(quillerr.InvalidValue, n.Position(), "unhandled AST node")
	}
}

func (e *Evaluator) evalIdent(n *types.Ident, env *value.Env) (value.Handle, error) {
	h, ok := env.Lookup(n.Name)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.UndefinedName, n.Position(), "undefined name: %s", n.Name)
	}

	return h, nil
}

func (e *Evaluator) evalList(n *types.ListLit, env *value.Env) (value.Handle, error) {
	elems := make([]value.Handle, len(n.Elements))
	for i, el := range n.Elements {
		h, err := e.Eval(el, env)
		if err != nil {
			return value.InvalidHandle, err
		}
		elems[i] = h
	}

	return e.Store.NewList(elems), nil
}

func (e *Evaluator) evalRecord(n *types.RecordLit, env *value.Env) (value.Handle, error) {
	parent := value.InvalidHandle
	if n.Parent != nil {
		h, err := e.Eval(n.Parent, env)
		if err != nil {
			return value.InvalidHandle, err
		}
		parent = h
	}

	rec := e.Store.NewRecord(parent)
	for _, f := range n.Fields {
		v, err := e.Eval(f.Value, env)
		if err != nil {
			return value.InvalidHandle, err
		}
		if err := e.Store.RecordSet(rec, f.Name, v); err != nil {
			return value.InvalidHandle, err
		}
	}

	return rec, nil
}
