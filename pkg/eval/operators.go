package eval

import (
	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/algebra"
	"github.com/quilllang/quill/pkg/quillerr"
)

func (e *Evaluator) evalBinary(n *types.BinaryExpr, env *value.Env) (value.Handle, error) {
	if n.Op == types.OpAnd || n.Op == types.OpOr {
		return e.evalShortCircuit(n, env)
	}

	left, err := e.Eval(n.Left, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	switch n.Op {
	case types.OpAdd:
		return algebra.Add(e.Store, left, right)
	case types.OpSub:
		return algebra.Sub(e.Store, left, right)
	case types.OpMul:
		return algebra.Mul(e.Store, left, right)
	case types.OpDiv:
		return algebra.Div(e.Store, left, right)
	case types.OpEq:
		ok, err := algebra.Equal(e.Store, left, right)
		if err != nil {
			return value.InvalidHandle, err
		}

		return e.Store.NewBool(ok), nil
	case types.OpNEq:
		ok, err := algebra.Equal(e.Store, left, right)
		if err != nil {
			return value.InvalidHandle, err
		}

		return e.Store.NewBool(!ok), nil
	case types.OpLT, types.OpGT, types.OpLTE, types.OpGTE:
		c, err := algebra.Compare(e.Store, left, right)
		if err != nil {
			return value.InvalidHandle, err
		}

		return e.Store.NewBool(compareHolds(n.Op, c)), nil
	default:
		return value.InvalidHandle, quillerr.At(quillerr.InvalidOperator, n.Position(), "unknown binary operator %s", n.Op)
	}
}

func compareHolds(op types.BinOp, c int) bool {
	switch op {
	case types.OpLT:
		return c < 0
	case types.OpGT:
		return c > 0
	case types.OpLTE:
		return c <= 0
	case types.OpGTE:
		return c >= 0
	default:
		return false
	}
}

// evalShortCircuit implements && and || without evaluating the right
// operand when the left one already decides the result.
func (e *Evaluator) evalShortCircuit(n *types.BinaryExpr, env *value.Env) (value.Handle, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	lb, ok := e.Store.Bool(left)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "%s requires boolean operands", n.Op)
	}

	if n.Op == types.OpAnd && !lb {
		return e.Store.NewBool(false), nil
	}
	if n.Op == types.OpOr && lb {
		return e.Store.NewBool(true), nil
	}

	right, err := e.Eval(n.Right, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	rb, ok := e.Store.Bool(right)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "%s requires boolean operands", n.Op)
	}

	return e.Store.NewBool(rb), nil
}

func (e *Evaluator) evalUnary(n *types.UnaryExpr, env *value.Env) (value.Handle, error) {
	v, err := e.Eval(n.Operand, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	switch n.Op {
	case types.OpNeg:
		return algebra.Negate(e.Store, v)
	case types.OpNot:
		return algebra.Not(e.Store, v)
	default:
		return value.InvalidHandle, quillerr.At(quillerr.InvalidOperator, n.Position(), "unknown unary operator")
	}
}
