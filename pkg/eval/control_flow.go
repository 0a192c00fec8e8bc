package eval

import (
	"errors"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// returnSignal is the sentinel propagated as an error from a Return
// expression until it is caught at the nearest enclosing function call
// (spec.md §4.5: "Return unwinds to the enclosing call"). It is never
// presented to a caller outside this package as an ordinary error.
type returnSignal struct {
	value value.Handle
}

func (r *returnSignal) Error() string { return "return outside function" }

// AsReturn reports whether err is a propagating return and, if so, the
// value it carries.
func AsReturn(err error) (value.Handle, bool) {
	var r *returnSignal
	if errors.As(err, &r) {
		return r.value, true
	}

	return value.InvalidHandle, false
}

func (e *Evaluator) evalReturn(n *types.ReturnExpr, env *value.Env) (value.Handle, error) {
	if n.Value == nil {
		return value.InvalidHandle, &returnSignal{value: e.Store.NewNil()}
	}
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	return value.InvalidHandle, &returnSignal{value: v}
}

func (e *Evaluator) evalBlock(n *types.BlockExpr, env *value.Env) (value.Handle, error) {
	frame := env.Extend()
	last := e.Store.NewNil()
	for _, stmt := range n.Statements {
		v, err := e.Eval(stmt, frame)
		if err != nil {
			return value.InvalidHandle, err
		}
		last = v
	}

	return last, nil
}

func (e *Evaluator) evalVarDecl(n *types.VarDecl, env *value.Env) (value.Handle, error) {
	v := e.Store.NewNil()
	if n.Init != nil {
		var err error
		v, err = e.Eval(n.Init, env)
		if err != nil {
			return value.InvalidHandle, err
		}
	}
	env.Define(n.Name, v)

	return v, nil
}

func (e *Evaluator) boolCond(expr types.Expr, env *value.Env) (bool, error) {
	h, err := e.Eval(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := e.Store.Bool(h)
	if !ok {
		return false, quillerr.At(quillerr.TypeMismatch, expr.Position(), "condition must be boolean, got %s", e.Store.Kind(h))
	}

	return b, nil
}

func (e *Evaluator) evalIf(n *types.IfExpr, env *value.Env) (value.Handle, error) {
	cond, err := e.boolCond(n.Cond, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	if cond {
		return e.Eval(n.Then, env)
	}
	if n.Else != nil {
		return e.Eval(n.Else, env)
	}

	return e.Store.NewNil(), nil
}

func (e *Evaluator) evalWhile(n *types.WhileExpr, env *value.Env) (value.Handle, error) {
	result := e.Store.NewNil()
	for {
		cond, err := e.boolCond(n.Cond, env)
		if err != nil {
			return value.InvalidHandle, err
		}
		if !cond {
			break
		}
		result, err = e.Eval(n.Body, env)
		if err != nil {
			return value.InvalidHandle, err
		}
	}

	return result, nil
}

func (e *Evaluator) evalFor(n *types.ForExpr, env *value.Env) (value.Handle, error) {
	frame := env.Extend()
	if n.Init != nil {
		if _, err := e.Eval(n.Init, frame); err != nil {
			return value.InvalidHandle, err
		}
	}

	result := e.Store.NewNil()
	for {
		if n.Cond != nil {
			cond, err := e.boolCond(n.Cond, frame)
			if err != nil {
				return value.InvalidHandle, err
			}
			if !cond {
				break
			}
		}

		var err error
		result, err = e.Eval(n.Body, frame)
		if err != nil {
			return value.InvalidHandle, err
		}

		if n.Update != nil {
			if _, err := e.Eval(n.Update, frame); err != nil {
				return value.InvalidHandle, err
			}
		}
	}

	return result, nil
}

func (e *Evaluator) evalForIn(n *types.ForInExpr, env *value.Env) (value.Handle, error) {
	iter, err := e.Eval(n.Iter, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	elems, ok := e.Store.ListElements(iter)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "for-in requires a list, got %s", e.Store.Kind(iter))
	}

	result := e.Store.NewNil()
	for _, el := range elems {
		frame := env.Extend()
		frame.Define(n.VarName, el)
		var err error
		result, err = e.Eval(n.Body, frame)
		if err != nil {
			return value.InvalidHandle, err
		}
	}

	return result, nil
}
