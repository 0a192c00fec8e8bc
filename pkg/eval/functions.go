package eval

import (
	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

func (e *Evaluator) evalMember(n *types.MemberExpr, env *value.Env) (value.Handle, error) {
	obj, err := e.Eval(n.Object, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	v, ok := e.Store.RecordGet(obj, n.Name)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.UndefinedName, n.Position(), "no field %q", n.Name)
	}

	return v, nil
}

func (e *Evaluator) evalIndex(n *types.IndexExpr, env *value.Env) (value.Handle, error) {
	obj, err := e.Eval(n.Object, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	idxH, err := e.Eval(n.Index, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	switch e.Store.Kind(obj) {
	case value.KindList:
		idx, ok := e.Store.Number(idxH)
		if !ok {
			return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "list index must be a number")
		}

		return e.Store.ListGet(obj, int(idx))
	case value.KindText:
		idx, ok := e.Store.Number(idxH)
		if !ok {
			return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "text index must be a number")
		}
		text, _ := e.Store.Text(obj)
		i := int(idx)
		if i < 0 || i >= len(text) {
			return value.InvalidHandle, quillerr.At(quillerr.IndexOutOfRange, n.Position(), "index %d out of range for text of length %d", i, len(text))
		}

		return e.Store.NewText(string(text[i])), nil
	default:
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, n.Position(), "cannot index %s", e.Store.Kind(obj))
	}
}

func (e *Evaluator) evalCall(n *types.CallExpr, env *value.Env) (value.Handle, error) {
	if member, ok := n.Callee.(*types.MemberExpr); ok {
		return e.evalMethodCall(n, member, env)
	}

	callee, err := e.Eval(n.Callee, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	return e.callFunction(n, callee, env)
}

// callFunction invokes a value already known to be a function (or fails
// with InvalidCallTarget otherwise), shared by plain calls and by
// evalMethodCall's record-field-as-method fallback.
func (e *Evaluator) callFunction(n *types.CallExpr, callee value.Handle, env *value.Env) (value.Handle, error) {
	if e.Store.Kind(callee) != value.KindFunction {
		return value.InvalidHandle, quillerr.At(quillerr.InvalidCallTarget, n.Position(), "cannot call %s", e.Store.Kind(callee))
	}

	name, params, body, capturedEnv, _ := e.Store.Function(callee)
	if len(n.Args) != len(params) {
		return value.InvalidHandle, quillerr.At(quillerr.ArgumentMismatch, n.Position(),
			"function %s expects %d arguments, got %d", name, len(params), len(n.Args))
	}

	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	callEnv := capturedEnv
	if callEnv == nil {
		callEnv = env
	}
	frame := callEnv.Extend()
	for i, p := range params {
		frame.Define(p, args[i])
	}

	result, err := e.Eval(body, frame)
	if err != nil {
		if rv, ok := AsReturn(err); ok {
			return rv, nil
		}

		return value.InvalidHandle, err
	}

	return result, nil
}

func (e *Evaluator) evalFuncDef(n *types.FuncDef, env *value.Env) (value.Handle, error) {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}

	h := e.Store.NewFunction(n.Name, params, n.Body, env)
	if n.Name != "" {
		env.Define(n.Name, h)
	}

	return h, nil
}
