package eval

import (
	"fmt"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/quillerr"
)

// evalAssign implements `=` on identifier, member, and index targets per
// spec.md §4.5's assignment protocol: evaluate the right-hand side,
// compute the prospective binding, hand it to the Constraint Engine, and
// surface ConstraintViolation on failure without touching the prior
// binding (the engine itself performs the rollback).
func (e *Evaluator) evalAssign(n *types.AssignExpr, env *value.Env) (value.Handle, error) {
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return value.InvalidHandle, err
	}

	switch target := n.Target.(type) {
	case *types.Ident:
		return e.assignIdent(target, rhs, env)
	case *types.MemberExpr:
		return e.assignMember(target, rhs, env)
	case *types.IndexExpr:
		return e.assignIndex(target, rhs, env)
	default:
		return value.InvalidHandle, quillerr.At(quillerr.InvalidAssignmentTarget, n.Position(), "invalid assignment target")
	}
}

func (e *Evaluator) assignIdent(target *types.Ident, rhs value.Handle, env *value.Env) (value.Handle, error) {
	old, hasOld := env.Lookup(target.Name)
	if !hasOld {
		// SPEC_FULL.md §9 resolution of the assign-on-undefined-name open
		// question: fail, never create implicitly.
		return value.InvalidHandle, quillerr.At(quillerr.UndefinedName, target.Position(), "undefined name: %s", target.Name)
	}

	req := AssignRequest{
		Name: target.Name,
		New:  rhs,
		Old:  old, HasOld: true,
		Commit: func(chosen value.Handle) error { return env.Assign(target.Name, chosen) },
	}

	return e.commitAssignment(env, req, rhs)
}

func (e *Evaluator) assignMember(target *types.MemberExpr, rhs value.Handle, env *value.Env) (value.Handle, error) {
	owner, err := e.Eval(target.Object, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	if e.Store.Kind(owner) != value.KindRecord {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, target.Position(), "cannot assign a field on %s", e.Store.Kind(owner))
	}

	old, hasOld := e.Store.RecordGet(owner, target.Name)
	name, isDotted := affectedMemberName(target)

	req := AssignRequest{
		Name: name,
		New:  rhs,
		Old:  old, HasOld: hasOld,
		Commit: func(chosen value.Handle) error { return e.Store.RecordSet(owner, target.Name, chosen) },
		Remove: func() error { return e.Store.RecordUnset(owner, target.Name) },
	}
	if !isDotted {
		req.Name = wildcardName
	}

	return e.commitAssignment(env, req, rhs)
}

func (e *Evaluator) assignIndex(target *types.IndexExpr, rhs value.Handle, env *value.Env) (value.Handle, error) {
	listHandle, err := e.Eval(target.Object, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	if e.Store.Kind(listHandle) != value.KindList {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, target.Position(), "cannot index-assign %s", e.Store.Kind(listHandle))
	}
	idxH, err := e.Eval(target.Index, env)
	if err != nil {
		return value.InvalidHandle, err
	}
	idxV, ok := e.Store.Number(idxH)
	if !ok {
		return value.InvalidHandle, quillerr.At(quillerr.TypeMismatch, target.Position(), "list index must be a number")
	}
	idx := int(idxV)

	old, err := e.Store.ListGet(listHandle, idx)
	if err != nil {
		return value.InvalidHandle, err
	}

	name, isConstIdentIndex := affectedIndexName(target, idx)

	req := AssignRequest{
		Name: name,
		New:  rhs,
		Old:  old, HasOld: true,
		Commit: func(chosen value.Handle) error {
			_, err := e.Store.ListSet(listHandle, idx, chosen)

			return err
		},
	}
	if !isConstIdentIndex {
		req.Name = wildcardName
	}

	return e.commitAssignment(env, req, rhs)
}

// commitAssignment runs req through the Constraint Engine when one is
// wired, or performs the commit directly when the Evaluator has no
// engine (an Evaluator built with a nil engine). Assignments made by a
// constraint's healing action go through the same engine recursively.
func (e *Evaluator) commitAssignment(env *value.Env, req AssignRequest, result value.Handle) (value.Handle, error) {
	if e.Engine == nil {
		if err := req.Commit(req.New); err != nil {
			return value.InvalidHandle, err
		}

		return result, nil
	}
	if err := e.Engine.Assign(env, req); err != nil {
		return value.InvalidHandle, err
	}

	return result, nil
}

// WildcardName marks an assignment whose affected name could not be
// statically determined; the reactor treats it as touching every watcher
// (spec.md §4.5's pessimistic fan-out tie-break).
const WildcardName = "*"

const wildcardName = WildcardName

// affectedMemberName builds the dotted path from spec.md §4.5: the
// outermost identifier's name followed by each member name, joined by
// ".". Returns ok=false when the chain doesn't ground in a plain
// identifier, in which case the caller falls back to pessimistic
// fan-out.
func affectedMemberName(m *types.MemberExpr) (string, bool) {
	switch obj := m.Object.(type) {
	case *types.Ident:
		return obj.Name + "." + m.Name, true
	case *types.MemberExpr:
		base, ok := affectedMemberName(obj)
		if !ok {
			return "", false
		}

		return base + "." + m.Name, true
	default:
		return "", false
	}
}

// affectedIndexName implements spec.md §4.5's index rule: "identifier[index]"
// only when the root is a plain identifier; otherwise unspecified.
func affectedIndexName(ix *types.IndexExpr, idx int) (string, bool) {
	ident, ok := ix.Object.(*types.Ident)
	if !ok {
		return "", false
	}

	return fmt.Sprintf("%s[%d]", ident.Name, idx), true
}
