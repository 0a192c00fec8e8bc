package value

import "github.com/quilllang/quill/internal/types"

// ---------------------------------------------------------------------
// Function
// ---------------------------------------------------------------------

// NewFunction constructs a function value. env is the lexical environment
// captured at definition time (nil for values built outside any
// environment, e.g. builtins registered before Eval creates one).
func (s *Store) NewFunction(name string, params []string, body types.Expr, env *Env) Handle {
	return s.alloc(cell{
		kind:     KindFunction,
		fnName:   name,
		fnParams: append([]string(nil), params...),
		fnBody:   body,
		fnEnv:    env,
	})
}

// Function returns a function value's components.
func (s *Store) Function(h Handle) (name string, params []string, body types.Expr, env *Env, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindFunction {
		return "", nil, nil, nil, false
	}

	return c.fnName, append([]string(nil), c.fnParams...), c.fnBody, c.fnEnv, true
}

// ---------------------------------------------------------------------
// Trigger
// ---------------------------------------------------------------------

// NewTrigger constructs a trigger value pairing a condition and an
// action AST (spec.md §3, §4.9).
func (s *Store) NewTrigger(name string, event EventKind, cond, action types.Expr) Handle {
	return s.alloc(cell{
		kind:        KindTrigger,
		reactName:   name,
		reactEvent:  event,
		reactCond:   cond,
		reactAction: action,
	})
}

func (s *Store) Trigger(h Handle) (name string, event EventKind, cond, action types.Expr, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindTrigger {
		return "", 0, nil, nil, false
	}

	return c.reactName, c.reactEvent, c.reactCond, c.reactAction, true
}

// ---------------------------------------------------------------------
// Constraint
// ---------------------------------------------------------------------

// NewConstraint constructs a constraint value with an optional healing
// action (nil means no healing, per spec.md §4.8).
func (s *Store) NewConstraint(name string, cond, heal types.Expr) Handle {
	return s.alloc(cell{
		kind:        KindConstraint,
		reactName:   name,
		reactCond:   cond,
		reactAction: heal,
	})
}

func (s *Store) Constraint(h Handle) (name string, cond, heal types.Expr, ok bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindConstraint {
		return "", nil, nil, false
	}

	return c.reactName, c.reactCond, c.reactAction, true
}
