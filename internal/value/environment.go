package value

import "github.com/quilllang/quill/pkg/quillerr"

// Env is one frame in a lexically nested chain of name→handle bindings
// (spec.md §3/§4.4). Inner frames are released on block or call exit by
// simply dropping the reference; the Store they point into is unaffected.
type Env struct {
	bindings map[string]Handle
	parent   *Env
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]Handle)}
}

// Extend creates a child frame nested inside e.
func (e *Env) Extend() *Env {
	return &Env{bindings: make(map[string]Handle), parent: e}
}

// Define adds name to e's own frame, shadowing any outer binding.
func (e *Env) Define(name string, h Handle) {
	e.bindings[name] = h
}

// Lookup walks outward from e until name is found.
func (e *Env) Lookup(name string) (Handle, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if h, ok := cur.bindings[name]; ok {
			return h, true
		}
	}

	return InvalidHandle, false
}

// Assign writes to the frame that already defines name, per spec.md
// §4.4. It fails with UndefinedName if no frame in the chain defines
// name — SPEC_FULL.md §9 resolves the open question of implicit global
// creation in favor of this stricter reading.
func (e *Env) Assign(name string, h Handle) error {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			cur.bindings[name] = h

			return nil
		}
	}

	return quillerr.New(quillerr.UndefinedName, "undefined name: %s", name)
}

// Snapshot captures every binding visible from e as a flat map, inner
// frames shadowing outer ones. The Constraint Engine does not use it:
// because Env.Assign rewrites in place, its rollback (spec.md §4.8 step
// 4) restores the single name's prior handle instead.
func (e *Env) Snapshot() map[string]Handle {
	out := make(map[string]Handle)
	frames := []*Env{}
	for cur := e; cur != nil; cur = cur.parent {
		frames = append(frames, cur)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		for k, v := range frames[i].bindings {
			out[k] = v
		}
	}

	return out
}
