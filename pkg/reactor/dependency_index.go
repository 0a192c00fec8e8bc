package reactor

import "github.com/quilllang/quill/internal/value"

// DependencyIndex maps a watched name to the ordered set of reactive
// handles (triggers or constraints, distinguished by the caller via
// value.Store.Kind) whose condition or action references that name.
// Registration and de-registration are idempotent per spec.md §4.6.
type DependencyIndex struct {
	byName map[string][]value.Handle
	all    map[value.Handle]struct{}
	order  []value.Handle
}

// NewDependencyIndex creates an empty index.
func NewDependencyIndex() *DependencyIndex {
	return &DependencyIndex{
		byName: make(map[string][]value.Handle),
		all:    make(map[value.Handle]struct{}),
	}
}

// Register associates h with every name in names. Re-registering the
// same handle under a name already holding it is a no-op.
func (idx *DependencyIndex) Register(names []string, h value.Handle) {
	if _, seen := idx.all[h]; !seen {
		idx.all[h] = struct{}{}
		idx.order = append(idx.order, h)
	}
	for _, name := range names {
		list := idx.byName[name]
		alreadyWatching := false
		for _, existing := range list {
			if existing == h {
				alreadyWatching = true

				break
			}
		}
		if !alreadyWatching {
			idx.byName[name] = append(list, h)
		}
	}
}

// Unregister removes h from every name's set and from the all-handles
// registry.
func (idx *DependencyIndex) Unregister(h value.Handle) {
	delete(idx.all, h)
	for i, o := range idx.order {
		if o == h {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)

			break
		}
	}
	for name, list := range idx.byName {
		for i, existing := range list {
			if existing == h {
				idx.byName[name] = append(list[:i], list[i+1:]...)

				break
			}
		}
	}
}

// Watchers returns the handles registered against name, in registration
// order.
func (idx *DependencyIndex) Watchers(name string) []value.Handle {
	return append([]value.Handle(nil), idx.byName[name]...)
}

// All returns every registered handle, in registration order. Used for
// the pessimistic fan-out tie-break in spec.md §4.5 when a write's
// affected name could not be statically determined.
func (idx *DependencyIndex) All() []value.Handle {
	return append([]value.Handle(nil), idx.order...)
}
