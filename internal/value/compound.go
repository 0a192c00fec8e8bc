package value

import "github.com/quilllang/quill/pkg/quillerr"

// ---------------------------------------------------------------------
// List
// ---------------------------------------------------------------------

// NewList constructs a list value from already-evaluated elements. The
// slice is copied so later mutation of the caller's backing array never
// aliases the stored list.
func (s *Store) NewList(elems []Handle) Handle {
	cp := append([]Handle(nil), elems...)

	return s.alloc(cell{kind: KindList, elems: cp})
}

func (s *Store) ListLen(h Handle) (int, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindList {
		return 0, false
	}

	return len(c.elems), true
}

func (s *Store) ListGet(h Handle, i int) (Handle, error) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindList {
		return InvalidHandle, quillerr.New(quillerr.TypeMismatch, "not a list")
	}
	if i < 0 || i >= len(c.elems) {
		return InvalidHandle, quillerr.New(quillerr.IndexOutOfRange, "index %d out of range [0,%d)", i, len(c.elems))
	}

	return c.elems[i], nil
}

// ListSet mutates index i of h in place and returns h, consistent with
// RecordSet's in-place mutation: a list reached through a record field
// or through another list's element stays reachable under the same
// handle after the write, so an index-assignment target rooted in
// anything other than a plain identifier still observes the update.
func (s *Store) ListSet(h Handle, i int, v Handle) (Handle, error) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindList {
		return InvalidHandle, quillerr.New(quillerr.TypeMismatch, "not a list")
	}
	if i < 0 || i >= len(c.elems) {
		return InvalidHandle, quillerr.New(quillerr.IndexOutOfRange, "index %d out of range [0,%d)", i, len(c.elems))
	}
	c.elems[i] = v

	return h, nil
}

// ListAppend returns a new list handle with v appended.
func (s *Store) ListAppend(h Handle, v Handle) (Handle, error) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindList {
		return InvalidHandle, quillerr.New(quillerr.TypeMismatch, "not a list")
	}
	next := append(append([]Handle(nil), c.elems...), v)

	return s.alloc(cell{kind: KindList, elems: next}), nil
}

func (s *Store) ListElements(h Handle) ([]Handle, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindList {
		return nil, false
	}

	return append([]Handle(nil), c.elems...), true
}

// ---------------------------------------------------------------------
// Record
// ---------------------------------------------------------------------

// NewRecord constructs an empty record with an optional parent. Pass
// InvalidHandle for parent to build a root record.
func (s *Store) NewRecord(parent Handle) Handle {
	return s.alloc(cell{kind: KindRecord, attrs: make(map[string]Handle), parent: parent})
}

// RecordSet binds name in h's own (local) frame, shadowing any inherited
// field of the same name. Writes never touch the parent chain (spec.md
// §4.1's "writes stay local" design note).
func (s *Store) RecordSet(h Handle, name string, v Handle) error {
	c, err := s.cell(h)
	if err != nil || c.kind != KindRecord {
		return quillerr.New(quillerr.TypeMismatch, "not a record")
	}
	if _, exists := c.attrs[name]; !exists {
		c.attrOrder = append(c.attrOrder, name)
	}
	c.attrs[name] = v

	return nil
}

// RecordUnset removes a local field so parent lookup resumes for name.
// Supplemented beyond spec.md's table (SPEC_FULL.md §9) so an evaluator
// can implement a "delete field" operation without fabricating a tombstone
// value.
func (s *Store) RecordUnset(h Handle, name string) error {
	c, err := s.cell(h)
	if err != nil || c.kind != KindRecord {
		return quillerr.New(quillerr.TypeMismatch, "not a record")
	}
	if _, exists := c.attrs[name]; exists {
		delete(c.attrs, name)
		for i, n := range c.attrOrder {
			if n == name {
				c.attrOrder = append(c.attrOrder[:i], c.attrOrder[i+1:]...)

				break
			}
		}
	}

	return nil
}

// RecordGet looks up name in h's own frame, falling through to the
// parent chain on miss (spec.md §4.1/§4.5).
func (s *Store) RecordGet(h Handle, name string) (Handle, bool) {
	for cur := h; cur.Valid(); {
		c, err := s.cell(cur)
		if err != nil || c.kind != KindRecord {
			return InvalidHandle, false
		}
		if v, ok := c.attrs[name]; ok {
			return v, true
		}
		cur = c.parent
	}

	return InvalidHandle, false
}

// RecordOwnKeys returns the own (non-inherited) field names of h in
// insertion order.
func (s *Store) RecordOwnKeys(h Handle) ([]string, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindRecord {
		return nil, false
	}

	return append([]string(nil), c.attrOrder...), true
}

// RecordParent returns h's parent handle, or InvalidHandle if h has none.
func (s *Store) RecordParent(h Handle) (Handle, bool) {
	c, err := s.cell(h)
	if err != nil || c.kind != KindRecord {
		return InvalidHandle, false
	}

	return c.parent, true
}
