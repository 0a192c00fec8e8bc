package reactor

// ChangeLog collects the names whose binding changed during the current
// moment (spec.md §4.7). The Evaluator (through the Constraint Engine)
// writes to it only after a write has committed.
type ChangeLog struct {
	names map[string]struct{}
}

// NewChangeLog creates an empty log.
func NewChangeLog() *ChangeLog {
	return &ChangeLog{names: make(map[string]struct{})}
}

// Mark records that name changed during the current moment.
func (c *ChangeLog) Mark(name string) {
	c.names[name] = struct{}{}
}

// Drain returns every marked name and clears the log.
func (c *ChangeLog) Drain() []string {
	out := make([]string, 0, len(c.names))
	for n := range c.names {
		out = append(out, n)
	}
	c.names = make(map[string]struct{})

	return out
}
