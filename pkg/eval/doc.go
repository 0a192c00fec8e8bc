// Package eval implements the Evaluator (spec.md §4.5): a recursive walk
// of AST nodes that reads and writes an Environment, allocates through a
// Value Store, dispatches operators to the Value Algebra, and invokes a
// constraint engine on every assignment to a watched name.
//
// Evaluator never imports pkg/reactor directly. Per the "cyclic
// references between runtime components" design note in spec.md §9, the
// two packages communicate through small interfaces defined on each
// side; pkg/runtime is the owner that wires concrete implementations
// together.
package eval
