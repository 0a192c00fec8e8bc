// Package reactor implements the reactive side of the runtime: the
// Dependency Index, Change Log, Constraint Engine, and Trigger Scheduler
// from spec.md §4.6–§4.9. It imports pkg/eval (for the AssignRequest
// shape and to evaluate condition/healing/action AST) but pkg/eval never
// imports this package back — the "cyclic references between runtime
// components" design note in spec.md §9 is resolved by making pkg/eval's
// ConstraintEngine an interface that this package's Engine satisfies
// structurally, with pkg/runtime as the owner that wires the two
// together.
package reactor
