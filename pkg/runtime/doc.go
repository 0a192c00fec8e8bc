// Package runtime is the Runtime Façade from spec.md §6: the single
// owning type that wires a Value Store, Environment, Evaluator,
// Dependency Index, Change Log, Constraint Engine, and Trigger Scheduler
// together and exposes them as one cohesive API.
//
// pkg/eval never imports pkg/reactor; pkg/reactor imports pkg/eval only
// for the AssignRequest shape and the WildcardName constant. Each side
// reaches the other's behavior through a small interface
// (eval.ConstraintEngine, reactor.Evaluator). Runtime is the "single
// owning façade" spec.md §9 calls for to resolve the cyclic-reference
// design note — it is the place concrete instances cross the boundary.
//
// Runtime also owns the single-threaded event loop required by spec.md
// §5: every public method sends a request over a channel to one
// goroutine started by Start, so moment ticks and API calls never
// interleave without locks.
package runtime
