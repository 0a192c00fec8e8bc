// Package value implements the Value Store (spec.md §4.1): the arena
// that owns every live value for a runtime instance, plus the Environment
// (spec.md §4.4) used for lexical variable scoping.
//
// Values are addressed through opaque Handles rather than Go pointers or
// interfaces, following the arena design in spec.md §9: one sum-typed
// cell per arm, indexed by a stable integer. This package has no
// evaluation logic — pkg/algebra and pkg/eval are the only callers that
// interpret a handle's meaning beyond its Kind.
package value
