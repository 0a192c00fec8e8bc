// Package algebra implements the Value Algebra (spec.md §4.2): the pure
// arithmetic, comparison, and conversion rules that give meaning to the
// language's operators over value.Handle. Nothing here holds state or
// touches the Environment, Dependency Index, or Constraint Engine — it
// is a leaf package that pkg/eval calls into for every binary and unary
// operator.
package algebra
