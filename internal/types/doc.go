// Package types holds the AST node set consumed by the Quill runtime.
//
// Nodes are grouped by concern across this file for readability, but the
// whole tree lives in ast.go: literals, identifiers and operators,
// compound literals, member/index/call forms, and control flow. See
// spec.md §3 and §6 for the node set this implements and the AST
// contract external parsers must satisfy.
package types
