package reactor

import "github.com/quilllang/quill/internal/types"

// ExtractNames walks a condition or healing expression and returns the
// watched names it references, per the recursive rules in spec.md §4.6.
// Names may repeat; callers that need a set should dedupe.
func ExtractNames(expr types.Expr) []string {
	if expr == nil {
		return nil
	}

	switch n := expr.(type) {
	case *types.Ident:
		return []string{n.Name}

	case *types.MemberExpr:
		if obj, ok := n.Object.(*types.Ident); ok {
			return []string{obj.Name + "." + n.Name}
		}

		return ExtractNames(n.Object)

	case *types.BinaryExpr:
		return append(ExtractNames(n.Left), ExtractNames(n.Right)...)

	case *types.UnaryExpr:
		return ExtractNames(n.Operand)

	case *types.CallExpr:
		names := ExtractNames(n.Callee)
		for _, a := range n.Args {
			names = append(names, ExtractNames(a)...)
		}

		return names

	case *types.IndexExpr:
		return append(ExtractNames(n.Object), ExtractNames(n.Index)...)

	default:
		// Literals and control constructs contribute nothing per
		// spec.md §4.6.
		return nil
	}
}
