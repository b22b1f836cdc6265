// SPDX-License-Identifier: MIT

package expr

// Normalize pushes every ReverseComplement down to the atoms it covers, so
// that in the result ReverseComplement only ever wraps an Atom.
//
//	reverse-comp (a then b)    -> (reverse-comp b) then (reverse-comp a)
//	reverse-comp (a or b)      -> (reverse-comp a) or (reverse-comp b)
//	reverse-comp (one-or-more a) -> one-or-more (reverse-comp a)
//	reverse-comp (reverse-comp a) -> a
//
// And and Merge distribute the same way as Or.
func Normalize(e Expr) Expr {
	return normalize(e, false)
}

func normalize(e Expr, flip bool) Expr {
	switch n := e.(type) {
	case Atom:
		if flip {
			return ReverseComplement{X: n}
		}
		return n
	case ReverseComplement:
		return normalize(n.X, !flip)
	case Then:
		if flip {
			return Then{A: normalize(n.B, true), B: normalize(n.A, true)}
		}
		return Then{A: normalize(n.A, false), B: normalize(n.B, false)}
	case Or:
		return Or{A: normalize(n.A, flip), B: normalize(n.B, flip)}
	case And:
		return And{A: normalize(n.A, flip), B: normalize(n.B, flip), Tolerance: n.Tolerance}
	case Merge:
		return Merge{A: normalize(n.A, flip), B: normalize(n.B, flip)}
	case ZeroOrOne:
		return ZeroOrOne{X: normalize(n.X, flip)}
	case ZeroOrMore:
		return ZeroOrMore{X: normalize(n.X, flip)}
	case OneOrMore:
		return OneOrMore{X: normalize(n.X, flip)}
	default:
		return e
	}
}
