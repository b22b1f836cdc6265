// SPDX-License-Identifier: MIT

package category

import (
	"github.com/samber/lo"
)

// Intersect returns what a and b have in common under tolerance tol.
// An Empty result means the two do not match.
//
//   - Exact: an identifier is in common when it appears in both, whatever
//     role it sits under on either side; the result files it under every
//     role it matched under.
//   - RoleAware: two concrete categories fall back to Exact. Otherwise the
//     two must share a role name and one side must be concrete; the result
//     is the concrete side plus the abstract side's roles.
//   - Abstract: two abstract categories sharing a role name match with all
//     of their roles and no identifiers. Anything else falls back to
//     RoleAware.
//
// Complexity: O(R·I log I) for R roles and I identifiers.
func Intersect(a, b Category, tol Tolerance) (Category, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	switch tol {
	case Exact:
		return intersectExact(a, b), nil
	case RoleAware:
		return intersectRoles(a, b), nil
	default:
		if a.IsAbstract() && b.IsAbstract() {
			if !sharesRole(a, b) {
				return Category{}, nil
			}
			out := Category{}
			for _, role := range lo.Union(a.Roles(), b.Roles()) {
				out.add(role)
			}
			return out, nil
		}
		return intersectRoles(a, b), nil
	}
}

func intersectExact(a, b Category) Category {
	theirs := b.IDs()
	shared := lo.Filter(a.IDs(), func(id string, _ int) bool {
		return lo.Contains(theirs, id)
	})
	out := Category{}
	if len(shared) == 0 {
		return out
	}
	for _, side := range []Category{a, b} {
		for role, ids := range side {
			hit := lo.Filter(ids, func(id string, _ int) bool {
				return lo.Contains(shared, id)
			})
			if len(hit) > 0 {
				out.add(role, hit...)
			}
		}
	}
	return out
}

func intersectRoles(a, b Category) Category {
	aConcrete, bConcrete := !a.IsAbstract(), !b.IsAbstract()
	if aConcrete && bConcrete {
		return intersectExact(a, b)
	}
	if !aConcrete && !bConcrete {
		return Category{}
	}
	if !sharesRole(a, b) {
		return Category{}
	}
	concrete, abstract := a, b
	if bConcrete {
		concrete, abstract = b, a
	}
	out := concrete.Clone()
	for _, role := range abstract.Roles() {
		out.add(role)
	}
	return out
}

func sharesRole(a, b Category) bool {
	return lo.SomeBy(a.Roles(), b.HasRole)
}

// Merge returns the union of a and b when they share at least one
// identifier under any pair of roles, and an Empty category otherwise.
func Merge(a, b Category) Category {
	if !a.Shares(b) {
		return Category{}
	}
	return a.Union(b)
}
