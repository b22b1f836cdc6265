// SPDX-License-Identifier: MIT

package category

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Category maps a role name to the sorted, de-duplicated identifiers of the
// parts playing that role. A role with an empty identifier list is abstract.
type Category map[string][]string

// New builds a normalized Category from raw role lists.
func New(roles map[string][]string) Category {
	c := make(Category, len(roles))
	for role, ids := range roles {
		c.add(role, ids...)
	}
	return c
}

// Of builds a Category holding ids under a single role.
func Of(role string, ids ...string) Category {
	c := Category{}
	c.add(role, ids...)
	return c
}

// add inserts ids under role, keeping the list sorted and unique. The role key
// is created even when ids is empty.
func (c Category) add(role string, ids ...string) {
	role = strings.TrimSpace(role)
	if role == "" {
		return
	}
	clean := lo.Compact(lo.Map(ids, func(id string, _ int) string {
		return strings.TrimSpace(id)
	}))
	merged := lo.Uniq(append(append([]string{}, c[role]...), clean...))
	sort.Strings(merged)
	c[role] = merged
}

// Roles returns the role names in ascending order.
func (c Category) Roles() []string {
	roles := lo.Keys(map[string][]string(c))
	sort.Strings(roles)
	return roles
}

// IDs returns every identifier of every role, de-duplicated and sorted.
func (c Category) IDs() []string {
	ids := lo.Uniq(lo.Flatten(lo.Values(map[string][]string(c))))
	sort.Strings(ids)
	return ids
}

// HasRole reports whether role is a key of c.
func (c Category) HasRole(role string) bool {
	_, ok := c[role]
	return ok
}

// IsAbstract reports whether c carries no identifiers at all.
func (c Category) IsAbstract() bool {
	for _, ids := range c {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// Empty reports whether c has no roles. An empty category is the "nothing in
// common" result of Intersect and Merge.
func (c Category) Empty() bool {
	return len(c) == 0
}

// Clone returns a deep copy of c.
func (c Category) Clone() Category {
	if c == nil {
		return nil
	}
	out := make(Category, len(c))
	for role, ids := range c {
		out[role] = append([]string{}, ids...)
	}
	return out
}

// Equal reports whether c and o hold the same roles with the same identifiers.
func (c Category) Equal(o Category) bool {
	if len(c) != len(o) {
		return false
	}
	for role, ids := range c {
		other, ok := o[role]
		if !ok || len(other) != len(ids) {
			return false
		}
		for i := range ids {
			if ids[i] != other[i] {
				return false
			}
		}
	}
	return true
}

// Union returns a new Category holding every role and identifier of c and o.
func (c Category) Union(o Category) Category {
	out := c.Clone()
	if out == nil {
		out = Category{}
	}
	for role, ids := range o {
		out.add(role, ids...)
	}
	return out
}

// Shares reports whether c and o have at least one identifier in common.
func (c Category) Shares(o Category) bool {
	theirs := o.IDs()
	return lo.SomeBy(c.IDs(), func(id string) bool {
		return lo.Contains(theirs, id)
	})
}

// String renders c as "role:[id id] role:[]" in role order.
func (c Category) String() string {
	parts := make([]string, 0, len(c))
	for _, role := range c.Roles() {
		parts = append(parts, role+":["+strings.Join(c[role], " ")+"]")
	}
	return strings.Join(parts, " ")
}
