// SPDX-License-Identifier: MIT

package category

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// Table maps atom names to their categories.
type Table map[string]Category

// Lookup returns the category registered under name.
func (t Table) Lookup(name string) (Category, bool) {
	c, ok := t[name]
	return c, ok
}

func (t Table) has(name string) bool {
	_, ok := t[name]
	return ok
}

// Names returns the atom names in ascending order.
func (t Table) Names() []string {
	names := lo.Keys(map[string]Category(t))
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for name, c := range t {
		out[name] = c.Clone()
	}
	return out
}

// Absorb unions every entry of o into t.
func (t Table) Absorb(o Table) {
	for name, c := range o {
		if cur, ok := t[name]; ok {
			t[name] = cur.Union(c)
			continue
		}
		t[name] = c.Clone()
	}
}

// Equal reports whether t and o hold the same names with equal categories.
func (t Table) Equal(o Table) bool {
	if len(t) != len(o) {
		return false
	}
	for name, c := range t {
		other, ok := o[name]
		if !ok || !c.Equal(other) {
			return false
		}
	}
	return true
}

// Register files cat under the name synthesized for the pair (text1, text2)
// and returns that name. Identical texts keep their own name; otherwise the
// name is text1 + sep + text2, or text2 + sep + text1 when that order is
// already registered. An existing entry is widened with cat.
//
// sep is "_and0_", "_and1_", "_and2_" for intersections and "_merge_" for
// unions; see IntersectSeparator and MergeSeparator.
func (t Table) Register(text1, text2, sep string, cat Category) string {
	name := text1
	if text1 != text2 {
		name = text1 + sep + text2
		if _, ok := t[name]; !ok {
			if reversed := text2 + sep + text1; t.has(reversed) {
				name = reversed
			}
		}
	}
	if cur, ok := t[name]; ok {
		t[name] = cur.Union(cat)
	} else {
		t[name] = cat.Clone()
	}
	return name
}

// IntersectSeparator returns the separator used by Register for a tolerance-tol
// intersection, e.g. "_and1_".
func IntersectSeparator(tol Tolerance) string {
	return "_and" + strconv.Itoa(int(tol)) + "_"
}

// MergeSeparator is the separator used by Register for unions.
const MergeSeparator = "_merge_"
