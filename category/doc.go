// SPDX-License-Identifier: MIT

// Package category models the part categories that atoms of an expression
// refer to.
//
// A Category maps a role name (for example "cds" or "promoter") to the set
// of concrete part identifiers playing that role. A Table maps atom names to
// their Category. Categories with role keys but no identifiers are
// "abstract": they stand for any part wearing that role.
//
// The package also owns the comparison rules used when two automata are
// combined:
//
//   - Intersect compares two categories under a Tolerance (0, 1 or 2) and
//     returns what the two have in common. Higher tolerances accept every
//     pair a lower tolerance accepts.
//   - Merge returns the union of two categories when they share at least
//     one identifier.
//   - Table.Register stores a combined category under a synthesized name
//     ("a", "a_and0_b", "a_merge_b", ...).
//
// Tables load from JSON (json-iterator) or YAML (yaml.v3). Both the role map
// shape {"cds1": {"cds": ["tetR"]}} and the flat shape {"a": ["a1"]} are
// accepted; the flat shape uses the atom name as the role.
package category
