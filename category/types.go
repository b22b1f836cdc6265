// SPDX-License-Identifier: MIT

package category

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for category handling.
var (
	// ErrInvalidTolerance indicates a tolerance outside {0, 1, 2}.
	ErrInvalidTolerance = errors.New("category: invalid tolerance level")

	// ErrMalformedTable indicates that a serialized table could not be decoded.
	ErrMalformedTable = errors.New("category: malformed category table")

	// ErrUnknownFormat indicates an unsupported serialization format.
	ErrUnknownFormat = errors.New("category: unknown table format")
)

// Tolerance controls how strictly two categories must overlap to be
// considered "in common" by Intersect.
type Tolerance int

const (
	// Exact matches identifiers only. Roles are recorded but never matched on.
	Exact Tolerance = 0

	// RoleAware lets an abstract category match a concrete one that shares a role name.
	RoleAware Tolerance = 1

	// Abstract additionally lets two abstract categories match on a shared role name.
	Abstract Tolerance = 2
)

// Valid reports whether t is one of the supported levels.
func (t Tolerance) Valid() bool {
	return t >= Exact && t <= Abstract
}

// Validate returns ErrInvalidTolerance wrapped with the offending value, or nil.
func (t Tolerance) Validate() error {
	if !t.Valid() {
		return errors.Wrapf(ErrInvalidTolerance, "tolerance %d", int(t))
	}
	return nil
}

// Format names a serialization format for Decode.
type Format string

// Supported table formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)
