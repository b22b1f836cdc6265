// SPDX-License-Identifier: MIT

package automaton

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/category"
)

// Sentinel errors for graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced an id absent from the graph.
	ErrNodeNotFound = errors.New("automaton: node not found")

	// ErrNoRoot indicates that a graph has no node labeled Root.
	ErrNoRoot = errors.New("automaton: graph has no root")
)

// Display texts given to structural nodes and edges.
const (
	EpsilonText = "epsilon"
	RootText    = "root"
	AcceptText  = "accept"
)

// NodeID identifies a node within one Graph. Ids are issued by a per-graph
// counter starting at 1; NoNode is never issued.
type NodeID int

// NoNode is the zero NodeID. RemoveNodeFromEdges treats it as "delete".
const NoNode NodeID = 0

// NodeKind classifies a node.
type NodeKind int

const (
	// KindEpsilon is a structural node introduced to wire fragments together.
	KindEpsilon NodeKind = iota
	// KindRoot marks the unique start node of a finished graph.
	KindRoot
	// KindAccept marks a node where an accepted path may end.
	KindAccept
	// KindAtom marks a node standing for a part (node-form projection only).
	KindAtom
)

func (k NodeKind) String() string {
	switch k {
	case KindEpsilon:
		return "epsilon"
	case KindRoot:
		return "root"
	case KindAccept:
		return "accept"
	case KindAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Operator is an annotation left on a node by the construction step that
// created its structure.
type Operator int

const (
	Or Operator = iota
	Then
	OneOrMore
	ZeroOrMore
	ZeroOrOne
)

func (o Operator) String() string {
	switch o {
	case Or:
		return "Or"
	case Then:
		return "Then"
	case OneOrMore:
		return "OneOrMore"
	case ZeroOrMore:
		return "ZeroOrMore"
	case ZeroOrOne:
		return "ZeroOrOne"
	default:
		return "Unknown"
	}
}

// EdgeKind tells structural edges from part-carrying ones.
type EdgeKind int

const (
	EdgeEpsilon EdgeKind = iota
	EdgeAtom
)

func (k EdgeKind) String() string {
	if k == EdgeAtom {
		return "atom"
	}
	return "epsilon"
}

// Orientation is the strand an atom edge places its part on.
type Orientation int

const (
	NoOrientation Orientation = iota
	Inline
	ReverseComplement
)

func (o Orientation) String() string {
	switch o {
	case Inline:
		return "inline"
	case ReverseComplement:
		return "reverseComplement"
	default:
		return "none"
	}
}

// Component is what an edge carries: either nothing (epsilon, the zero
// value) or a category of parts.
type Component struct {
	cat category.Category
	set bool
}

// Epsilon returns the empty component.
func Epsilon() Component { return Component{} }

// Categories returns a component carrying c.
func Categories(c category.Category) Component {
	return Component{cat: c, set: true}
}

// IsEpsilon reports whether the component carries no category.
func (c Component) IsEpsilon() bool { return !c.set }

// Category returns the carried category, or nil for epsilon.
func (c Component) Category() category.Category { return c.cat }

// Equal compares kind and carried category.
func (c Component) Equal(o Component) bool {
	if c.set != o.set {
		return false
	}
	return !c.set || c.cat.Equal(o.cat)
}

func (c Component) clone() Component {
	return Component{cat: c.cat.Clone(), set: c.set}
}

func (c Component) String() string {
	if !c.set {
		return EpsilonText
	}
	return c.cat.String()
}

// Edge is a transition owned by its source node.
type Edge struct {
	Src, Dest   NodeID
	Component   Component
	Kind        EdgeKind
	Text        string
	Orientation Orientation
}

// Equal compares every field of e and o.
func (e Edge) Equal(o Edge) bool {
	return e.Src == o.Src && e.Dest == o.Dest && e.Kind == o.Kind &&
		e.Text == o.Text && e.Orientation == o.Orientation && e.Component.Equal(o.Component)
}

// SameLabel compares what a path observes when taking the edge: text,
// orientation and component. Endpoints are ignored.
func (e Edge) SameLabel(o Edge) bool {
	return e.Text == o.Text && e.Orientation == o.Orientation && e.Component.Equal(o.Component)
}

func (e Edge) clone() Edge {
	e.Component = e.Component.clone()
	return e
}

// Node is a state of the automaton.
type Node struct {
	ID        NodeID
	Kind      NodeKind
	Text      string
	Operators []Operator
	Edges     []Edge
}

// HasOperator reports whether op is among n's operator tags.
func (n *Node) HasOperator(op Operator) bool {
	for _, o := range n.Operators {
		if o == op {
			return true
		}
	}
	return false
}

func (n *Node) clone() *Node {
	cp := &Node{
		ID:        n.ID,
		Kind:      n.Kind,
		Text:      n.Text,
		Operators: append([]Operator(nil), n.Operators...),
		Edges:     make([]Edge, len(n.Edges)),
	}
	for i, e := range n.Edges {
		cp.Edges[i] = e.clone()
	}
	return cp
}
