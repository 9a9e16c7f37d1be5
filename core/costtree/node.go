package costtree

import (
	"errors"
	"fmt"
)

// Provenance records how a leaf's quantity value was produced. The
// vocabulary is closed and stable; downstream audit and reporting rely on
// exactly these four values.
type Provenance string

const (
	// ProvExactMatch marks a leaf whose quantity was taken from matched
	// model elements.
	ProvExactMatch Provenance = "exact-match"
	// ProvZeroQuantityMatch marks a leaf with matching elements whose
	// aggregated quantity was zero; original values were kept.
	ProvZeroQuantityMatch Provenance = "zero-quantity-match"
	// ProvUnmatched marks a leaf whose code resolved to no elements.
	ProvUnmatched Provenance = "unmatched"
	// ProvNoCode marks a leaf that carries no classification code.
	ProvNoCode Provenance = "no-code"
)

// ErrInvalidTree is wrapped by all structural precondition failures.
var ErrInvalidTree = errors.New("costtree: invalid tree structure")

// Snapshot preserves the manual leaf values that a mapping pass replaced,
// so they stay recoverable for audit.
type Snapshot struct {
	Quantity  float64 `json:"menge"`
	Unit      string  `json:"einheit,omitempty"`
	Total     float64 `json:"chf"`
	ElementID string  `json:"-"`
}

// Node is one node of the cost estimate tree. A node is exactly one of
// leaf (no children; carries quantity, unit price and total) or aggregate
// (children only; after a mapping pass its own rate/quantity fields are
// cleared and Total holds the derived sum). JSON field names follow the
// upstream ingestion format.
type Node struct {
	// Code is the eBKP classification code of this position.
	Code string `json:"ebkp"`

	// Label is the display text of the position.
	Label string `json:"label,omitempty"`

	// Quantity is the amount (Menge) priced on a leaf.
	Quantity float64 `json:"menge,omitempty"`

	// Unit is the unit of Quantity.
	Unit string `json:"einheit,omitempty"`

	// UnitPrice is the rate per unit (Kennwert).
	UnitPrice float64 `json:"kennwert,omitempty"`

	// Total is the monetary total of this node in CHF.
	Total float64 `json:"chf,omitempty"`

	// Provenance tags how the leaf's quantity was derived. Empty before
	// a mapping pass and on aggregate nodes.
	Provenance Provenance `json:"provenance,omitempty"`

	// Previous holds the pre-mapping leaf values when they were
	// overwritten.
	Previous *Snapshot `json:"previous,omitempty"`

	// Children makes this node an aggregate.
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node prices a position itself rather than
// grouping children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the tree rooted at n. It validates the
// structure while copying and fails on cycles or nil children rather than
// looping.
func (n *Node) Clone() (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	onPath := make(map[*Node]struct{})
	return cloneNode(n, onPath)
}

func cloneNode(n *Node, onPath map[*Node]struct{}) (*Node, error) {
	if _, revisited := onPath[n]; revisited {
		return nil, fmt.Errorf("%w: cycle at %q", ErrInvalidTree, n.Code)
	}
	onPath[n] = struct{}{}
	defer delete(onPath, n)

	out := *n
	if n.Previous != nil {
		prev := *n.Previous
		out.Previous = &prev
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			if child == nil {
				return nil, fmt.Errorf("%w: nil child under %q", ErrInvalidTree, n.Code)
			}
			c, err := cloneNode(child, onPath)
			if err != nil {
				return nil, err
			}
			out.Children[i] = c
		}
	}
	return &out, nil
}

// postOrder returns all nodes of the tree children-first, using an
// explicit stack so arbitrarily deep trees cannot exhaust the call stack.
// The caller must have validated the structure (Clone does).
func postOrder(root *Node) []*Node {
	var out []*Node
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = append(stack, n.Children...)
	}
	// Reversing the right-to-left pre-order visit yields children-first
	// order with sibling order preserved.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
