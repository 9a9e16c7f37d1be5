package costtree

import (
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/ebkp"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

// MapSummary counts what a mapping pass did, for reporting and logs.
type MapSummary struct {
	// Leaves is the number of leaf positions visited.
	Leaves int `json:"leaves"`

	// Matched counts leaves whose quantity was overwritten from the model.
	Matched int `json:"matched"`

	// ZeroQuantity counts leaves that matched elements without usable
	// quantities.
	ZeroQuantity int `json:"zero_quantity"`

	// Unmatched counts leaves whose code resolved to no elements.
	Unmatched int `json:"unmatched"`

	// NoCode counts leaves without a classification code.
	NoCode int `json:"no_code"`

	// Aggregates counts the non-leaf nodes whose totals were recomputed.
	Aggregates int `json:"aggregates"`
}

// MapResult is the outcome of a mapping pass: the new annotated tree and
// the summary over it.
type MapResult struct {
	Root    *Node      `json:"tree"`
	Summary MapSummary `json:"summary"`
}

// Map reconciles a cost tree against the element index. It never mutates
// the input: the tree is deep-copied first, and structural violations
// (cycles, nil children) abort with an error before any work happens.
//
// Pass 1 walks the copy children-first and annotates every leaf: where the
// index resolves the leaf's code and the matched elements carry a usable
// aggregated quantity, the leaf's quantity and total are overwritten (the
// manual values move into the Previous snapshot) and the leaf is tagged
// exact-match; otherwise the original values stay and the leaf is tagged
// zero-quantity-match, unmatched, or no-code.
//
// Pass 2 is a separate children-first traversal that recomputes every
// aggregate's total as the sum over its direct children of quantity times
// unit price (an aggregate child contributes its derived total), then
// clears the aggregate's own quantity, unit and rate fields.
func Map(root *Node, ix *ebkp.Index) (*MapResult, error) {
	tree, err := root.Clone()
	if err != nil {
		return nil, err
	}

	nodes := postOrder(tree)
	var summary MapSummary

	// Pass 1: leaf annotation.
	for _, n := range nodes {
		if !n.IsLeaf() {
			continue
		}
		summary.Leaves++
		annotateLeaf(n, ix, &summary)
	}

	// Pass 2: bottom-up aggregation. The post-order array guarantees all
	// children are final before their parent is visited.
	for _, n := range nodes {
		if n.IsLeaf() {
			continue
		}
		total := 0.0
		for _, child := range n.Children {
			if child.IsLeaf() {
				total += leafTotal(child)
			} else {
				total += child.Total
			}
		}
		n.Total = total
		// An aggregate never carries its own rate, only a derived total.
		n.Quantity = 0
		n.UnitPrice = 0
		n.Unit = ""
		summary.Aggregates++
	}

	return &MapResult{Root: tree, Summary: summary}, nil
}

// annotateLeaf applies matching and quantity selection to a single leaf.
func annotateLeaf(n *Node, ix *ebkp.Index, summary *MapSummary) {
	if n.Code == "" {
		n.Provenance = ProvNoCode
		summary.NoCode++
		return
	}

	matches, _ := ix.Lookup(n.Code)
	if len(matches) == 0 {
		// Original quantity stays; the total is still priced from it so
		// the rollup never mixes stale and fresh money values.
		n.Total = leafTotal(n)
		n.Provenance = ProvUnmatched
		summary.Unmatched++
		return
	}

	quantity, unit := aggregateQuantity(matches)
	if quantity <= element.Epsilon {
		n.Total = leafTotal(n)
		n.Provenance = ProvZeroQuantityMatch
		summary.ZeroQuantity++
		return
	}

	n.Previous = &Snapshot{
		Quantity: n.Quantity,
		Unit:     n.Unit,
		Total:    n.Total,
	}
	n.Quantity = quantity
	n.Unit = unit
	n.Total = leafTotal(n)
	n.Provenance = ProvExactMatch
	summary.Matched++
}

// aggregateQuantity sums the selected quantity across matched elements.
// The kind is fixed by the first element's selection so magnitudes of
// different dimensions are never added together; elements missing that
// kind contribute nothing.
func aggregateQuantity(matches []element.Element) (float64, string) {
	selected := element.Select(matches[0], "")
	if selected.Kind == "" {
		return 0, ""
	}
	total := 0.0
	for _, e := range matches {
		if v, ok := element.Magnitude(e, selected.Kind); ok {
			total += v
		}
	}
	return total, selected.Unit
}

// leafTotal prices a leaf. A missing or non-positive unit price yields a
// zero total rather than a negative or undefined one.
func leafTotal(n *Node) float64 {
	if n.UnitPrice <= 0 {
		return 0
	}
	return n.Quantity * n.UnitPrice
}
