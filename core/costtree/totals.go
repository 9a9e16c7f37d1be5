package costtree

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"strconv"
)

// totalEntry is the memoized state of one node.
type totalEntry struct {
	lastTotal float64
	signature uint64
	version   uint64
	valid     bool
}

// TotalCache memoizes per-node totals behind structural signatures. Nodes
// are identified through an arena of stable integer IDs, assigned on first
// sight, so the memoization works regardless of how callers hold the tree.
// A node's total is recomputed only when its freshly derived signature
// differs from the cached one, which bounds the cost of a rollup to the
// touched subtree.
//
// A TotalCache is bound to one tree and is not safe for concurrent use.
type TotalCache struct {
	ids        map[*Node]int
	entries    []totalEntry
	recomputes int
}

// NewTotalCache creates an empty cache. IDs are handed out lazily as
// ComputeTotal walks the tree.
func NewTotalCache() *TotalCache {
	return &TotalCache{ids: make(map[*Node]int)}
}

// Recomputes returns how many node totals have actually been recomputed
// since the cache was created. It stays flat across repeated calls on an
// unchanged tree.
func (c *TotalCache) Recomputes() int {
	return c.recomputes
}

// Version returns the recompute version of a node, zero if the node has
// never been computed.
func (c *TotalCache) Version(n *Node) uint64 {
	id, ok := c.ids[n]
	if !ok {
		return 0
	}
	return c.entries[id].version
}

// Invalidate drops all memoized state. The next ComputeTotal recomputes
// the whole tree.
func (c *TotalCache) Invalidate() {
	c.ids = make(map[*Node]int)
	c.entries = c.entries[:0]
}

// ComputeTotal returns the rolled-up total of the tree rooted at n,
// recomputing only the subtrees whose structural signature changed since
// the previous call.
func (c *TotalCache) ComputeTotal(n *Node) (float64, error) {
	if n == nil {
		return 0, ErrInvalidTree
	}
	// Cheap cycle/structure check up front; a corrupted tree must fail,
	// not loop.
	if _, err := n.Clone(); err != nil {
		return 0, err
	}
	total, _ := c.compute(n)
	return total, nil
}

func (c *TotalCache) compute(n *Node) (float64, uint64) {
	var sig uint64
	if n.IsLeaf() {
		sig = leafSignature(n)
	} else {
		childSigs := make([]uint64, len(n.Children))
		for i, child := range n.Children {
			_, childSigs[i] = c.compute(child)
		}
		sig = aggregateSignature(childSigs)
	}

	id := c.nodeID(n)
	entry := &c.entries[id]
	if entry.valid && entry.signature == sig {
		return entry.lastTotal, sig
	}

	// Signature changed (or first sight): recompute this node.
	c.recomputes++
	var total float64
	if n.IsLeaf() {
		total = leafTotal(n)
	} else {
		for _, child := range n.Children {
			childID := c.ids[child]
			total += c.entries[childID].lastTotal
		}
	}

	entry.lastTotal = total
	entry.signature = sig
	entry.version++
	entry.valid = true
	return total, sig
}

// nodeID returns the arena ID of a node, assigning the next free one on
// first sight.
func (c *TotalCache) nodeID(n *Node) int {
	if id, ok := c.ids[n]; ok {
		return id
	}
	id := len(c.entries)
	c.ids[n] = id
	c.entries = append(c.entries, totalEntry{})
	return id
}

// leafSignature derives a leaf's structural signature from its code, unit
// price and quantity.
func leafSignature(n *Node) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(n.Code))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatFloat(n.UnitPrice, 'g', -1, 64)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatFloat(n.Quantity, 'g', -1, 64)))
	return h.Sum64()
}

// aggregateSignature derives an aggregate's signature from the sorted list
// of its children's signatures, so child reordering alone does not force a
// recomputation.
func aggregateSignature(childSigs []uint64) uint64 {
	sorted := make([]uint64, len(childSigs))
	copy(sorted, childSigs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	var buf [8]byte
	for _, s := range sorted {
		binary.BigEndian.PutUint64(buf[:], s)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
