// Package costtree implements the hierarchical cost estimate structure and
// the mapping pass that replaces manual quantities with model-derived ones.
//
// A cost tree arrives from the upstream Excel ingestion: leaves carry a
// unit price (Kennwert) and a manually estimated quantity (Menge),
// aggregate nodes only group their children. Map walks such a tree against
// an element index, overwrites leaf quantities where the model can supply
// them, tags every leaf with a provenance label, and recomputes aggregate
// totals bottom-up. The input tree is never mutated; Map works on a
// private deep copy and returns a new annotated tree.
//
// TotalCache memoizes per-node totals behind structural signatures so that
// repeated rollups over a large, mostly unchanged tree only descend into
// the touched subtree.
package costtree
