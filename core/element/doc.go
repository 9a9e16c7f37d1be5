// Package element defines the model-derived building elements consumed by
// the cost mapping core, and the quantity selection logic over them.
//
// An Element is a snapshot of a single model element (e.g. a wall or slab)
// carrying its eBKP classification code and one or more physical quantity
// magnitudes (area, length, volume). Elements are immutable during a
// mapping pass; the model data source replaces them wholesale on refresh.
//
// # Quantity Selection
//
// Quantities are selected in a fixed priority order: area, length, volume,
// count. "count" is a synthetic fallback of magnitude 1 that is always
// available for any identified element, so selection never comes up empty
// for valid input. A user-edited override for a kind always wins over the
// model-derived magnitude of that kind.
package element
