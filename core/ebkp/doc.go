// Package ebkp implements normalization and matching of eBKP-H building
// element classification codes, the multi-tier lookup index over model
// elements, and the TTL-bounded bulk match cache.
//
// eBKP codes as found in the wild are inconsistently written: "C2.1",
// "C02.01" and "c 2.1" all mean the same element group. Normalize folds
// them into a single canonical form so that cost positions from the Excel
// ingestion and elements from the model can be compared at all.
//
// # Matching Tiers
//
// Lookup resolves a code against the index through an ordered set of
// mutually exclusive fallback tiers, stopping at the first nonempty result:
//
//  1. Exact hit on the normalized code.
//  2. Dot-stripped numeric-suffix equality ("C01" matches "C1").
//  3. Prefix containment in either direction, on segment boundaries.
//  4. Major-segment fallback ("C2.1" falls back to "C2"), hitting only
//     elements registered at group level or with decorated codes.
//
// For a fixed element set and code the result set and its order are stable,
// tied to element insertion order.
//
// # Concurrency
//
// An Index is immutable once built; refreshes build a complete replacement
// and publish it by swapping the pointer. MatchCache is safe for concurrent
// use and coalesces rebuilds so at most one executes at a time.
package ebkp
