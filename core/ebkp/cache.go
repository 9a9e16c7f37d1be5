package ebkp

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

// DefaultMatchTTL is how long a bulk match payload stays valid.
const DefaultMatchTTL = 5 * time.Minute

// ErrNoIndex is returned when a bulk match is requested without a usable
// index. Callers should treat this as retryable: rebuild the index and ask
// again.
var ErrNoIndex = errors.New("ebkp: match index unavailable")

// MatchResult is the outcome of resolving one classification code against
// the index.
type MatchResult struct {
	// Code is the raw code as carried by the first element requesting it.
	Code string `json:"code"`

	// Normalized is the canonical form the lookup ran against.
	Normalized string `json:"normalized"`

	// Tier names the matching tier that resolved the code.
	Tier Tier `json:"tier"`

	// Elements are the matched elements in index order. Empty when the
	// code resolved to nothing.
	Elements []element.Element `json:"elements"`
}

// BulkMatch resolves the codes of all given elements against the index.
// Duplicate normalized codes collapse first-occurrence-wins; later
// duplicates are dropped, not merged. Codes that resolve to nothing are
// still reported, with TierNone and no elements.
func BulkMatch(elements []element.Element, ix *Index) ([]MatchResult, error) {
	if ix == nil {
		return nil, ErrNoIndex
	}

	seen := make(map[string]struct{}, len(elements))
	results := make([]MatchResult, 0, len(elements))
	for _, e := range elements {
		norm := Normalize(e.Code)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}

		hits, tier := ix.Lookup(norm)
		results = append(results, MatchResult{
			Code:       e.Code,
			Normalized: norm,
			Tier:       tier,
			Elements:   hits,
		})
	}
	return results, nil
}

// MatchCache is a process-wide single-slot cache for bulk match results.
// The payload is replaced wholesale on every rebuild, never patched, so
// readers always observe a fully old or fully new result set. Rebuild
// triggers are coalesced through singleflight; a rebuild runs to completion
// and populates the slot even if the caller that triggered it has gone
// away.
type MatchCache struct {
	mu      sync.RWMutex
	sf      singleflight.Group
	ttl     time.Duration
	payload []MatchResult
	built   time.Time
}

// NewMatchCache creates a match cache with the given TTL. A non-positive
// TTL selects DefaultMatchTTL.
func NewMatchCache(ttl time.Duration) *MatchCache {
	if ttl <= 0 {
		ttl = DefaultMatchTTL
	}
	return &MatchCache{ttl: ttl}
}

// Matches returns the bulk match results for the given elements. A
// populated, unexpired payload is returned as-is unless forceRefresh is
// set; otherwise the results are recomputed once over all elements and
// stored with a fresh timestamp. The returned slice is shared and must be
// treated as read-only.
func (c *MatchCache) Matches(elements []element.Element, ix *Index, forceRefresh bool) ([]MatchResult, error) {
	if !forceRefresh {
		c.mu.RLock()
		payload, fresh := c.payload, c.built
		c.mu.RUnlock()
		if payload != nil && time.Since(fresh) < c.ttl {
			return payload, nil
		}
	}

	// All rebuild triggers share a single slot, so a single flight key
	// serializes them; concurrent callers get the one rebuilt payload.
	v, err, _ := c.sf.Do("bulk", func() (any, error) {
		if !forceRefresh {
			c.mu.RLock()
			payload, fresh := c.payload, c.built
			c.mu.RUnlock()
			if payload != nil && time.Since(fresh) < c.ttl {
				return payload, nil
			}
		}

		results, err := BulkMatch(elements, ix)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.payload = results
		c.built = time.Now()
		c.mu.Unlock()

		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]MatchResult), nil
}

// Invalidate drops the cached payload so the next call recomputes.
func (c *MatchCache) Invalidate() {
	c.mu.Lock()
	c.payload = nil
	c.built = time.Time{}
	c.mu.Unlock()
}
