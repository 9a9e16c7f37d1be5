package ebkp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

func TestBulkMatch_NoIndex(t *testing.T) {
	_, err := BulkMatch([]element.Element{el("w1", "C2.1")}, nil)
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestBulkMatch_DuplicatesCollapseFirstWins(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})

	// "C02.01" and "C2.1" normalize identically; only the first
	// occurrence is reported.
	results, err := BulkMatch([]element.Element{
		el("a", "C02.01"),
		el("b", "C2.1"),
		el("c", "C9.9"),
	}, ix)
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, "C02.01", results[0].Code)
	assert.Equal(t, "C2.1", results[0].Normalized)
	assert.Equal(t, TierExact, results[0].Tier)
	assert.Equal(t, []string{"w1"}, ids(results[0].Elements))

	// Unresolved codes are still reported.
	assert.Equal(t, "C9.9", results[1].Normalized)
	assert.Equal(t, TierNone, results[1].Tier)
	assert.Empty(t, results[1].Elements)
}

func TestMatchCache_HitWithinTTL(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	cache := NewMatchCache(time.Minute)
	elements := []element.Element{el("a", "C2.1")}

	first, err := cache.Matches(elements, ix, false)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// Second call within the TTL returns the identical payload, even if
	// the inputs would now produce something else.
	second, err := cache.Matches(nil, ix, false)
	assert.NoError(t, err)
	assert.Same(t, &first[0], &second[0])
}

func TestMatchCache_Expiry(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	cache := NewMatchCache(10 * time.Millisecond)

	first, err := cache.Matches([]element.Element{el("a", "C2.1")}, ix, false)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	time.Sleep(20 * time.Millisecond)

	// Expired: recomputed over the new element set.
	second, err := cache.Matches([]element.Element{el("a", "C2.1"), el("b", "C3")}, ix, false)
	assert.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestMatchCache_ForceRefresh(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	cache := NewMatchCache(time.Minute)

	first, err := cache.Matches([]element.Element{el("a", "C2.1")}, ix, false)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := cache.Matches([]element.Element{el("a", "C2.1"), el("b", "C3")}, ix, true)
	assert.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestMatchCache_Invalidate(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	cache := NewMatchCache(time.Minute)

	_, err := cache.Matches([]element.Element{el("a", "C2.1")}, ix, false)
	assert.NoError(t, err)

	cache.Invalidate()

	second, err := cache.Matches([]element.Element{el("a", "C2.1"), el("b", "C3")}, ix, false)
	assert.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestMatchCache_ConcurrentCallersGetWholePayloads(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	cache := NewMatchCache(time.Minute)
	elements := []element.Element{el("a", "C2.1"), el("b", "C3")}

	var wg sync.WaitGroup
	results := make([][]MatchResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := cache.Matches(elements, ix, false)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	// Every caller sees a complete payload, never a partial one.
	for _, r := range results {
		assert.Len(t, r, 2)
	}
}

func TestMatchCache_RetryableWithoutIndex(t *testing.T) {
	cache := NewMatchCache(time.Minute)

	_, err := cache.Matches([]element.Element{el("a", "C2.1")}, nil, false)
	assert.ErrorIs(t, err, ErrNoIndex)

	// A later call with a usable index succeeds.
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})
	results, err := cache.Matches([]element.Element{el("a", "C2.1")}, ix, false)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
}
