package ebkp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

func el(id, code string) element.Element {
	return element.Element{
		ID:         id,
		Code:       code,
		Quantities: map[element.Kind]float64{element.KindArea: 1},
	}
}

func ids(elements []element.Element) []string {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		out = append(out, e.ID)
	}
	return out
}

func TestLookup_ExactTier(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})

	hits, tier := ix.Lookup("C2.1")
	assert.Equal(t, TierExact, tier)
	assert.Equal(t, []string{"w1"}, ids(hits))

	// "C2.10" is a different position and must not resolve to "C2.1",
	// neither exactly nor through any fallback tier.
	hits, tier = ix.Lookup("C2.10")
	assert.Equal(t, TierNone, tier)
	assert.Empty(t, hits)
}

func TestLookup_ExactViaNormalization(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C02.01")})

	hits, tier := ix.Lookup("C2.1")
	assert.Equal(t, TierExact, tier)
	assert.Equal(t, []string{"w1"}, ids(hits))
}

func TestLookup_DotlessTier(t *testing.T) {
	// Registered "C1.1" has the dotless key "C11"; looking up "C11"
	// misses the exact registry but matches on numeric suffix equality.
	ix := BuildIndex([]element.Element{el("w1", "C1.1")})

	hits, tier := ix.Lookup("C11")
	assert.Equal(t, TierDotless, tier)
	assert.Equal(t, []string{"w1"}, ids(hits))
}

func TestNumericSuffixEqual(t *testing.T) {
	assert.True(t, numericSuffixEqual("C01", "C1"))
	assert.True(t, numericSuffixEqual("C1", "C01"))
	assert.False(t, numericSuffixEqual("C10", "C1"))
	assert.False(t, numericSuffixEqual("D1", "C1"))
	assert.False(t, numericSuffixEqual("C", "C1"))
}

func TestLookup_PrefixTier(t *testing.T) {
	ix := BuildIndex([]element.Element{
		el("w1", "C2.1"),
		el("w2", "C2.2"),
	})

	// Broader lookup code contains the registered keys.
	hits, tier := ix.Lookup("C2")
	assert.Equal(t, TierPrefix, tier)
	assert.Equal(t, []string{"w1", "w2"}, ids(hits))

	// Deeper lookup code is contained by a registered key.
	hits, tier = ix.Lookup("C2.1.3")
	assert.Equal(t, TierPrefix, tier)
	assert.Equal(t, []string{"w1"}, ids(hits))
}

func TestLookup_PrefixRequiresSegmentBoundary(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})

	// "C2.1" is a plain string prefix of "C2.10" but not a sub-level of
	// it, so the prefix tier must not fire.
	hits, tier := ix.Lookup("C2.10")
	assert.Equal(t, TierNone, tier)
	assert.Empty(t, hits)
}

func TestLookup_MajorTier(t *testing.T) {
	// Decorated, non-canonical codes are reachable only through their
	// major segment.
	ix := BuildIndex([]element.Element{
		el("w1", "C2/Wand"),
		el("w2", "C2/Decke"),
	})

	hits, tier := ix.Lookup("C2.4")
	assert.Equal(t, TierMajor, tier)
	assert.Equal(t, []string{"w1", "w2"}, ids(hits))

	hits, tier = ix.Lookup("C2")
	assert.Equal(t, TierMajor, tier)
	assert.Equal(t, []string{"w1", "w2"}, ids(hits))
}

func TestLookup_SubLevelCodesStayOutOfMajorRegistry(t *testing.T) {
	// "C2.1" must not be registered under "C2": unrelated siblings such
	// as "C2.4" would otherwise match it meaninglessly.
	ix := BuildIndex([]element.Element{el("w1", "C2.1")})

	hits, tier := ix.Lookup("C2.4")
	assert.Equal(t, TierNone, tier)
	assert.Empty(t, hits)
}

func TestLookup_GroupLevelElement(t *testing.T) {
	// An element tagged at group level is caught by the prefix tier for
	// sub-level lookups; the major registry stays a later backstop.
	ix := BuildIndex([]element.Element{el("w1", "C2")})

	hits, tier := ix.Lookup("C2.4")
	assert.Equal(t, TierPrefix, tier)
	assert.Equal(t, []string{"w1"}, ids(hits))
}

func TestLookup_TierOrderStopsAtFirstHit(t *testing.T) {
	ix := BuildIndex([]element.Element{
		el("exact", "C2.1"),
		el("deeper", "C2.1.1"),
	})

	// The exact hit wins; the deeper prefix match is not merged in.
	hits, tier := ix.Lookup("C2.1")
	assert.Equal(t, TierExact, tier)
	assert.Equal(t, []string{"exact"}, ids(hits))
}

func TestLookup_DeterministicOrder(t *testing.T) {
	elements := []element.Element{
		el("a", "C2.1"),
		el("b", "C2.1"),
		el("c", "C2.1"),
	}

	for i := 0; i < 10; i++ {
		ix := BuildIndex(elements)
		hits, _ := ix.Lookup("C2.1")
		assert.Equal(t, []string{"a", "b", "c"}, ids(hits))
	}
}

func TestLookup_EmptyAndUncodedInput(t *testing.T) {
	ix := BuildIndex([]element.Element{el("w1", "C2.1"), {ID: "uncoded"}})

	assert.Equal(t, 1, ix.Size())

	hits, tier := ix.Lookup("")
	assert.Equal(t, TierNone, tier)
	assert.Empty(t, hits)
}
