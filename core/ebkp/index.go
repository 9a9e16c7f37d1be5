package ebkp

import (
	"strconv"
	"strings"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

// Tier identifies which matching tier resolved a lookup.
type Tier string

const (
	// TierExact is a hit on the exact normalized code.
	TierExact Tier = "exact"
	// TierDotless is a dot-stripped numeric-suffix equality hit.
	TierDotless Tier = "dotless"
	// TierPrefix is a segment-boundary prefix containment hit.
	TierPrefix Tier = "prefix"
	// TierMajor is a major-segment fallback hit.
	TierMajor Tier = "major"
	// TierNone means no tier produced a match.
	TierNone Tier = "none"
)

// Index is a multi-tier lookup structure over model elements, keyed by
// their normalized classification codes. It is immutable after BuildIndex;
// a refresh builds a complete replacement and publishes it in one step.
type Index struct {
	exact   map[string][]element.Element
	dotless map[string][]element.Element
	major   map[string][]element.Element

	// key slices preserve first-registration order so that multi-key
	// tiers (dotless, prefix) return deterministic results.
	exactKeys   []string
	dotlessKeys []string

	size int
}

// BuildIndex populates the three registries from the given elements.
// Elements without a usable classification code are skipped.
//
// The major-segment registry is selective: an element enters it only when
// its code carries no canonical sub-level beyond the major block, i.e. it
// is tagged at group level ("C2") or with a decorated, non-canonical code
// ("C2/WAND"). Registering sub-level codes like "C2.1" under "C2" would
// make every unrelated sibling lookup ("C2.4", "C2.10") hit them
// meaninglessly, so those stay out.
func BuildIndex(elements []element.Element) *Index {
	ix := &Index{
		exact:   make(map[string][]element.Element),
		dotless: make(map[string][]element.Element),
		major:   make(map[string][]element.Element),
	}

	for _, e := range elements {
		code := Normalize(e.Code)
		if code == "" {
			continue
		}
		ix.size++

		if _, seen := ix.exact[code]; !seen {
			ix.exactKeys = append(ix.exactKeys, code)
		}
		ix.exact[code] = append(ix.exact[code], e)

		stripped := strings.ReplaceAll(code, ".", "")
		if _, seen := ix.dotless[stripped]; !seen {
			ix.dotlessKeys = append(ix.dotlessKeys, stripped)
		}
		ix.dotless[stripped] = append(ix.dotless[stripped], e)

		if major := MajorSegment(code); major != "" {
			if code == major || !codeShape.MatchString(code) {
				ix.major[major] = append(ix.major[major], e)
			}
		}
	}

	return ix
}

// Size returns the number of indexed elements.
func (ix *Index) Size() int {
	if ix == nil {
		return 0
	}
	return ix.size
}

// Lookup resolves a classification code to the matching elements and the
// tier that produced them. Tiers are evaluated in order and the first
// nonempty result wins; broader matches from later tiers are never merged
// into an earlier hit.
func (ix *Index) Lookup(code string) ([]element.Element, Tier) {
	norm := Normalize(code)
	if norm == "" {
		return nil, TierNone
	}

	// Tier 1: exact normalized code.
	if hits := ix.exact[norm]; len(hits) > 0 {
		return hits, TierExact
	}

	// Tier 2: dot-stripped numeric-suffix equality.
	stripped := strings.ReplaceAll(norm, ".", "")
	var hits []element.Element
	for _, key := range ix.dotlessKeys {
		if numericSuffixEqual(stripped, key) {
			hits = append(hits, ix.dotless[key]...)
		}
	}
	if len(hits) > 0 {
		return hits, TierDotless
	}

	// Tier 3: prefix containment either direction, on segment boundaries.
	for _, key := range ix.exactKeys {
		if segmentPrefix(norm, key) || segmentPrefix(key, norm) {
			hits = append(hits, ix.exact[key]...)
		}
	}
	if len(hits) > 0 {
		return hits, TierPrefix
	}

	// Tier 4: major-segment fallback against group-level registrations.
	if major := MajorSegment(norm); major != "" {
		if hits := ix.major[major]; len(hits) > 0 {
			return hits, TierMajor
		}
	}

	return nil, TierNone
}

// numericSuffixEqual reports whether two dot-stripped codes refer to the
// same position: the leading letter must match and the digit remainders
// must be numerically equal, so "C01" equals "C1" but "C10" does not.
func numericSuffixEqual(a, b string) bool {
	if a == "" || b == "" || a[0] != b[0] {
		return false
	}
	av, aok := digitsValue(a[1:])
	bv, bok := digitsValue(b[1:])
	return aok && bok && av == bv
}

// digitsValue parses an all-digit string as its numeric value.
func digitsValue(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// segmentPrefix reports whether prefix is a strict sub-level prefix of
// code, i.e. code continues with a deeper segment after it. Plain string
// prefixes do not qualify: "C2.1" is not a prefix-match for "C2.10".
func segmentPrefix(prefix, code string) bool {
	if len(code) <= len(prefix) || !strings.HasPrefix(code, prefix) {
		return false
	}
	return code[len(prefix)] == '.'
}
