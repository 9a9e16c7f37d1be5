package ebkp

import (
	"regexp"
	"strings"
	"unicode"
)

// codeShape matches the canonical letter-block-plus-digit-groups form of an
// eBKP code after cleanup: one or more letters, then optional dot-separated
// digit groups. The first group may be glued to the letters or follow a dot.
var codeShape = regexp.MustCompile(`^([A-Z]+)(\.?[0-9]+(?:\.[0-9]+)*)?$`)

// Normalize canonicalizes a raw classification code. It uppercases, trims
// and removes internal whitespace, strips leading zeros inside each digit
// group ("C02.01" -> "C2.1") and merges a dot that directly follows the
// letter block ("C.1" -> "C1"). Input that does not have the letter+digit
// shape is returned with only case/whitespace cleanup applied. Normalize
// never fails and is idempotent; empty input yields the empty string.
func Normalize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
	if cleaned == "" {
		return ""
	}

	m := codeShape.FindStringSubmatch(cleaned)
	if m == nil {
		return cleaned
	}
	letters, digits := m[1], m[2]
	if digits == "" {
		return letters
	}

	// A dot directly after the letter block carries no level information;
	// "C.1" and "C1" name the same group.
	digits = strings.TrimPrefix(digits, ".")

	groups := strings.Split(digits, ".")
	for i, g := range groups {
		g = strings.TrimLeft(g, "0")
		if g == "" {
			g = "0"
		}
		groups[i] = g
	}

	return letters + strings.Join(groups, ".")
}

// majorShape extracts the leading letter+digit block of a code, stopping
// at the first sub-level separator or decoration ("C2.1" -> "C2",
// "C2/WAND" -> "C2").
var majorShape = regexp.MustCompile(`^[A-Z]+[0-9]*`)

// MajorSegment returns the leading letter+digit block of a normalized
// code, the group-level identifier preceding any sub-level separator.
// It returns "" when the code does not start with a letter block.
func MajorSegment(code string) string {
	return majorShape.FindString(code)
}
