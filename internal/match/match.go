package match

import (
	"strings"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
)

// #region normalize

// Normalize lowercases text and collapses every run of characters outside
// [a-z0-9] to a single space, trimming the ends. Applied identically to
// haystack and term so punctuation and case never affect matching.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	inGap := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if inGap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inGap = false
			b.WriteRune(r)
			continue
		}
		inGap = true
	}
	return b.String()
}

// #endregion normalize

// #region match

// Term reports whether the raw term occurs in the pre-normalized haystack
// under the given mode. An empty normalized term never matches.
func Term(normalizedText, term string, mode constraint.Mode) bool {
	normalizedTerm := Normalize(term)
	if normalizedTerm == "" {
		return false
	}
	if mode == constraint.MatchSubstring {
		return strings.Contains(normalizedText, normalizedTerm)
	}
	return containsToken(normalizedText, normalizedTerm)
}

// containsToken reports whether term appears as a whole token run in text.
// Normalization guarantees tokens are separated by single spaces, so padding
// both sides gives exact word-boundary semantics ("ham" never hits "hamster").
func containsToken(text, term string) bool {
	return strings.Contains(" "+text+" ", " "+term+" ")
}

// #endregion match
