package duplicates

import "strings"

// Similarity scores two descriptions in [0,1] using the Jaccard overlap of
// their character trigrams. Case-insensitive, trimmed equality is always 1.
func Similarity(a, b string) float64 {
	a = strings.TrimSpace(strings.ToLower(a))
	b = strings.TrimSpace(strings.ToLower(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	setA := trigrams(a)
	setB := trigrams(b)

	intersection := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// trigrams returns the set of 3-rune substrings of s padded with two spaces
// on each side.
func trigrams(s string) map[string]struct{} {
	runes := []rune("  " + s + "  ")
	set := make(map[string]struct{}, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}
