package scoring

import "strings"

// TextSimilarity returns the Jaccard index over the two strings' word sets:
// lower-cased, whitespace-split, shared words counted once. Result is in
// [0,1]; two empty strings compare as 0.
func TextSimilarity(s1, s2 string) float64 {
	words1 := wordSet(s1)
	words2 := wordSet(s2)

	if len(words1) == 0 && len(words2) == 0 {
		return 0
	}

	intersection := 0
	for w := range words1 {
		if words2[w] {
			intersection++
		}
	}

	union := len(words1)
	for w := range words2 {
		if !words1[w] {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
