package scoring

import (
	"sort"

	"civicreporter-be/models"
)

const (
	proximityThresholdKm  = 0.1 // 100 meters
	similarityThreshold   = 0.6
	textSimilarFlagCutoff = 0.5
	recentWindowDays      = 7.0
)

// MatchReasons flags which signals fired for a duplicate match.
type MatchReasons struct {
	Proximity        bool `json:"proximity"`
	TextSimilar      bool `json:"textSimilar"`
	SameCategory     bool `json:"sameCategory"`
	RecentlyReported bool `json:"recentlyReported"`
}

// DuplicateMatch pairs an existing issue with its composite similarity to a
// new submission. Never persisted; recomputed on every call.
type DuplicateMatch struct {
	Issue      models.Issue `json:"issue"`
	Similarity float64      `json:"similarity"`
	Reasons    MatchReasons `json:"reasons"`
}

// DetectDuplicates scores every existing issue against the candidate and
// returns the ones likely describing the same real-world problem, sorted
// most-similar first. The composite blends proximity (0.4 within 100m), text
// similarity (0.3 weighted), category match (0.2) and recency (0.1 within a
// week); only scores strictly above 0.6 qualify.
func DetectDuplicates(candidate models.Issue, existing []models.Issue) []DuplicateMatch {
	duplicates := []DuplicateMatch{}

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}

		distance := DistanceKm(candidate.Location, other.Location)
		textSim := TextSimilarity(candidate.Description, other.Description)
		sameCategory := candidate.Category == other.Category
		daysApart := candidate.CreatedAt.Sub(other.CreatedAt).Hours() / 24
		if daysApart < 0 {
			daysApart = -daysApart
		}

		similarity := textSim * 0.3
		if distance < proximityThresholdKm {
			similarity += 0.4
		}
		if sameCategory {
			similarity += 0.2
		}
		if daysApart < recentWindowDays {
			similarity += 0.1
		}

		if similarity > similarityThreshold {
			duplicates = append(duplicates, DuplicateMatch{
				Issue:      other,
				Similarity: similarity,
				Reasons: MatchReasons{
					Proximity:        distance < proximityThresholdKm,
					TextSimilar:      textSim > textSimilarFlagCutoff,
					SameCategory:     sameCategory,
					RecentlyReported: daysApart < recentWindowDays,
				},
			})
		}
	}

	// Stable so equal scores keep encounter order.
	sort.SliceStable(duplicates, func(i, j int) bool {
		return duplicates[i].Similarity > duplicates[j].Similarity
	})

	return duplicates
}
