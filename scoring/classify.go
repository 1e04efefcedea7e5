package scoring

import (
	"strings"
	"time"

	"civicreporter-be/models"
)

// Confidence assigned when the reporter picked a known category themselves.
const assertedCategoryConfidence = 0.9

// Classification is the classifier's verdict for one submission.
type Classification struct {
	Category      models.IssueCategory `json:"category"`
	Confidence    float64              `json:"confidence"`
	Department    string               `json:"department"`
	Urgency       string               `json:"urgency"`
	EstimatedCost float64              `json:"estimatedCost"`
	Severity      models.IssueSeverity `json:"severity"`
	AIGenerated   bool                 `json:"aiGenerated"`
	ProcessedAt   string               `json:"processedAt"`
}

// Classify maps a free-text description, plus an optional category the
// reporter asserted, to a category with confidence, department, urgency,
// estimated cost and severity.
//
// An asserted category that matches the taxonomy wins outright. Otherwise
// each category scores min(2*hits/len(keywords), 1) where hits counts its
// keywords appearing as substrings of the lower-cased description; the
// highest score wins and ties go to the earlier taxonomy row. No hits at all
// classifies as general with zero confidence.
func Classify(description, assertedCategory string) Classification {
	return ClassifyAt(description, assertedCategory, time.Now())
}

// ClassifyAt is Classify with an injected timestamp for the processedAt mark.
func ClassifyAt(description, assertedCategory string, now time.Time) Classification {
	desc := strings.ToLower(description)

	best := Classification{
		Category:   models.General,
		Confidence: 0,
		Department: "general",
		Urgency:    "low",
	}

	if assertedCategory != "" {
		if profile, ok := lookupProfile(models.IssueCategory(strings.ToLower(assertedCategory))); ok {
			best = fromProfile(profile, assertedCategoryConfidence)
		}
	}

	if best.Confidence == 0 {
		for _, profile := range categoryProfiles {
			hits := 0
			for _, kw := range profile.Keywords {
				if strings.Contains(desc, kw) {
					hits++
				}
			}
			confidence := 2 * float64(hits) / float64(len(profile.Keywords))
			if confidence > 1 {
				confidence = 1
			}
			if confidence > best.Confidence {
				best = fromProfile(profile, confidence)
			}
		}
	}

	best.Severity = classifySeverity(desc)
	best.AIGenerated = true
	best.ProcessedAt = now.UTC().Format(time.RFC3339)

	return best
}

func classifySeverity(desc string) models.IssueSeverity {
	for _, tier := range severityTiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(desc, kw) {
				return tier.Level
			}
		}
	}
	return models.SeverityMedium
}

func fromProfile(p CategoryProfile, confidence float64) Classification {
	return Classification{
		Category:      p.Category,
		Confidence:    confidence,
		Department:    p.Department,
		Urgency:       p.Urgency,
		EstimatedCost: p.EstimatedCost,
	}
}
