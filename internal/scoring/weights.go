package scoring

import (
	"fmt"

	"zepth/tender-evaluator/internal/models"
)

// WeightSummary reports whether a tender's category weights are usable for
// scoring. An empty category set sums to 0 and is therefore unbalanced.
type WeightSummary struct {
	Total    int
	Balanced bool
}

// Summarize computes the weight total across the given categories. It is a
// pure function with no side effects; callers display the total during
// editing and gate scoring on Balanced.
func Summarize(categories []models.DocumentCategory) WeightSummary {
	total := 0
	for _, c := range categories {
		total += c.Weight
	}
	return WeightSummary{Total: total, Balanced: total == 100}
}

// EffectiveWeights resolves the weight table for a tender: each category's
// own weight, overridden by the scoring matrix where an entry exists. Matrix
// keys outside the tender's category set are a ConfigurationError.
func EffectiveWeights(categories []models.DocumentCategory, criteria models.WeightCriteria) (map[string]int, error) {
	weights := make(map[string]int, len(categories))
	for _, c := range categories {
		weights[c.ID.String()] = c.Weight
	}

	for id, weight := range criteria {
		if _, ok := weights[id]; !ok {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("scoring matrix references unknown category %s", id),
			}
		}
		weights[id] = weight
	}

	return weights, nil
}

// ValidateForScoring ensures the effective weights sum to exactly 100 before
// any aggregation proceeds. Non-100 totals are allowed while the tender owner
// is still editing, never when scoring.
func ValidateForScoring(weights map[string]int) error {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total != 100 {
		return &ConfigurationError{Total: total}
	}
	return nil
}
