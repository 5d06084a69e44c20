package scoring

import (
	"fmt"
	"math"

	"zepth/tender-evaluator/internal/models"
)

// Aggregate computes the weight-normalized overall score over evaluated
// categories only:
//
//	overall = round(Σ score_i × weight_i / Σ weight_i)
//
// Categories without a score contribute to neither the numerator nor the
// denominator, so a partially evaluated bidder still gets a meaningful
// number. Callers gate final completion on every required category being
// scored. Rounding is half-up to the nearest integer.
func Aggregate(scores models.CategoryScoreMap, weights map[string]int) (int, error) {
	var weightedSum float64
	totalWeight := 0

	for categoryID, score := range scores {
		w := weights[categoryID]
		weightedSum += score.Score * float64(w)
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0, &AggregationError{}
	}

	return roundHalfUp(weightedSum / float64(totalWeight)), nil
}

// BuildEvaluation produces the replacement BidderEvaluation for a bidder from
// its current score set and the tender's effective weight table. Given the
// same inputs it always produces the same overall score and recommendation;
// the caller persists the result by replacing any existing record.
func BuildEvaluation(bidder *models.Bidder, scores models.CategoryScoreMap, weights map[string]int) (*models.BidderEvaluation, error) {
	overall, err := Aggregate(scores, weights)
	if err != nil {
		if aggErr, ok := err.(*AggregationError); ok {
			aggErr.BidderName = bidder.Name
		}
		return nil, err
	}

	return &models.BidderEvaluation{
		BidderID:       bidder.ID,
		CategoryScores: scores,
		OverallScore:   overall,
		Recommendation: Recommendation(bidder.Name, overall),
	}, nil
}

// Recommendation renders the deterministic one-line recommendation for an
// evaluated bidder. Richer narrative belongs to the AI evaluator output.
func Recommendation(bidderName string, overallScore int) string {
	return fmt.Sprintf("Based on AI evaluation, %s achieved an overall score of %d/100.", bidderName, overallScore)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
