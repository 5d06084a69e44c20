package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zepth/tender-evaluator/internal/models"
)

func evaluatedBidder(name string, overall int, categoryScores models.CategoryScoreMap) models.Bidder {
	id := uuid.New()
	return models.Bidder{
		ID:   id,
		Name: name,
		Evaluation: &models.BidderEvaluation{
			BidderID:       id,
			CategoryScores: categoryScores,
			OverallScore:   overall,
		},
	}
}

func TestRankByOverallScore(t *testing.T) {
	bidders := []models.Bidder{
		evaluatedBidder("Alpha", 72, nil),
		evaluatedBidder("Beta", 88, nil),
		evaluatedBidder("Gamma", 61, nil),
	}

	ranked := Rank(bidders, SortKeyOverall, Descending)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Beta", ranked[0].Bidder.Name)
	assert.Equal(t, "Alpha", ranked[1].Bidder.Name)
	assert.Equal(t, "Gamma", ranked[2].Bidder.Name)

	assert.Equal(t, 0.0, ranked[0].Delta)
	assert.Equal(t, -16.0, ranked[1].Delta)
	assert.Equal(t, -27.0, ranked[2].Delta)
}

func TestRankAscendingDeltaAgainstCurrentLeader(t *testing.T) {
	bidders := []models.Bidder{
		evaluatedBidder("Alpha", 72, nil),
		evaluatedBidder("Beta", 88, nil),
	}

	// Ascending puts the lowest score first; deltas are relative to that
	// top-of-list bidder, not the global maximum.
	ranked := Rank(bidders, SortKeyOverall, Ascending)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Alpha", ranked[0].Bidder.Name)
	assert.Equal(t, 0.0, ranked[0].Delta)
	assert.Equal(t, 16.0, ranked[1].Delta)
}

func TestRankExcludesUnevaluatedBidders(t *testing.T) {
	unevaluated := models.Bidder{ID: uuid.New(), Name: "Ghost"}
	bidders := []models.Bidder{
		unevaluated,
		evaluatedBidder("Alpha", 70, nil),
		{ID: uuid.New(), Name: "Another Ghost"},
	}

	ranked := Rank(bidders, SortKeyOverall, Descending)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Alpha", ranked[0].Bidder.Name)

	// Input order of unevaluated bidders never matters.
	ranked = Rank([]models.Bidder{bidders[1], unevaluated}, SortKeyOverall, Descending)
	require.Len(t, ranked, 1)
}

func TestRankStableUnderTies(t *testing.T) {
	bidders := []models.Bidder{
		evaluatedBidder("First In", 80, nil),
		evaluatedBidder("Second In", 80, nil),
		evaluatedBidder("Third In", 80, nil),
	}

	for i := 0; i < 5; i++ {
		ranked := Rank(bidders, SortKeyOverall, Descending)
		require.Len(t, ranked, 3)
		assert.Equal(t, "First In", ranked[0].Bidder.Name)
		assert.Equal(t, "Second In", ranked[1].Bidder.Name)
		assert.Equal(t, "Third In", ranked[2].Bidder.Name)
	}
}

func TestRankByCategory(t *testing.T) {
	catID := uuid.NewString()
	bidders := []models.Bidder{
		evaluatedBidder("Alpha", 70, models.CategoryScoreMap{catID: {Score: 65}}),
		evaluatedBidder("Beta", 60, models.CategoryScoreMap{catID: {Score: 90}}),
		evaluatedBidder("NoScore", 95, models.CategoryScoreMap{}),
	}

	ranked := Rank(bidders, catID, Descending)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Beta", ranked[0].Bidder.Name)
	assert.Equal(t, 90.0, ranked[0].Score)
	assert.Equal(t, "Alpha", ranked[1].Bidder.Name)
	assert.Equal(t, -25.0, ranked[1].Delta)

	// Missing category score ranks as 0, behind any scored bidder.
	assert.Equal(t, "NoScore", ranked[2].Bidder.Name)
	assert.Equal(t, 0.0, ranked[2].Score)
}

func TestRankByName(t *testing.T) {
	bidders := []models.Bidder{
		evaluatedBidder("delta builders", 50, nil),
		evaluatedBidder("Acme", 90, nil),
		evaluatedBidder("Borealis", 70, nil),
	}

	ranked := Rank(bidders, SortKeyName, Ascending)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Acme", ranked[0].Bidder.Name)
	assert.Equal(t, "Borealis", ranked[1].Bidder.Name)
	assert.Equal(t, "delta builders", ranked[2].Bidder.Name)

	ranked = Rank(bidders, SortKeyName, Descending)
	assert.Equal(t, "delta builders", ranked[0].Bidder.Name)
}

func TestRankDeterministic(t *testing.T) {
	bidders := []models.Bidder{
		evaluatedBidder("A", 55, nil),
		evaluatedBidder("B", 90, nil),
		evaluatedBidder("C", 90, nil),
		evaluatedBidder("D", 12, nil),
	}

	first := Rank(bidders, SortKeyOverall, Descending)
	for i := 0; i < 10; i++ {
		again := Rank(bidders, SortKeyOverall, Descending)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Bidder.ID, again[j].Bidder.ID)
			assert.Equal(t, first[j].Delta, again[j].Delta)
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranked := Rank(nil, SortKeyOverall, Descending)
	assert.Empty(t, ranked)
}
