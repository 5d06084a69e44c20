package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zepth/tender-evaluator/internal/models"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		scores   models.CategoryScoreMap
		weights  map[string]int
		expected int
		wantErr  bool
	}{
		{
			name: "weighted mean over two fully evaluated categories",
			scores: models.CategoryScoreMap{
				"technical":  {Score: 80},
				"commercial": {Score: 60},
			},
			weights:  map[string]int{"technical": 60, "commercial": 40},
			expected: 72, // (80*60 + 60*40) / 100
		},
		{
			name: "partial evaluation normalizes over evaluated weight only",
			scores: models.CategoryScoreMap{
				"a": {Score: 90},
				"b": {Score: 70},
			},
			weights:  map[string]int{"a": 50, "b": 30, "c": 20},
			expected: 83, // (90*50 + 70*30) / 80 = 82.5, half-up
		},
		{
			name:    "no scores at all",
			scores:  models.CategoryScoreMap{},
			weights: map[string]int{"a": 50, "b": 50},
			wantErr: true,
		},
		{
			name: "evaluated categories carry zero weight",
			scores: models.CategoryScoreMap{
				"a": {Score: 95},
			},
			weights: map[string]int{"a": 0, "b": 100},
			wantErr: true,
		},
		{
			name: "single category at full weight",
			scores: models.CategoryScoreMap{
				"a": {Score: 55},
			},
			weights:  map[string]int{"a": 100},
			expected: 55,
		},
		{
			name: "half-up rounding at the midpoint",
			scores: models.CategoryScoreMap{
				"a": {Score: 75},
				"b": {Score: 76},
			},
			weights:  map[string]int{"a": 50, "b": 50},
			expected: 76, // 75.5 rounds up
		},
		{
			name: "scored category absent from weight table contributes nothing",
			scores: models.CategoryScoreMap{
				"a":       {Score: 80},
				"unknown": {Score: 10},
			},
			weights:  map[string]int{"a": 100},
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overall, err := Aggregate(tt.scores, tt.weights)

			if tt.wantErr {
				require.Error(t, err)
				var aggErr *AggregationError
				assert.ErrorAs(t, err, &aggErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, overall)
			assert.GreaterOrEqual(t, overall, 0)
			assert.LessOrEqual(t, overall, 100)
		})
	}
}

func TestAggregateIdempotent(t *testing.T) {
	scores := models.CategoryScoreMap{
		"a": {Score: 72.4},
		"b": {Score: 88.1},
		"c": {Score: 61.9},
	}
	weights := map[string]int{"a": 40, "b": 35, "c": 25}

	first, err := Aggregate(scores, weights)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Aggregate(scores, weights)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildEvaluation(t *testing.T) {
	bidder := &models.Bidder{
		ID:   uuid.New(),
		Name: "Acme Construction",
	}
	scores := models.CategoryScoreMap{
		"technical":  {Score: 80, Summary: "solid"},
		"commercial": {Score: 60, Summary: "adequate"},
	}
	weights := map[string]int{"technical": 60, "commercial": 40}

	eval, err := BuildEvaluation(bidder, scores, weights)
	require.NoError(t, err)

	assert.Equal(t, bidder.ID, eval.BidderID)
	assert.Equal(t, 72, eval.OverallScore)
	assert.Equal(t, "Based on AI evaluation, Acme Construction achieved an overall score of 72/100.", eval.Recommendation)
	assert.Equal(t, scores, eval.CategoryScores)

	// Re-running with identical inputs yields a byte-for-byte equal result.
	again, err := BuildEvaluation(bidder, scores, weights)
	require.NoError(t, err)
	assert.Equal(t, eval.OverallScore, again.OverallScore)
	assert.Equal(t, eval.Recommendation, again.Recommendation)
}

func TestBuildEvaluationNoScores(t *testing.T) {
	bidder := &models.Bidder{ID: uuid.New(), Name: "Empty Handed Ltd"}

	eval, err := BuildEvaluation(bidder, models.CategoryScoreMap{}, map[string]int{"a": 100})
	require.Error(t, err)
	assert.Nil(t, eval)

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "Empty Handed Ltd", aggErr.BidderName)
}
