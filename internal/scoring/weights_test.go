package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zepth/tender-evaluator/internal/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		weights  []int
		total    int
		balanced bool
	}{
		{name: "balanced pair", weights: []int{60, 40}, total: 100, balanced: true},
		{name: "unbalanced sum below 100", weights: []int{30, 30}, total: 60, balanced: false},
		{name: "unbalanced sum above 100", weights: []int{60, 50}, total: 110, balanced: false},
		{name: "empty category set is never balanced", weights: nil, total: 0, balanced: false},
		{name: "single full-weight category", weights: []int{100}, total: 100, balanced: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := make([]models.DocumentCategory, len(tt.weights))
			for i, w := range tt.weights {
				categories[i] = models.DocumentCategory{ID: uuid.New(), Weight: w}
			}

			summary := Summarize(categories)
			assert.Equal(t, tt.total, summary.Total)
			assert.Equal(t, tt.balanced, summary.Balanced)
		})
	}
}

func TestEffectiveWeights(t *testing.T) {
	catA := models.DocumentCategory{ID: uuid.New(), Name: "Technical", Weight: 50}
	catB := models.DocumentCategory{ID: uuid.New(), Name: "Commercial", Weight: 50}
	categories := []models.DocumentCategory{catA, catB}

	t.Run("no overrides keeps stored weights", func(t *testing.T) {
		weights, err := EffectiveWeights(categories, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, weights[catA.ID.String()])
		assert.Equal(t, 50, weights[catB.ID.String()])
	})

	t.Run("matrix overrides stored weight", func(t *testing.T) {
		criteria := models.WeightCriteria{catA.ID.String(): 70, catB.ID.String(): 30}
		weights, err := EffectiveWeights(categories, criteria)
		require.NoError(t, err)
		assert.Equal(t, 70, weights[catA.ID.String()])
		assert.Equal(t, 30, weights[catB.ID.String()])
	})

	t.Run("unknown matrix key is a configuration error", func(t *testing.T) {
		criteria := models.WeightCriteria{uuid.NewString(): 40}
		_, err := EffectiveWeights(categories, criteria)
		require.Error(t, err)

		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestValidateForScoring(t *testing.T) {
	t.Run("exactly 100 passes", func(t *testing.T) {
		err := ValidateForScoring(map[string]int{"a": 60, "b": 40})
		assert.NoError(t, err)
	})

	t.Run("unbalanced total reports the actual sum", func(t *testing.T) {
		err := ValidateForScoring(map[string]int{"a": 30, "b": 30})
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 60, cfgErr.Total)
	})

	t.Run("empty table is unbalanced", func(t *testing.T) {
		err := ValidateForScoring(map[string]int{})
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 0, cfgErr.Total)
	})
}
