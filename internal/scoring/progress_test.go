package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zepth/tender-evaluator/internal/models"
)

func TestComputeProgress(t *testing.T) {
	catA := models.DocumentCategory{ID: uuid.New(), Name: "Technical", Required: true}
	catB := models.DocumentCategory{ID: uuid.New(), Name: "Commercial", Required: true}
	categories := []models.DocumentCategory{catA, catB}

	docFor := func(cat models.DocumentCategory) models.BidderDocument {
		return models.BidderDocument{ID: uuid.New(), CategoryID: cat.ID}
	}

	tests := []struct {
		name      string
		documents []models.BidderDocument
		scores    models.CategoryScoreMap
		expected  BidderState
	}{
		{
			name:     "no documents",
			expected: StateNoDocuments,
		},
		{
			name:      "one of two categories submitted",
			documents: []models.BidderDocument{docFor(catA)},
			expected:  StatePartiallySubmitted,
		},
		{
			name:      "all categories submitted",
			documents: []models.BidderDocument{docFor(catA), docFor(catB)},
			expected:  StateFullySubmitted,
		},
		{
			name:      "multiple documents per category still counts once",
			documents: []models.BidderDocument{docFor(catA), docFor(catA), docFor(catA)},
			expected:  StatePartiallySubmitted,
		},
		{
			name:      "one category evaluated",
			documents: []models.BidderDocument{docFor(catA), docFor(catB)},
			scores:    models.CategoryScoreMap{catA.ID.String(): {Score: 80}},
			expected:  StatePartiallyEvaluated,
		},
		{
			name:      "all categories evaluated",
			documents: []models.BidderDocument{docFor(catA), docFor(catB)},
			scores: models.CategoryScoreMap{
				catA.ID.String(): {Score: 80},
				catB.ID.String(): {Score: 65},
			},
			expected: StateFullyEvaluated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(categories, tt.documents, tt.scores)
			assert.Equal(t, tt.expected, p.State)
			assert.Equal(t, 2, p.CategoriesTotal)
		})
	}
}

func TestMissingRequired(t *testing.T) {
	required := models.DocumentCategory{ID: uuid.New(), Name: "Technical", Required: true}
	optional := models.DocumentCategory{ID: uuid.New(), Name: "Extras", Required: false}
	categories := []models.DocumentCategory{required, optional}

	t.Run("unscored required category blocks", func(t *testing.T) {
		missing := MissingRequired(categories, models.CategoryScoreMap{})
		require.Len(t, missing, 1)
		assert.Equal(t, required.ID, missing[0])
	})

	t.Run("optional categories never block", func(t *testing.T) {
		scores := models.CategoryScoreMap{required.ID.String(): {Score: 75}}
		missing := MissingRequired(categories, scores)
		assert.Empty(t, missing)
	})
}
