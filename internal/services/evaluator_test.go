package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryScore(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		score, err := ParseCategoryScore(`{
			"score": 82,
			"summary": "Strong technical submission.",
			"strengths": ["detailed method statement"],
			"weaknesses": ["no phasing plan"],
			"risks": ["tight schedule"]
		}`)
		require.NoError(t, err)
		assert.Equal(t, 82.0, score.Score)
		assert.Equal(t, "Strong technical submission.", score.Summary)
		assert.Len(t, score.Strengths, 1)
		assert.Len(t, score.Weaknesses, 1)
		assert.Len(t, score.Risks, 1)
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		score, err := ParseCategoryScore("Here is the evaluation:\n```json\n{\"score\": 64, \"summary\": \"Adequate.\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, 64.0, score.Score)
		assert.Equal(t, "Adequate.", score.Summary)
	})

	t.Run("surrounding prose", func(t *testing.T) {
		score, err := ParseCategoryScore("Sure! {\"score\": 50, \"summary\": \"ok\"} Let me know if you need more.")
		require.NoError(t, err)
		assert.Equal(t, 50.0, score.Score)
	})

	t.Run("score above 100 is malformed", func(t *testing.T) {
		_, err := ParseCategoryScore(`{"score": 120, "summary": "too good"}`)
		assert.Error(t, err)
	})

	t.Run("negative score is malformed", func(t *testing.T) {
		_, err := ParseCategoryScore(`{"score": -5, "summary": "bad"}`)
		assert.Error(t, err)
	})

	t.Run("non-JSON output is an error", func(t *testing.T) {
		_, err := ParseCategoryScore("I could not evaluate these documents.")
		assert.Error(t, err)
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare object", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "fenced object", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "prose around object", input: `prefix {"a":1} suffix`, expected: `{"a":1}`},
		{name: "nested braces keep outer object", input: `x {"a":{"b":2}} y`, expected: `{"a":{"b":2}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}
