package models

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRefNo(t *testing.T) {
	id := uuid.MustParse("9f3aee01-0000-4000-8000-000000000000")
	p := Project{ID: id, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "PRJ-2025-9F3A", p.RefNo())
}

func TestTenderRefNo(t *testing.T) {
	id := uuid.MustParse("c21bee01-0000-4000-8000-000000000000")
	tender := Tender{ID: id}

	assert.Equal(t, "PRJ-2025-9F3A-TND-C21", tender.RefNo("PRJ-2025-9F3A"))
}

func TestCategoryScoreValueScan(t *testing.T) {
	original := CategoryScore{
		Score:      78,
		Summary:    "Solid commercial submission.",
		Strengths:  []string{"competitive pricing"},
		Weaknesses: []string{"missing bank guarantee"},
		Risks:      []string{"currency exposure"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded CategoryScore
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, original, decoded)
}

func TestCategoryScoreScanRejectsNonBytes(t *testing.T) {
	var cs CategoryScore
	assert.Error(t, cs.Scan(42))
}

func TestWeightCriteriaValueScan(t *testing.T) {
	key := uuid.NewString()
	original := WeightCriteria{key: 60, uuid.NewString(): 40}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded WeightCriteria
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, original, decoded)
	assert.Equal(t, 60, decoded[key])
}

func TestCategoryScoreMapValueScan(t *testing.T) {
	original := CategoryScoreMap{
		uuid.NewString(): CategoryScore{Score: 90, Summary: "excellent"},
		uuid.NewString(): CategoryScore{Score: 55, Summary: "partial"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded CategoryScoreMap
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, original, decoded)
}

func TestRefNoShapes(t *testing.T) {
	p := Project{ID: uuid.New(), CreatedAt: time.Now()}
	ref := p.RefNo()

	assert.True(t, strings.HasPrefix(ref, fmt.Sprintf("PRJ-%d-", time.Now().Year())))
	assert.Len(t, ref, len("PRJ-2025-XXXX"))
}
