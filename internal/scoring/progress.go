package scoring

import (
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
)

// BidderState tracks a bidder's position in the submission/evaluation
// lifecycle. Document uploads advance the submission states; evaluator
// results advance the evaluation states. Only presence per category counts,
// not document count.
type BidderState string

const (
	StateNoDocuments        BidderState = "no_documents"
	StatePartiallySubmitted BidderState = "partially_submitted"
	StateFullySubmitted     BidderState = "fully_submitted"
	StatePartiallyEvaluated BidderState = "partially_evaluated"
	StateFullyEvaluated     BidderState = "fully_evaluated"
)

type Progress struct {
	State               BidderState `json:"state"`
	CategoriesTotal     int         `json:"categories_total"`
	CategoriesSubmitted int         `json:"categories_submitted"`
	CategoriesEvaluated int         `json:"categories_evaluated"`
}

// ComputeProgress derives a bidder's lifecycle state from its documents and
// current score set. Evaluation states take precedence over submission
// states once any category has been scored.
func ComputeProgress(categories []models.DocumentCategory, documents []models.BidderDocument, scores models.CategoryScoreMap) Progress {
	submitted := make(map[string]bool, len(categories))
	for _, doc := range documents {
		submitted[doc.CategoryID.String()] = true
	}

	p := Progress{CategoriesTotal: len(categories)}
	for _, c := range categories {
		id := c.ID.String()
		if submitted[id] {
			p.CategoriesSubmitted++
		}
		if _, ok := scores[id]; ok {
			p.CategoriesEvaluated++
		}
	}

	switch {
	case p.CategoriesEvaluated > 0 && p.CategoriesEvaluated == p.CategoriesTotal:
		p.State = StateFullyEvaluated
	case p.CategoriesEvaluated > 0:
		p.State = StatePartiallyEvaluated
	case p.CategoriesSubmitted == 0:
		p.State = StateNoDocuments
	case p.CategoriesSubmitted == p.CategoriesTotal:
		p.State = StateFullySubmitted
	default:
		p.State = StatePartiallySubmitted
	}

	return p
}

// MissingRequired returns the required categories that still lack a score.
// Finalization is gated on this being empty; optional categories never block.
func MissingRequired(categories []models.DocumentCategory, scores models.CategoryScoreMap) []uuid.UUID {
	var missing []uuid.UUID
	for _, c := range categories {
		if !c.Required {
			continue
		}
		if _, ok := scores[c.ID.String()]; !ok {
			missing = append(missing, c.ID)
		}
	}
	return missing
}
