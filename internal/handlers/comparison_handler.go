package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/scoring"
)

type ComparisonHandler struct {
	tenderRepo repositories.TenderRepository
	bidderRepo repositories.BidderRepository
}

func NewComparisonHandler(tenderRepo repositories.TenderRepository, bidderRepo repositories.BidderRepository) *ComparisonHandler {
	return &ComparisonHandler{
		tenderRepo: tenderRepo,
		bidderRepo: bidderRepo,
	}
}

// HandleComparison handles GET /tenders/:id/comparison. Sort key defaults to
// the overall score; any category id is accepted as a key and orders by that
// category's score. Bidders without a finalized evaluation are left out.
func (h *ComparisonHandler) HandleComparison(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	if _, err := h.tenderRepo.FindByID(tenderID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tender not found",
		})
	}

	sortKey := c.Query("sort", scoring.SortKeyOverall)
	direction := scoring.Direction(c.Query("direction", string(scoring.Descending)))
	if direction != scoring.Ascending && direction != scoring.Descending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Direction must be 'asc' or 'desc'",
		})
	}

	bidders, err := h.bidderRepo.FindByTender(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load bidders",
		})
	}

	ranked := scoring.Rank(bidders, sortKey, direction)

	rows := make([]models.ComparisonRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, models.ComparisonRow{
			BidderID:     r.Bidder.ID.String(),
			Name:         r.Bidder.Name,
			OverallScore: r.Bidder.Evaluation.OverallScore,
			SortScore:    r.Score,
			Delta:        r.Delta,
		})
	}

	return c.JSON(fiber.Map{
		"sort":      sortKey,
		"direction": direction,
		"bidders":   rows,
	})
}
