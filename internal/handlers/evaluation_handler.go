package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/scoring"
	"zepth/tender-evaluator/internal/services"
)

type EvaluationHandler struct {
	evalRepo         repositories.EvaluationRepository
	bidderRepo       repositories.BidderRepository
	tenderRepo       repositories.TenderRepository
	evaluatorService services.EvaluatorService
	worker           services.Worker
}

func NewEvaluationHandler(
	evalRepo repositories.EvaluationRepository,
	bidderRepo repositories.BidderRepository,
	tenderRepo repositories.TenderRepository,
	evaluatorService services.EvaluatorService,
	worker services.Worker,
) *EvaluationHandler {
	return &EvaluationHandler{
		evalRepo:         evalRepo,
		bidderRepo:       bidderRepo,
		tenderRepo:       tenderRepo,
		evaluatorService: evaluatorService,
		worker:           worker,
	}
}

// HandleEvaluate handles POST /bidders/:id/evaluate/:categoryId. The actual
// AI scoring runs asynchronously; the response carries the job id to poll.
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID format",
		})
	}

	bidder, err := h.bidderRepo.FindByID(bidderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bidder not found",
		})
	}

	categories, err := h.tenderRepo.FindCategories(bidder.TenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}
	if !categoryBelongsToTender(categories, categoryID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category does not belong to the bidder's tender",
		})
	}

	docs, err := h.bidderRepo.FindDocumentsByCategory(bidderID, categoryID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load documents",
		})
	}
	if len(docs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Bidder has no documents for this category",
		})
	}

	job := &models.EvaluationJob{
		ID:         uuid.New(),
		BidderID:   bidderID,
		CategoryID: categoryID,
		Status:     models.StatusQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.evalRepo.CreateJob(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation job",
		})
	}

	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetJob handles GET /evaluations/:jobId
func (h *EvaluationHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.evalRepo.FindJobByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation job not found",
		})
	}

	response := models.EvaluationResultResponse{
		ID:         job.ID.String(),
		BidderID:   job.BidderID.String(),
		CategoryID: job.CategoryID.String(),
		Status:     string(job.Status),
	}

	if job.Status == models.StatusCompleted {
		response.Result = job.Result
	}
	if job.Status == models.StatusFailed {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}

// HandleFinalize handles POST /bidders/:id/finalize. Aggregation failures
// map to 409 when configuration is the problem and 422 when the bidder's
// scores cannot produce a number.
func (h *EvaluationHandler) HandleFinalize(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	eval, err := h.evaluatorService.FinalizeBidder(bidderID)
	if err != nil {
		var cfgErr *scoring.ConfigurationError
		var aggErr *scoring.AggregationError
		var missingErr *scoring.MissingScoreError

		switch {
		case errors.As(err, &cfgErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": cfgErr.Error(),
			})
		case errors.As(err, &missingErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": missingErr.Error(),
			})
		case errors.As(err, &aggErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": aggErr.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to finalize evaluation",
			})
		}
	}

	return c.JSON(fiber.Map{"evaluation": eval})
}

// HandleGetEvaluation handles GET /bidders/:id/evaluation
func (h *EvaluationHandler) HandleGetEvaluation(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	eval, err := h.evalRepo.FindEvaluationByBidder(bidderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bidder evaluation not found",
		})
	}

	return c.JSON(fiber.Map{"evaluation": eval})
}
