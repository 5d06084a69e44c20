package handlers

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/scoring"
	"zepth/tender-evaluator/internal/services"
)

type BidderHandler struct {
	bidderRepo     repositories.BidderRepository
	tenderRepo     repositories.TenderRepository
	evalRepo       repositories.EvaluationRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewBidderHandler(
	bidderRepo repositories.BidderRepository,
	tenderRepo repositories.TenderRepository,
	evalRepo repositories.EvaluationRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *BidderHandler {
	return &BidderHandler{
		bidderRepo:     bidderRepo,
		tenderRepo:     tenderRepo,
		evalRepo:       evalRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleCreate handles POST /tenders/:id/bidders
func (h *BidderHandler) HandleCreate(c *fiber.Ctx) error {
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

	var req models.CreateBidderRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	bidder := &models.Bidder{
		ID:              uuid.New(),
		TenderID:        tenderID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		ContactPerson:   req.ContactPerson,
		ContactPosition: req.ContactPosition,
		CompanySize:     req.CompanySize,
		YearEstablished: req.YearEstablished,
		Website:         req.Website,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.bidderRepo.Create(bidder); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create bidder",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bidder": bidder})
}

// HandleGet handles GET /bidders/:id
func (h *BidderHandler) HandleGet(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	bidder, err := h.bidderRepo.FindByID(bidderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bidder not found",
		})
	}

	return c.JSON(fiber.Map{"bidder": bidder})
}

// HandleUploadDocument handles POST /bidders/:id/documents. The multipart
// form carries the file under "document" and the target category under
// "category_id"; the category must belong to the bidder's tender.
func (h *BidderHandler) HandleUploadDocument(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	bidder, err := h.bidderRepo.FindByID(bidderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bidder not found",
		})
	}

	categoryID, err := uuid.Parse(c.FormValue("category_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category_id format",
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

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No document file uploaded",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, fmt.Sprintf("bidder_%s", bidderID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	doc := &models.BidderDocument{
		ID:               uuid.New(),
		BidderID:         bidderID,
		CategoryID:       categoryID,
		Name:             file.Filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		URL:              filePath,
		UploadDate:       time.Now(),
	}

	if err := h.bidderRepo.AddDocument(doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     filename,
		OriginalName: doc.OriginalFileName,
		CategoryID:   categoryID.String(),
	})
}

// HandleRemoveDocument handles DELETE /bidders/:id/documents/:docId
func (h *BidderHandler) HandleRemoveDocument(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
		})
	}

	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.bidderRepo.RemoveDocument(bidderID, docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	// Best effort; an orphaned file on disk is not worth failing the
	// request over.
	if doc.FilePath != "" {
		h.storageService.DeleteFile(filepath.Base(doc.FilePath))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleProgress handles GET /bidders/:id/progress
func (h *BidderHandler) HandleProgress(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bidder ID format",
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

	scores, err := h.evalRepo.LatestScores(bidderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load scores",
		})
	}

	progress := scoring.ComputeProgress(categories, bidder.Documents, scores)
	return c.JSON(progress)
}

func categoryBelongsToTender(categories []models.DocumentCategory, categoryID uuid.UUID) bool {
	for _, cat := range categories {
		if cat.ID == categoryID {
			return true
		}
	}
	return false
}
