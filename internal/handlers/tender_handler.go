package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
	"zepth/tender-evaluator/internal/scoring"
	"zepth/tender-evaluator/internal/services"
)

type TenderHandler struct {
	tenderRepo     repositories.TenderRepository
	projectRepo    repositories.ProjectRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewTenderHandler(
	tenderRepo repositories.TenderRepository,
	projectRepo repositories.ProjectRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *TenderHandler {
	return &TenderHandler{
		tenderRepo:     tenderRepo,
		projectRepo:    projectRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleCreate handles POST /projects/:id/tenders
func (h *TenderHandler) HandleCreate(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var req models.CreateTenderRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	status := models.TenderDraft
	if req.Status != "" {
		status = models.TenderStatus(req.Status)
	}

	tender := &models.Tender{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Name:        req.Name,
		Discipline:  req.Discipline,
		Value:       req.Value,
		Currency:    req.Currency,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.tenderRepo.Create(tender); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create tender",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"tender": tender,
		"ref_no": tender.RefNo(project.RefNo()),
	})
}

// HandleGet handles GET /tenders/:id
func (h *TenderHandler) HandleGet(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	tender, err := h.tenderRepo.FindByID(tenderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tender not found",
		})
	}

	return c.JSON(fiber.Map{"tender": tender})
}

// HandleAddCategory handles POST /tenders/:id/categories
func (h *TenderHandler) HandleAddCategory(c *fiber.Ctx) error {
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

	var req models.CreateCategoryRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	required := true
	if req.Required != nil {
		required = *req.Required
	}

	category := &models.DocumentCategory{
		ID:          uuid.New(),
		TenderID:    tenderID,
		Name:        req.Name,
		Weight:      req.Weight,
		Required:    required,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.tenderRepo.AddCategory(category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	// Editing may leave the total off 100; report it so the client can flag
	// the tender as not yet scorable.
	categories, err := h.tenderRepo.FindCategories(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}
	summary := scoring.Summarize(categories)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"category": category,
		"weight_summary": models.WeightSummaryResponse{
			Total:    summary.Total,
			Balanced: summary.Balanced,
		},
	})
}

// HandleListCategories handles GET /tenders/:id/categories
func (h *TenderHandler) HandleListCategories(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	categories, err := h.tenderRepo.FindCategories(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}

	summary := scoring.Summarize(categories)
	return c.JSON(fiber.Map{
		"categories": categories,
		"weight_summary": models.WeightSummaryResponse{
			Total:    summary.Total,
			Balanced: summary.Balanced,
		},
	})
}

// HandleWeightSummary handles GET /tenders/:id/weight-summary
func (h *TenderHandler) HandleWeightSummary(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	categories, err := h.tenderRepo.FindCategories(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}

	summary := scoring.Summarize(categories)
	return c.JSON(models.WeightSummaryResponse{
		Total:    summary.Total,
		Balanced: summary.Balanced,
	})
}

// HandleUpdateScoringMatrix handles PUT /tenders/:id/scoring-matrix
func (h *TenderHandler) HandleUpdateScoringMatrix(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	var req models.UpdateScoringMatrixRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	categories, err := h.tenderRepo.FindCategories(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}

	criteria := models.WeightCriteria(req.Criteria)

	// Reject matrix keys that do not belong to this tender up front.
	if _, err := scoring.EffectiveWeights(categories, criteria); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	matrix, err := h.tenderRepo.UpsertScoringMatrix(tenderID, criteria)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update scoring matrix",
		})
	}

	return c.JSON(fiber.Map{"scoring_matrix": matrix})
}

// HandleUploadDocument handles POST /tenders/:id/documents
func (h *TenderHandler) HandleUploadDocument(c *fiber.Ctx) error {
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

	category := models.TenderDocumentCategory(c.FormValue("category", string(models.TenderDocAdministrative)))

	filename, filePath, err := h.storageService.SaveFile(file, fmt.Sprintf("tender_%s", tenderID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	doc := &models.TenderDocument{
		ID:         uuid.New(),
		TenderID:   tenderID,
		Category:   category,
		Name:       file.Filename,
		URL:        filePath,
		UploadDate: time.Now(),
	}

	if err := h.tenderRepo.AddDocument(doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
}

// HandleListDocuments handles GET /tenders/:id/documents
func (h *TenderHandler) HandleListDocuments(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	docs, err := h.tenderRepo.FindDocuments(tenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load documents",
		})
	}

	return c.JSON(fiber.Map{"documents": docs})
}

// HandleRemoveDocument handles DELETE /tenders/:id/documents/:docId
func (h *TenderHandler) HandleRemoveDocument(c *fiber.Ctx) error {
	tenderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tender ID format",
		})
	}

	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	if err := h.tenderRepo.RemoveDocument(tenderID, docID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
