package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
)

type ProjectHandler struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectHandler(projectRepo repositories.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

// HandleCreate handles POST /projects
func (h *ProjectHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	project := &models.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Area:        req.Area,
		Type:        models.ProjectType(req.Type),
		Location:    req.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.projectRepo.Create(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"project": project,
		"ref_no":  project.RefNo(),
	})
}

// HandleList handles GET /projects
func (h *ProjectHandler) HandleList(c *fiber.Ctx) error {
	projects, err := h.projectRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list projects",
		})
	}

	return c.JSON(fiber.Map{
		"projects": projects,
	})
}

// HandleGet handles GET /projects/:id
func (h *ProjectHandler) HandleGet(c *fiber.Ctx) error {
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

	return c.JSON(fiber.Map{
		"project": project,
		"ref_no":  project.RefNo(),
	})
}
