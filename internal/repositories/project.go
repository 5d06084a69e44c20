package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zepth/tender-evaluator/internal/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uuid.UUID) (*models.Project, error)
	FindAll() ([]models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create implements ProjectRepository.
func (r *projectRepository) Create(project *models.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// FindByID implements ProjectRepository. Tenders are preloaded with their
// categories and scoring matrix so callers get the full project graph in one
// query per association instead of nested linear scans.
func (r *projectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Tenders").
		Preload("Tenders.Categories").
		Preload("Tenders.ScoringMatrix").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

// FindAll implements ProjectRepository.
func (r *projectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Preload("Tenders").
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
