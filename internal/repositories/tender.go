package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zepth/tender-evaluator/internal/models"
)

type TenderRepository interface {
	Create(tender *models.Tender) error
	FindByID(id uuid.UUID) (*models.Tender, error)
	AddCategory(category *models.DocumentCategory) error
	FindCategories(tenderID uuid.UUID) ([]models.DocumentCategory, error)
	UpsertScoringMatrix(tenderID uuid.UUID, criteria models.WeightCriteria) (*models.ScoringMatrix, error)
	FindScoringMatrix(tenderID uuid.UUID) (*models.ScoringMatrix, error)
	AddDocument(doc *models.TenderDocument) error
	FindDocuments(tenderID uuid.UUID) ([]models.TenderDocument, error)
	RemoveDocument(tenderID, docID uuid.UUID) error
}

type tenderRepository struct {
	db *gorm.DB
}

func NewTenderRepository(db *gorm.DB) TenderRepository {
	return &tenderRepository{db: db}
}

// Create implements TenderRepository.
func (r *tenderRepository) Create(tender *models.Tender) error {
	if err := r.db.Create(tender).Error; err != nil {
		return fmt.Errorf("failed to create tender: %w", err)
	}
	return nil
}

// FindByID implements TenderRepository. The tender comes back with its
// categories, scoring matrix, bidders (with documents and evaluation) and
// reference documents preloaded.
func (r *tenderRepository) FindByID(id uuid.UUID) (*models.Tender, error) {
	var tender models.Tender
	err := r.db.
		Preload("Categories").
		Preload("ScoringMatrix").
		Preload("Bidders").
		Preload("Bidders.Documents").
		Preload("Bidders.Evaluation").
		Preload("Documents").
		Where("id = ?", id).
		First(&tender).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("tender not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find tender: %w", err)
	}
	return &tender, nil
}

// AddCategory implements TenderRepository.
func (r *tenderRepository) AddCategory(category *models.DocumentCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindCategories implements TenderRepository.
func (r *tenderRepository) FindCategories(tenderID uuid.UUID) ([]models.DocumentCategory, error) {
	var categories []models.DocumentCategory
	err := r.db.
		Where("tender_id = ?", tenderID).
		Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// UpsertScoringMatrix implements TenderRepository. A tender has at most one
// matrix row; updates replace the criteria map entirely.
func (r *tenderRepository) UpsertScoringMatrix(tenderID uuid.UUID, criteria models.WeightCriteria) (*models.ScoringMatrix, error) {
	var matrix models.ScoringMatrix
	err := r.db.Where("tender_id = ?", tenderID).First(&matrix).Error

	switch {
	case err == gorm.ErrRecordNotFound:
		matrix = models.ScoringMatrix{
			ID:       uuid.New(),
			TenderID: tenderID,
			Criteria: criteria,
		}
		if err := r.db.Create(&matrix).Error; err != nil {
			return nil, fmt.Errorf("failed to create scoring matrix: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find scoring matrix: %w", err)
	default:
		result := r.db.Model(&matrix).Updates(map[string]interface{}{
			"criteria":   criteria,
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update scoring matrix: %w", result.Error)
		}
		matrix.Criteria = criteria
	}

	return &matrix, nil
}

// FindScoringMatrix implements TenderRepository. A missing matrix is not an
// error; callers fall back to the categories' own weights.
func (r *tenderRepository) FindScoringMatrix(tenderID uuid.UUID) (*models.ScoringMatrix, error) {
	var matrix models.ScoringMatrix
	err := r.db.Where("tender_id = ?", tenderID).First(&matrix).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find scoring matrix: %w", err)
	}
	return &matrix, nil
}

// AddDocument implements TenderRepository.
func (r *tenderRepository) AddDocument(doc *models.TenderDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create tender document: %w", err)
	}
	return nil
}

// FindDocuments implements TenderRepository.
func (r *tenderRepository) FindDocuments(tenderID uuid.UUID) ([]models.TenderDocument, error) {
	var docs []models.TenderDocument
	err := r.db.
		Where("tender_id = ?", tenderID).
		Order("upload_date ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tender documents: %w", err)
	}
	return docs, nil
}

// RemoveDocument implements TenderRepository.
func (r *tenderRepository) RemoveDocument(tenderID, docID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND tender_id = ?", docID, tenderID).
		Delete(&models.TenderDocument{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete tender document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tender document not found")
	}
	return nil
}
