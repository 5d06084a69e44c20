package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zepth/tender-evaluator/internal/models"
)

type BidderRepository interface {
	Create(bidder *models.Bidder) error
	FindByID(id uuid.UUID) (*models.Bidder, error)
	FindByTender(tenderID uuid.UUID) ([]models.Bidder, error)
	AddDocument(doc *models.BidderDocument) error
	FindDocuments(bidderID uuid.UUID) ([]models.BidderDocument, error)
	FindDocumentsByCategory(bidderID, categoryID uuid.UUID) ([]models.BidderDocument, error)
	RemoveDocument(bidderID, docID uuid.UUID) (*models.BidderDocument, error)
}

type bidderRepository struct {
	db *gorm.DB
}

func NewBidderRepository(db *gorm.DB) BidderRepository {
	return &bidderRepository{db: db}
}

// Create implements BidderRepository.
func (r *bidderRepository) Create(bidder *models.Bidder) error {
	if err := r.db.Create(bidder).Error; err != nil {
		return fmt.Errorf("failed to create bidder: %w", err)
	}
	return nil
}

// FindByID implements BidderRepository.
func (r *bidderRepository) FindByID(id uuid.UUID) (*models.Bidder, error) {
	var bidder models.Bidder
	err := r.db.
		Preload("Documents").
		Preload("Evaluation").
		Where("id = ?", id).
		First(&bidder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("bidder not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find bidder: %w", err)
	}
	return &bidder, nil
}

// FindByTender implements BidderRepository. Bidders come back in creation
// order; the ranker relies on a stable input order for tie-breaking.
func (r *bidderRepository) FindByTender(tenderID uuid.UUID) ([]models.Bidder, error) {
	var bidders []models.Bidder
	err := r.db.
		Preload("Documents").
		Preload("Evaluation").
		Where("tender_id = ?", tenderID).
		Order("created_at ASC").
		Find(&bidders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bidders: %w", err)
	}
	return bidders, nil
}

// AddDocument implements BidderRepository.
func (r *bidderRepository) AddDocument(doc *models.BidderDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create bidder document: %w", err)
	}
	return nil
}

// FindDocuments implements BidderRepository.
func (r *bidderRepository) FindDocuments(bidderID uuid.UUID) ([]models.BidderDocument, error) {
	var docs []models.BidderDocument
	err := r.db.
		Where("bidder_id = ?", bidderID).
		Order("upload_date ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bidder documents: %w", err)
	}
	return docs, nil
}

// FindDocumentsByCategory implements BidderRepository.
func (r *bidderRepository) FindDocumentsByCategory(bidderID, categoryID uuid.UUID) ([]models.BidderDocument, error) {
	var docs []models.BidderDocument
	err := r.db.
		Where("bidder_id = ? AND category_id = ?", bidderID, categoryID).
		Order("upload_date ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bidder documents: %w", err)
	}
	return docs, nil
}

// RemoveDocument implements BidderRepository. The deleted row is returned so
// the caller can clean up the stored file.
func (r *bidderRepository) RemoveDocument(bidderID, docID uuid.UUID) (*models.BidderDocument, error) {
	var doc models.BidderDocument
	err := r.db.
		Where("id = ? AND bidder_id = ?", docID, bidderID).
		First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("bidder document not found")
		}
		return nil, fmt.Errorf("failed to find bidder document: %w", err)
	}

	if err := r.db.Delete(&doc).Error; err != nil {
		return nil, fmt.Errorf("failed to delete bidder document: %w", err)
	}
	return &doc, nil
}
