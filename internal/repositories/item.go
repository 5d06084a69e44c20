package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zepth/tender-evaluator/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

// ItemRepository scopes every operation to the owning user; an item that
// exists but belongs to someone else behaves as not found.
type ItemRepository interface {
	Create(item *models.Item) error
	FindByUser(userID uuid.UUID) ([]models.Item, error)
	FindByID(id, userID uuid.UUID) (*models.Item, error)
	Update(item *models.Item) error
	Delete(id, userID uuid.UUID) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create implements ItemRepository.
func (r *itemRepository) Create(item *models.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// FindByUser implements ItemRepository.
func (r *itemRepository) FindByUser(userID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// FindByID implements ItemRepository.
func (r *itemRepository) FindByID(id, userID uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

// Update implements ItemRepository.
func (r *itemRepository) Update(item *models.Item) error {
	result := r.db.Model(&models.Item{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete implements ItemRepository.
func (r *itemRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
