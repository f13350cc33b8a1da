package repositories

import (
	"gavel/internal/models"
)

// ItemRepository defines access to items and their ordered image galleries.
type ItemRepository interface {
	Create(item *models.Item, images []models.ItemImage) error
	GetByID(id string) (*models.Item, error)
	ListByCategory(categoryID string) ([]models.Item, error)
	ListNew() ([]models.Item, error)
	ClearNewFlags(ids []string) error
	ReplaceImages(itemID string, images []models.ItemImage) error
	Close(id string) error
	Delete(id string) error
}
