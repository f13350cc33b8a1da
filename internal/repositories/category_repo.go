package repositories

import (
	"gavel/internal/models"
)

// CategoryRepository defines access to item categories.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	List() ([]models.Category, error)
	Delete(id string) error
}
