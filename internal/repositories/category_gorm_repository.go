package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create inserts a new category. Name collisions surface as ErrCategoryExists.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if existing, err := r.FindByName(category.Name); err == nil && existing != nil {
		return aucterrors.ErrCategoryExists
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return aucterrors.ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by its ID.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aucterrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// FindByName retrieves a category by name, case-insensitively.
func (r *GORMCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aucterrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by name %s: %w", name, err)
	}
	return &category, nil
}

// List returns all categories in name order.
func (r *GORMCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Delete removes a category and cascades through its items to their bids,
// images and favorites, all inside one transaction: the whole subtree
// vanishes together or not at all.
func (r *GORMCategoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var itemIDs []string
		err := tx.Model(&models.Item{}).
			Where("category_id = ?", id).
			Pluck("id", &itemIDs).Error
		if err != nil {
			return fmt.Errorf("failed to collect items of category %s: %w", id, err)
		}
		if len(itemIDs) > 0 {
			if err := deleteItemsCascade(tx, itemIDs); err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return aucterrors.ErrCategoryNotFound
		}
		return nil
	})
}
