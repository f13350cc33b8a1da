package repositories

import (
	"errors"
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// Create inserts an item together with its image gallery in one transaction.
// Images get positions 0..N-1 in the order supplied by the caller.
func (r *GORMItemRepository) Create(item *models.Item, images []models.ItemImage) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		for i := range images {
			images[i].ID = uuid.New().String()
			images[i].ItemID = item.ID
			images[i].Position = i
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to create item images: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an item with its images in gallery order.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aucterrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// ListByCategory returns a category's items, newest first.
func (r *GORMItemRepository) ListByCategory(categoryID string) ([]models.Item, error) {
	var items []models.Item
	err := r.db.
		Where("category_id = ?", categoryID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items for category %s: %w", categoryID, err)
	}
	return items, nil
}

// ListNew returns items still flagged for the new-item digest, newest first.
func (r *GORMItemRepository) ListNew() ([]models.Item, error) {
	var items []models.Item
	err := r.db.
		Where("is_new = ?", true).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list new items: %w", err)
	}
	return items, nil
}

// ClearNewFlags removes the digest flag from the given items.
func (r *GORMItemRepository) ClearNewFlags(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Model(&models.Item{}).
		Where("id IN ?", ids).
		Update("is_new", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear new flags: %w", err)
	}
	return nil
}

// ReplaceImages atomically swaps an item's gallery for the supplied one. The
// caller provides explicit positions; duplicates are rejected before anything
// is deleted, so a bad request leaves the prior gallery untouched.
func (r *GORMItemRepository) ReplaceImages(itemID string, images []models.ItemImage) error {
	positions := make(map[int]struct{}, len(images))
	for _, img := range images {
		if _, dup := positions[img.Position]; dup {
			return aucterrors.ErrDuplicatePosition
		}
		positions[img.Position] = struct{}{}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return aucterrors.ErrItemNotFound
			}
			return fmt.Errorf("failed to load item %s: %w", itemID, err)
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemImage{}).Error; err != nil {
			return fmt.Errorf("failed to clear images for item %s: %w", itemID, err)
		}
		for i := range images {
			images[i].ID = uuid.New().String()
			images[i].ItemID = itemID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to insert images for item %s: %w", itemID, err)
			}
		}
		return nil
	})
}

// Close marks an item as no longer accepting bids.
func (r *GORMItemRepository) Close(id string) error {
	res := r.db.Model(&models.Item{}).
		Where("id = ? AND is_open = ?", id, true).
		Update("is_open", false)
	if res.Error != nil {
		return fmt.Errorf("failed to close item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return aucterrors.ErrItemAlreadyClosed
	}
	return nil
}

// Delete removes an item and everything hanging off it in one transaction.
func (r *GORMItemRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteItemsCascade(tx, []string{id})
	})
}

// deleteItemsCascade removes bids, images and favorites of the given items and
// then the items themselves. Ordered children-first so no orphan rows survive
// a partially enforcing store.
func deleteItemsCascade(tx *gorm.DB, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.Bid{}).Error; err != nil {
		return fmt.Errorf("failed to delete bids: %w", err)
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ItemImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete item images: %w", err)
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to delete favorites: %w", err)
	}
	res := tx.Where("id IN ?", itemIDs).Delete(&models.Item{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete items: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return aucterrors.ErrItemNotFound
	}
	return nil
}
