package repositories

import (
	"errors"
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Add bookmarks an item for a user. A duplicate insert is absorbed by the
// composite primary key (ON CONFLICT DO NOTHING), never surfaced as an error.
func (r *GORMFavoriteRepository) Add(userID, itemID string) error {
	var item models.Item
	if err := r.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return aucterrors.ErrItemNotFound
		}
		return fmt.Errorf("failed to load item %s: %w", itemID, err)
	}

	favorite := models.Favorite{UserID: userID, ItemID: itemID}
	err := r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite (%s, %s): %w", userID, itemID, err)
	}
	return nil
}

// Remove drops the bookmark. Removing a non-existent favorite is a no-op.
func (r *GORMFavoriteRepository) Remove(userID, itemID string) error {
	err := r.db.
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite (%s, %s): %w", userID, itemID, err)
	}
	return nil
}

// IsFavorite reports whether the user has bookmarked the item.
func (r *GORMFavoriteRepository) IsFavorite(userID, itemID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite (%s, %s): %w", userID, itemID, err)
	}
	return count > 0, nil
}

// ListItems returns the user's favorited items, most recently favorited first.
func (r *GORMFavoriteRepository) ListItems(userID string) ([]models.Item, error) {
	var items []models.Item
	err := r.db.
		Table("favorites").
		Select("items.*").
		Joins("JOIN items ON items.id = favorites.item_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %s: %w", userID, err)
	}
	return items, nil
}

// ListUserIDs returns the users watching an item, for close notifications.
func (r *GORMFavoriteRepository) ListUserIDs(itemID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Favorite{}).
		Distinct("user_id").
		Where("item_id = ?", itemID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watchers for item %s: %w", itemID, err)
	}
	return ids, nil
}
