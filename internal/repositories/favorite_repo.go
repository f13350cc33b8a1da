package repositories

import (
	"gavel/internal/models"
)

// FavoriteRepository defines access to per-user item bookmarks.
// Add and Remove are idempotent: reaching the desired state is success.
type FavoriteRepository interface {
	Add(userID, itemID string) error
	Remove(userID, itemID string) error
	IsFavorite(userID, itemID string) (bool, error)
	ListItems(userID string) ([]models.Item, error)
	ListUserIDs(itemID string) ([]string, error)
}
