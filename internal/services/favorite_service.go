package services

import (
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"
	"gavel/internal/repositories"
)

// FavoriteService handles business logic for per-user item bookmarks.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
	}
}

// AddFavorite bookmarks an item. Adding an already-favorited item is a no-op.
func (s *FavoriteService) AddFavorite(userID, itemID string) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("%w: missing user ID or item ID", aucterrors.ErrInvalidInput)
	}
	return s.favoriteRepo.Add(userID, itemID)
}

// RemoveFavorite drops the bookmark. Removing a non-existent one is a no-op.
func (s *FavoriteService) RemoveFavorite(userID, itemID string) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("%w: missing user ID or item ID", aucterrors.ErrInvalidInput)
	}
	return s.favoriteRepo.Remove(userID, itemID)
}

// IsFavorite reports whether the user has bookmarked the item.
func (s *FavoriteService) IsFavorite(userID, itemID string) (bool, error) {
	if userID == "" || itemID == "" {
		return false, fmt.Errorf("%w: missing user ID or item ID", aucterrors.ErrInvalidInput)
	}
	return s.favoriteRepo.IsFavorite(userID, itemID)
}

// ListFavorites returns the user's items, most recently favorited first.
func (s *FavoriteService) ListFavorites(userID string) ([]models.Item, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user ID", aucterrors.ErrInvalidInput)
	}
	return s.favoriteRepo.ListItems(userID)
}
