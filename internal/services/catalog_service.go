package services

import (
	"encoding/json"
	"fmt"
	"log"

	"gavel/internal/aucterrors"
	"gavel/internal/models"
	"gavel/internal/repositories"
)

// ImagePlacement is one entry of a gallery reorder request: which file goes
// at which zero-based position.
type ImagePlacement struct {
	FileRef  string `json:"file_ref" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

// CatalogService handles business logic for categories, items and galleries.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
	publisher    EventPublisher
}

// NewCatalogService creates a new CatalogService. The publisher may be nil.
func NewCatalogService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		publisher:    publisher,
	}
}

// CreateItem lists a new item. The category must exist, the start price must
// be positive, and the supplied image references get positions 0..N-1.
func (s *CatalogService) CreateItem(sellerID, categoryID, title, description string, startPrice int64, imageRefs []string) (*models.Item, error) {
	if sellerID == "" || categoryID == "" || title == "" {
		return nil, fmt.Errorf("%w: missing seller ID, category ID or title", aucterrors.ErrInvalidInput)
	}
	if startPrice <= 0 {
		return nil, fmt.Errorf("%w: start price must be positive", aucterrors.ErrInvalidInput)
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	item := &models.Item{
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		StartPrice:  startPrice,
		IsOpen:      true,
		IsNew:       true,
	}
	images := make([]models.ItemImage, len(imageRefs))
	for i, ref := range imageRefs {
		if ref == "" {
			return nil, fmt.Errorf("%w: blank image reference", aucterrors.ErrInvalidInput)
		}
		images[i] = models.ItemImage{FileRef: ref}
	}

	if err := s.itemRepo.Create(item, images); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	item.Images = images
	return item, nil
}

// GetItem retrieves an item with its gallery in order.
func (s *CatalogService) GetItem(itemID string) (*models.Item, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: missing item ID", aucterrors.ErrInvalidInput)
	}
	return s.itemRepo.GetByID(itemID)
}

// ListItemsByCategory returns a category's items, newest first.
func (s *CatalogService) ListItemsByCategory(categoryID string) ([]models.Item, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("%w: missing category ID", aucterrors.ErrInvalidInput)
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByCategory(categoryID)
}

// ListNewItems returns items not yet announced in the new-item digest.
func (s *CatalogService) ListNewItems() ([]models.Item, error) {
	return s.itemRepo.ListNew()
}

// ClearNewFlags marks the given items as announced.
func (s *CatalogService) ClearNewFlags(itemIDs []string) error {
	return s.itemRepo.ClearNewFlags(itemIDs)
}

// ReorderImages atomically replaces an item's gallery. Duplicate positions in
// the request are rejected and leave the prior gallery unmodified.
func (s *CatalogService) ReorderImages(itemID string, placements []ImagePlacement) error {
	if itemID == "" {
		return fmt.Errorf("%w: missing item ID", aucterrors.ErrInvalidInput)
	}
	images := make([]models.ItemImage, len(placements))
	for i, p := range placements {
		if p.FileRef == "" {
			return fmt.Errorf("%w: blank image reference", aucterrors.ErrInvalidInput)
		}
		if p.Position < 0 {
			return fmt.Errorf("%w: negative image position", aucterrors.ErrInvalidInput)
		}
		images[i] = models.ItemImage{FileRef: p.FileRef, Position: p.Position}
	}
	return s.itemRepo.ReplaceImages(itemID, images)
}

// DeleteItem removes an item and its bids, images and favorites. Admin only.
func (s *CatalogService) DeleteItem(itemID string, isAdmin bool) error {
	if itemID == "" {
		return fmt.Errorf("%w: missing item ID", aucterrors.ErrInvalidInput)
	}
	if !isAdmin {
		return aucterrors.ErrUnauthorized
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(itemID); err != nil {
		return err
	}
	s.publishDeletion("item.deleted", map[string]any{
		"item_id":   item.ID,
		"seller_id": item.SellerID,
		"title":     item.Title,
	})
	return nil
}

// CreateCategory adds a new category. Admin only.
func (s *CatalogService) CreateCategory(name string, isAdmin bool) (*models.Category, error) {
	if !isAdmin {
		return nil, aucterrors.ErrUnauthorized
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing category name", aucterrors.ErrInvalidInput)
	}
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories in name order.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// FindCategoryByName retrieves a category by name, case-insensitively.
func (s *CatalogService) FindCategoryByName(name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing category name", aucterrors.ErrInvalidInput)
	}
	return s.categoryRepo.FindByName(name)
}

// DeleteCategory removes a category and cascades through its items to their
// bids, images and favorites as one atomic operation. Admin only.
func (s *CatalogService) DeleteCategory(categoryID string, isAdmin bool) error {
	if categoryID == "" {
		return fmt.Errorf("%w: missing category ID", aucterrors.ErrInvalidInput)
	}
	if !isAdmin {
		return aucterrors.ErrUnauthorized
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return err
	}
	s.publishDeletion("category.deleted", map[string]any{"category_id": categoryID})
	return nil
}

func (s *CatalogService) publishDeletion(routingKey string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
