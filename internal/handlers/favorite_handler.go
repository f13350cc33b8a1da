package handlers

import (
	"log"

	"gavel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for per-user item bookmarks.
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// RegisterRoutes registers the favorite routes with the Fiber app.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router) {
	favoriteRoutes := router.Group("/users/:id/favorites")
	favoriteRoutes.Get("/", h.HandleListFavorites)
	favoriteRoutes.Put("/:itemID", h.HandleAddFavorite)
	favoriteRoutes.Get("/:itemID", h.HandleIsFavorite)
	favoriteRoutes.Delete("/:itemID", h.HandleRemoveFavorite)
}

// HandleAddFavorite bookmarks an item. Re-adding is a no-op, not an error.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	userID := c.Params("id")
	itemID := c.Params("itemID")

	if err := h.service.AddFavorite(userID, itemID); err != nil {
		log.Printf("Error adding favorite (%s, %s): %v", userID, itemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Favorite added"})
}

// HandleRemoveFavorite drops the bookmark; removing a missing one succeeds.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	userID := c.Params("id")
	itemID := c.Params("itemID")

	if err := h.service.RemoveFavorite(userID, itemID); err != nil {
		log.Printf("Error removing favorite (%s, %s): %v", userID, itemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Favorite removed"})
}

// HandleIsFavorite reports whether the user has bookmarked the item.
func (h *FavoriteHandler) HandleIsFavorite(c *fiber.Ctx) error {
	favorite, err := h.service.IsFavorite(c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"favorite": favorite})
}

// HandleListFavorites returns the user's items, most recently favorited first.
func (h *FavoriteHandler) HandleListFavorites(c *fiber.Ctx) error {
	items, err := h.service.ListFavorites(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
