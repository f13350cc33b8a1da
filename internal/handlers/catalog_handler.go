package handlers

import (
	"log"

	"gavel/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateItemRequest is the payload for listing a new item.
type CreateItemRequest struct {
	SellerID    string   `json:"seller_id" validate:"required"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	StartPrice  int64    `json:"start_price" validate:"required,gt=0"`
	ImageRefs   []string `json:"image_refs" validate:"omitempty,dive,required"`
}

// CatalogHandler handles HTTP requests for categories, items and galleries.
type CatalogHandler struct {
	service     *services.CatalogService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, authService *services.AuthService) *CatalogHandler {
	return &CatalogHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
// The literal /items/new routes must be registered before /items/:id.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Get("/find", h.HandleFindCategory)
	categoryRoutes.Get("/:id/items", h.HandleListItemsByCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)

	itemRoutes := router.Group("/items")
	itemRoutes.Get("/new", h.HandleListNewItems)
	itemRoutes.Post("/new/clear", h.HandleClearNewFlags)
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Get("/:id", h.HandleGetItem)
	itemRoutes.Put("/:id/images", h.HandleReorderImages)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleCreateItem lists a new item with its image gallery.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	item, err := h.service.CreateItem(req.SellerID, req.CategoryID, req.Title, req.Description, req.StartPrice, req.ImageRefs)
	if err != nil {
		log.Printf("Error creating item: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetItem retrieves an item with its ordered gallery.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleReorderImages atomically replaces an item's gallery.
func (h *CatalogHandler) HandleReorderImages(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var req struct {
		Images []services.ImagePlacement `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reorder request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.ReorderImages(itemID, req.Images); err != nil {
		log.Printf("Error reordering images for item %s: %v", itemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Images reordered successfully"})
}

// HandleDeleteItem removes an item and everything hanging off it. Admin only;
// the acting identity comes from the actor_id query parameter.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	actorID := c.Query("actor_id")

	if err := h.service.DeleteItem(itemID, h.authService.IsAdmin(actorID)); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

// HandleListNewItems returns items not yet announced in the digest.
func (h *CatalogHandler) HandleListNewItems(c *fiber.Ctx) error {
	items, err := h.service.ListNewItems()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleClearNewFlags marks the given items as announced.
func (h *CatalogHandler) HandleClearNewFlags(c *fiber.Ctx) error {
	var req struct {
		ItemIDs []string `json:"item_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.service.ClearNewFlags(req.ItemIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "New flags cleared"})
}

// HandleCreateCategory adds a new category. Admin only.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req struct {
		ActorID string `json:"actor_id"`
		Name    string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	category, err := h.service.CreateCategory(req.Name, h.authService.IsAdmin(req.ActorID))
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleListCategories returns all categories in name order.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleFindCategory looks a category up by name, case-insensitively.
func (h *CatalogHandler) HandleFindCategory(c *fiber.Ctx) error {
	category, err := h.service.FindCategoryByName(c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleListItemsByCategory returns a category's items, newest first.
func (h *CatalogHandler) HandleListItemsByCategory(c *fiber.Ctx) error {
	items, err := h.service.ListItemsByCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleDeleteCategory removes a category and cascades through its items.
// Admin only; the acting identity comes from the actor_id query parameter.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	actorID := c.Query("actor_id")

	if err := h.service.DeleteCategory(categoryID, h.authService.IsAdmin(actorID)); err != nil {
		log.Printf("Error deleting category %s: %v", categoryID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
