package handlers

import (
	"log"

	"gavel/internal/models"
	"gavel/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the identity cache.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUserIDs)
	userRoutes.Put("/:id", h.HandleUpsertUser)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Patch("/:id/notifications", h.HandleSetNotifications)
}

// HandleUpsertUser records or refreshes an identity seen by the front end.
func (h *UserHandler) HandleUpsertUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing upsert user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	user.ID = c.Params("id")
	if err := h.validate.Struct(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpsertUser(&user); err != nil {
		log.Printf("Error upserting user %s: %v", user.ID, err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleGetUser retrieves a cached identity.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleSetNotifications toggles the user's notification opt-out.
func (h *UserHandler) HandleSetNotifications(c *fiber.Ctx) error {
	var req struct {
		Disabled bool `json:"disabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.SetNotificationsDisabled(c.Params("id"), req.Disabled); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification settings updated"})
}

// HandleListUserIDs returns every cached identity, for broadcast fan-out.
func (h *UserHandler) HandleListUserIDs(c *fiber.Ctx) error {
	ids, err := h.service.ListUserIDs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_ids": ids})
}
