package handlers

import (
	"log"

	"gavel/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuctionHandler handles HTTP requests for bidding and closing.
type AuctionHandler struct {
	service     *services.AuctionService
	authService *services.AuthService
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(service *services.AuctionService, authService *services.AuthService) *AuctionHandler {
	return &AuctionHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the auction routes with the Fiber app.
func (h *AuctionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/items/:id/bids", h.HandlePlaceBid)
	router.Post("/items/:id/close", h.HandleCloseItem)
	router.Get("/items/:id/highest-bid", h.HandleHighestBid)
	router.Get("/items/:id/bids", h.HandleListBids)
	router.Get("/users/:id/bids", h.HandleListUserBids)
}

// HandlePlaceBid records a bid on an open item.
func (h *AuctionHandler) HandlePlaceBid(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var req struct {
		BidderID string `json:"bidder_id"`
		Amount   int64  `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bid request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	bid, err := h.service.PlaceBid(itemID, req.BidderID, req.Amount)
	if err != nil {
		log.Printf("Bid rejected for item %s: %v", itemID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

// HandleCloseItem transitions an item to closed and returns the winning bid.
// The admin decision is resolved here from the configured admin list; the
// engine only sees the resulting flag.
func (h *AuctionHandler) HandleCloseItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var req struct {
		ActorID string `json:"actor_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing close request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := h.service.CloseItem(itemID, req.ActorID, h.authService.IsAdmin(req.ActorID))
	if err != nil {
		log.Printf("Close rejected for item %s: %v", itemID, err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleHighestBid returns the current leader, or a null bid if none exist.
func (h *AuctionHandler) HandleHighestBid(c *fiber.Ctx) error {
	itemID := c.Params("id")
	bid, err := h.service.HighestBid(itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bid": bid})
}

// HandleListBids returns the full ledger for an item in acceptance order.
func (h *AuctionHandler) HandleListBids(c *fiber.Ctx) error {
	itemID := c.Params("id")
	bids, err := h.service.ListBids(itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bids)
}

// HandleListUserBids returns the items the user has bid on with their top amounts.
func (h *AuctionHandler) HandleListUserBids(c *fiber.Ctx) error {
	userID := c.Params("id")
	items, err := h.service.ListUserBidItems(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
