package handlers

import (
	"errors"

	"gavel/internal/aucterrors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses. BidTooLow additionally
// carries the amount the caller must exceed so the front end can show it.
func respondError(c *fiber.Ctx, err error) error {
	var tooLow *aucterrors.BidTooLowError
	if errors.As(err, &tooLow) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":         "bid amount too low",
			"current_highest": tooLow.CurrentHighest,
		})
	}

	switch {
	case errors.Is(err, aucterrors.ErrItemNotFound),
		errors.Is(err, aucterrors.ErrCategoryNotFound),
		errors.Is(err, aucterrors.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, aucterrors.ErrItemClosed),
		errors.Is(err, aucterrors.ErrItemAlreadyClosed),
		errors.Is(err, aucterrors.ErrBidTooLow),
		errors.Is(err, aucterrors.ErrDuplicatePosition),
		errors.Is(err, aucterrors.ErrCategoryExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, aucterrors.ErrInvalidInput),
		errors.Is(err, aucterrors.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, aucterrors.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
			"error":   err.Error(),
		})
	}
}
