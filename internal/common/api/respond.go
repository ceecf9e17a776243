package api

import (
	"errors"

	"go-hr/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// SendError maps service errors onto HTTP statuses using the shared
// sentinels. Anything unmatched is a 500 with the raw message.
func SendError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrDuplicate):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrInvalid):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
