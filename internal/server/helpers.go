package server

import (
	"forum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id route parameter. Anything but a positive integer cannot
// name a stored row, so it is reported as not found.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError(resource, c.Params("id"))
	}
	return uint(id), nil
}

// bindJSON decodes the request body into out. An empty body leaves out untouched.
func bindJSON(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}
