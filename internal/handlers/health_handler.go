package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealth reports liveness. It never touches the store.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Healthy"})
}
