package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// EnsurePlayerID requires the opaque player identity the client holds,
// from the X-Player-ID header or the playerId query parameter, and stores
// it in locals for the handlers.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
