package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// EnsurePlayerID reads the caller's id from the X-Player-ID header or the
// playerId query parameter and stores it in Locals as "playerID".
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
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if _, err := uuid.Parse(playerID); err != nil {
			log.Debugw("rejected player id", "path", c.Path(), "player", playerID, "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Player ID must be a UUID",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
