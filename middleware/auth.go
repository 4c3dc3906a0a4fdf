package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-admin/auth"
	"school-admin/models"
)

// ClaimsKey is the Locals key under which RequireAuth stores the verified
// token claims for downstream handlers.
const ClaimsKey = "claims"

// RequireAuth guards a route behind a valid bearer token. The header must
// have the exact shape "Bearer <token>"; anything else is rejected before
// the token service is consulted.
func RequireAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResponse{
				Message: "Unauthorized",
			})
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResponse{
				Message: "Invalid or expired token",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}
