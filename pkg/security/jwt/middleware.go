package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndanilchenko/tasktrack/pkg/auth"
)

// Locals keys set by the middleware for downstream handlers.
const (
	LocalUserID    = "userId"
	LocalUserEmail = "userEmail"
)

// NewAuthMiddleware returns a Fiber middleware that validates a
// "Bearer <token>" Authorization header. On success the token's claims are
// bound to the request; no user record lookup happens here.
func NewAuthMiddleware(verifier auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "no authorization header"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "no token provided"})
		}
		claims, err := verifier.Verify(c.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Email)
		return c.Next()
	}
}
