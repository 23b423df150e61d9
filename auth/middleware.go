// auth/middleware.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noteful/noteful-server/domain"
)

const claimsKey = "authClaims"

// Middleware rejects requests without a valid bearer token and stores the
// verified claims in the request locals.
func Middleware(issuer *Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := issuer.Verify(TokenFromRequest(c))
		if err != nil {
			return domain.ErrUnauthorized
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// TokenFromRequest pulls the bearer token from the Authorization header,
// falling back to the `token` query parameter for websocket upgrades.
func TokenFromRequest(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

// UserID returns the authenticated user's id. Only valid behind Middleware.
func UserID(c *fiber.Ctx) string {
	if claims, ok := c.Locals(claimsKey).(*Claims); ok {
		return claims.Subject
	}
	return ""
}

// Username returns the authenticated user's username.
func Username(c *fiber.Ctx) string {
	if claims, ok := c.Locals(claimsKey).(*Claims); ok {
		return claims.Username
	}
	return ""
}
