package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"zepth/tender-evaluator/internal/services"
)

const UserContextKey = "current_user"

// AuthUser is the request-scoped identity extracted from a verified token.
type AuthUser struct {
	ID    string
	Email string
}

// Protected returns a middleware that rejects requests without a valid
// Bearer token and stores the authenticated user in the request context.
func Protected(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token, authorization denied.",
			})
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := authService.ParseToken(token)
		if err != nil {
			msg := "Token is not valid."
			if errors.Is(err, services.ErrTokenExpired) {
				msg = "Token has expired."
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": msg,
			})
		}

		c.Locals(UserContextKey, &AuthUser{ID: claims.UserID, Email: claims.Email})
		return c.Next()
	}
}

// CurrentUser fetches the authenticated user placed by Protected. Nil when
// the route is not protected.
func CurrentUser(c *fiber.Ctx) *AuthUser {
	user, _ := c.Locals(UserContextKey).(*AuthUser)
	return user
}
