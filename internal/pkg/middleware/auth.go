package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/internal/pkg/token"
)

const currentUserKey = "currentUser"

// AuthRequired checks the Bearer session token and resolves the acting
// user record, so handlers always work with a fresh row rather than the
// token payload.
func AuthRequired(users repository.UserRepository, tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := tokens.Verify(parts[1], token.KindSession)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			return unauthorized(c, "User with this credentials was not found!")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// AdminRequired re-checks the stored role by email instead of trusting the
// token payload. Must run after AuthRequired.
func AdminRequired(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := CurrentUser(c)
		if actor == nil {
			return unauthorized(c, "Authorization header is required")
		}

		fresh, err := users.GetByEmail(actor.Email)
		if err != nil || !fresh.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"statusCode": fiber.StatusForbidden,
				"message":    "Forbidden resource",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"statusCode": fiber.StatusUnauthorized,
		"message":    message,
	})
}
