package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
)

// LocalUser is the Locals key holding the authenticated *models.User
const LocalUser = "user"

// Authenticator resolves a bearer token to the live user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthUser requires a valid bearer token and stores the token's user in context
func AuthUser(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization bearer token not found",
				Type:    string(types.KindAuth),
			}
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireOwner allows the request only when the authenticated user is the one
// named by the :username route parameter. Must run after AuthUser.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return types.Auth(types.ReasonInvalidToken, "not authenticated")
		}
		if user.Username != c.Params("username") {
			return types.Auth(types.ReasonForbidden, "access to another user's data is forbidden")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil outside AuthUser
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
