package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/auth"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/repository"
	"github.com/resumify/resumify-api/internal/util"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

type UserLoader interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Auth validates the bearer token and stores the user id in Locals.
func Auth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "missing bearer token",
			})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "invalid or expired token",
			}, err)
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// LoadUser fetches the authenticated user record. It must run after Auth.
func LoadUser(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "unauthenticated",
			})
		}

		user, err := users.FindUserByID(c.UserContext(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "account no longer exists",
			})
		}
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "failed to load account",
			}, err)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequirePlan rejects users whose plan is not one of plans. It must run after LoadUser.
func RequirePlan(plans ...model.Plan) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "unauthenticated",
			})
		}
		for _, p := range plans {
			if user.Plan == p {
				return c.Next()
			}
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "your plan does not include this feature",
		})
	}
}

func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userKey).(*model.User)
	return user
}
