package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/resumify/resumify-api/internal/usage"
	"github.com/resumify/resumify-api/internal/util"
)

// UsageGate admits metered requests and counts the ones that complete successfully.
// It must run after LoadUser.
func UsageGate(gate *usage.Gate, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "unauthenticated",
			})
		}

		decision, err := gate.CheckAdmission(c.UserContext(), user, now())
		if err != nil {
			log.Printf("usage gate: %v", err)
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "could not verify your usage quota, please try again",
			}, err)
		}
		if !decision.Admit {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusForbidden,
				Message: decision.Message,
				Details: fiber.Map{
					"limit_reached": decision.LimitReached,
					"limit":         decision.Limit,
				},
			})
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() < fiber.StatusBadRequest {
			gate.RecordUsage(c.UserContext(), user.ID)
		}
		return nil
	}
}
