package util

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSuccessResponse_DefaultsToOK(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return SuccessResponse(c, SuccessResponseFormat{Message: "ok", Data: fiber.Map{"id": 1}})
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["data"].(map[string]any)["id"])
	assert.NotContains(t, body, "pagination")
}

func TestErrorResponse_KeepsDetailsAndAddsDevMessage(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "limit reached",
			Details: fiber.Map{"limit": 100},
		}, errors.New("quota exhausted"))
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(100), body["details"].(map[string]any)["limit"])
	assert.Equal(t, "quota exhausted", body["dev_message"])
	assert.NotContains(t, body, "trace")
}

func TestErrorResponse_DefaultsToServerError(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, ErrorResponseFormat{Message: "boom"})
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotEmpty(t, body["trace"])
}
