package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/resumify/resumify-api/internal/util"
)

// respondError maps usecase errors to HTTP statuses.
func respondError(c *fiber.Ctx, message string, err error) error {
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	case errors.Is(err, usecase.ErrNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusNotFound, Message: "resume not found"})
	case errors.Is(err, usecase.ErrInvalidInput):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: message}, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusConflict, Message: err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusUnauthorized, Message: err.Error()})
	case errors.Is(err, usecase.ErrModelOutput):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadGateway, Message: message}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: message}, err)
	}
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: message}, err)
}
