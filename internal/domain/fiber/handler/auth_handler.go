package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/middleware"
	"github.com/resumify/resumify-api/internal/usage"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/resumify/resumify-api/internal/util"
)

type AuthHandler struct {
	uc   *usecase.AuthUsecase
	gate *usage.Gate
}

func NewAuthHandler(uc *usecase.AuthUsecase, gate *usage.Gate) *AuthHandler {
	return &AuthHandler{uc: uc, gate: gate}
}

func (h *AuthHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/auth/signup", middleware.RateLimiter(5, time.Minute), h.Signup)
	r.Post("/auth/login", middleware.RateLimiter(10, time.Minute), h.Login)
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/me", h.Me)
	r.Get("/usage", h.Usage)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	user, token, err := h.uc.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, "failed to sign up", err)
	}

	quota := h.gate.Status(user, time.Now())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Account created",
		Data:    dto.AuthResponse{Token: token, User: dto.NewUserDTO(user, &quota)},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	user, token, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, "failed to log in", err)
	}

	quota := h.gate.Status(user, time.Now())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged in",
		Data:    dto.AuthResponse{Token: token, User: dto.NewUserDTO(user, &quota)},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	quota := h.gate.Status(user, time.Now())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    dto.NewUserDTO(user, &quota),
	})
}

func (h *AuthHandler) Usage(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get usage",
		Data:    h.gate.Status(middleware.CurrentUser(c), time.Now()),
	})
}
