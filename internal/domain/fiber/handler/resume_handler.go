package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/middleware"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/resumify/resumify-api/internal/util"
)

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/resumes", h.Create)
	r.Get("/resumes", h.List)
	r.Get("/resumes/:id", h.Get)
	r.Put("/resumes/:id", h.Update)
	r.Delete("/resumes/:id", h.Delete)
	r.Get("/resumes/:id/ats", h.ATS)
	r.Post("/resumes/:id/publish", h.Publish)
	r.Delete("/resumes/:id/publish", h.Unpublish)
}

func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	var req dto.ResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	resume, err := h.uc.Create(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, "failed to create resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume created",
		Data:    dto.NewResumeDTO(resume),
	})
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	resumes, pagination, err := h.uc.List(c.UserContext(), userID, c.QueryInt("page", 1), c.QueryInt("page_size", 10))
	if err != nil {
		return respondError(c, "failed to list resumes", err)
	}

	data := make([]dto.ResumeDTO, 0, len(resumes))
	for i := range resumes {
		data = append(data, dto.NewResumeDTO(&resumes[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list resumes",
		Data:       data,
		Pagination: &pagination,
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	return h.withResume(c, "Success get resume", h.uc.Get)
}

func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id", err)
	}
	var req dto.ResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	resume, err := h.uc.Update(c.UserContext(), userID, id, req)
	if err != nil {
		return respondError(c, "failed to update resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume updated",
		Data:    dto.NewResumeDTO(resume),
	})
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id", err)
	}
	if err := h.uc.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, "failed to delete resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Resume deleted"})
}

func (h *ResumeHandler) ATS(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id", err)
	}
	result, err := h.uc.Analyze(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, "failed to analyze resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze resume",
		Data:    dto.ATSReportDTO{ResumeID: id, Result: *result},
	})
}

func (h *ResumeHandler) Publish(c *fiber.Ctx) error {
	return h.withResume(c, "Resume published", h.uc.Publish)
}

func (h *ResumeHandler) Unpublish(c *fiber.Ctx) error {
	return h.withResume(c, "Resume unpublished", h.uc.Unpublish)
}

func (h *ResumeHandler) withResume(c *fiber.Ctx, message string, fn func(ctx context.Context, userID, id uuid.UUID) (*model.Resume, error)) error {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id", err)
	}
	resume, err := fn(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, "failed to process resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    dto.NewResumeDTO(resume),
	})
}
