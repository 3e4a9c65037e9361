package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/resumify/resumify-api/internal/util"
)

type RecruiterHandler struct {
	resumes *usecase.ResumeUsecase
}

func NewRecruiterHandler(resumes *usecase.ResumeUsecase) *RecruiterHandler {
	return &RecruiterHandler{resumes: resumes}
}

func (h *RecruiterHandler) RegisterRoutes(r fiber.Router, guards ...fiber.Handler) {
	recruiter := r.Group("/recruiter", guards...)
	recruiter.Get("/search", h.Search)
}

func (h *RecruiterHandler) Search(c *fiber.Ctx) error {
	resumes, err := h.resumes.SearchCandidates(c.UserContext(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, "failed to search candidates", err)
	}

	data := make([]dto.CandidateDTO, 0, len(resumes))
	for i := range resumes {
		data = append(data, dto.NewCandidateDTO(&resumes[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search candidates",
		Data:    data,
	})
}
