package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/middleware"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/resumify/resumify-api/internal/util"
)

const maxUploadSize = 5 * 1024 * 1024

type AIHandler struct {
	uc        *usecase.AIUsecase
	resumes   *usecase.ResumeUsecase
	uploadDir string
}

func NewAIHandler(uc *usecase.AIUsecase, resumes *usecase.ResumeUsecase, uploadDir string) *AIHandler {
	return &AIHandler{uc: uc, resumes: resumes, uploadDir: uploadDir}
}

// RegisterRoutes mounts the AI endpoints behind metered, which admits and counts each request.
func (h *AIHandler) RegisterRoutes(r fiber.Router, metered ...fiber.Handler) {
	ai := r.Group("/ai", metered...)
	ai.Post("/summary", h.Summary)
	ai.Post("/enhance", h.Enhance)
	ai.Post("/analyze", h.Analyze)
	ai.Post("/import", h.Import)
}

func (h *AIHandler) Summary(c *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	content, err := h.resolveContent(c, req.ResumeSource)
	if err != nil {
		return respondError(c, "resume content is required", err)
	}

	summary, err := h.uc.GenerateSummary(c.UserContext(), *content, req.TargetRole)
	if err != nil {
		return respondError(c, "failed to generate summary", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate summary",
		Data:    dto.SummaryResponse{Summary: summary},
	})
}

func (h *AIHandler) Enhance(c *fiber.Ctx) error {
	var req dto.EnhanceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	out, err := h.uc.EnhanceExperience(c.UserContext(), req.Experience, req.TargetRole)
	if err != nil {
		return respondError(c, "failed to enhance experience", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success enhance experience",
		Data:    out,
	})
}

func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req dto.JobMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	content, err := h.resolveContent(c, req.ResumeSource)
	if err != nil {
		return respondError(c, "resume content is required", err)
	}

	out, err := h.uc.AnalyzeJobMatch(c.UserContext(), *content, req.JobDescription)
	if err != nil {
		return respondError(c, "failed to analyze job match", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze job match",
		Data:    out,
	})
}

func (h *AIHandler) Import(c *fiber.Ctx) error {
	path, err := h.saveUpload(c, "resume")
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	defer os.Remove(path)

	content, err := h.uc.ImportPDF(c.UserContext(), path)
	if err != nil {
		return respondError(c, "failed to import resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success import resume",
		Data:    content,
	})
}

// resolveContent loads the caller's stored resume or falls back to inline content.
func (h *AIHandler) resolveContent(c *fiber.Ctx, src dto.ResumeSource) (*model.ResumeContent, error) {
	if src.ResumeID != nil {
		userID, _ := middleware.UserID(c)
		resume, err := h.resumes.Get(c.UserContext(), userID, *src.ResumeID)
		if err != nil {
			return nil, err
		}
		return &resume.Content, nil
	}
	if src.Content != nil {
		return src.Content, nil
	}
	return nil, fmt.Errorf("%w: resume_id or content is required", usecase.ErrInvalidInput)
}

func (h *AIHandler) saveUpload(c *fiber.Ctx, fieldName string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", fmt.Errorf("%s file is required", fieldName)
	}
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("%s file size is too large (max 5MB)", fieldName)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", fmt.Errorf("unsupported %s file type %q", fieldName, ext)
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot prepare upload directory")
	}
	savePath := filepath.Join(h.uploadDir, uuid.NewString()+".pdf")
	if err := c.SaveFile(file, savePath); err != nil {
		return "", fmt.Errorf("cannot save %s file", fieldName)
	}
	return savePath, nil
}
