package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/resumify/resumify-api/internal/ats"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/response"
	"github.com/resumify/resumify-api/internal/service"
	"github.com/resumify/resumify-api/internal/util"
)

const (
	defaultTemplate   = "classic"
	maxSearchResults  = 50
	defaultSearchSize = 10
)

type ResumeUsecase struct {
	resumes  ResumeStore
	scorer   *ats.Scorer
	embedder service.Embedder
}

func NewResumeUsecase(resumes ResumeStore, scorer *ats.Scorer, embedder service.Embedder) *ResumeUsecase {
	return &ResumeUsecase{resumes: resumes, scorer: scorer, embedder: embedder}
}

func (uc *ResumeUsecase) Create(ctx context.Context, userID uuid.UUID, req dto.ResumeRequest) (*model.Resume, error) {
	if err := util.ValidateStruct("invalid resume data", req); err != nil {
		return nil, err
	}
	resume := &model.Resume{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Template: req.Template,
		Content:  req.Content,
	}
	if resume.Title == "" {
		resume.Title = "Untitled resume"
	}
	if resume.Template == "" {
		resume.Template = defaultTemplate
	}
	resume.ATSScore = uc.scorer.Score(resume.Content).Score

	if err := uc.resumes.CreateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return resume, nil
}

// Update replaces the editable fields and recomputes the ATS score from scratch.
func (uc *ResumeUsecase) Update(ctx context.Context, userID, id uuid.UUID, req dto.ResumeRequest) (*model.Resume, error) {
	if err := util.ValidateStruct("invalid resume data", req); err != nil {
		return nil, err
	}
	resume, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		resume.Title = title
	}
	if req.Template != "" {
		resume.Template = req.Template
	}
	resume.Content = req.Content
	resume.ATSScore = uc.scorer.Score(resume.Content).Score

	if resume.IsPublic {
		uc.refreshEmbedding(ctx, resume)
	}

	if err := uc.resumes.UpdateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}
	return resume, nil
}

// Get returns the resume only when it belongs to userID.
func (uc *ResumeUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*model.Resume, error) {
	resume, err := uc.resumes.FindResumeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resume.UserID != userID {
		return nil, ErrNotFound
	}
	return resume, nil
}

func (uc *ResumeUsecase) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Resume, response.Pagination, error) {
	page, pageSize = response.NormalizePage(page, pageSize)
	resumes, total, err := uc.resumes.ListResumesByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, response.Pagination{}, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, response.NewPagination(page, pageSize, total, len(resumes)), nil
}

func (uc *ResumeUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return uc.resumes.DeleteResume(ctx, userID, id)
}

// Analyze rescores the stored resume and returns the full report with issues.
func (uc *ResumeUsecase) Analyze(ctx context.Context, userID, id uuid.UUID) (*ats.Result, error) {
	resume, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	result := uc.scorer.Score(resume.Content)
	return &result, nil
}

// Publish makes the resume searchable by recruiters.
func (uc *ResumeUsecase) Publish(ctx context.Context, userID, id uuid.UUID) (*model.Resume, error) {
	resume, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	vec, err := uc.embed(ctx, embeddingText(resume))
	if err != nil {
		return nil, err
	}
	resume.Embedding = &vec
	resume.IsPublic = true

	if err := uc.resumes.UpdateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("publish resume: %w", err)
	}
	return resume, nil
}

func (uc *ResumeUsecase) Unpublish(ctx context.Context, userID, id uuid.UUID) (*model.Resume, error) {
	resume, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resume.IsPublic = false
	resume.Embedding = nil
	if err := uc.resumes.UpdateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("unpublish resume: %w", err)
	}
	return resume, nil
}

// SearchCandidates ranks published resumes by semantic similarity to query.
func (uc *ResumeUsecase) SearchCandidates(ctx context.Context, query string, limit int) ([]model.Resume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSearchSize
	}
	limit = min(limit, maxSearchResults)

	vec, err := uc.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	resumes, err := uc.resumes.SearchPublicResumes(ctx, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("search resumes: %w", err)
	}
	return resumes, nil
}

func (uc *ResumeUsecase) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if uc.embedder == nil {
		return pgvector.Vector{}, fmt.Errorf("embeddings are not configured")
	}
	emb, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("generate embedding: %w", err)
	}
	return pgvector.NewVector(emb), nil
}

// refreshEmbedding keeps a published resume searchable after edits. A failure keeps the old vector.
func (uc *ResumeUsecase) refreshEmbedding(ctx context.Context, resume *model.Resume) {
	vec, err := uc.embed(ctx, embeddingText(resume))
	if err != nil {
		log.Printf("resume %s: keeping previous embedding: %v", resume.ID, err)
		return
	}
	resume.Embedding = &vec
}

func embeddingText(r *model.Resume) string {
	return strings.ToLower(r.Title) + "\n" + ats.Text(r.Content)
}
