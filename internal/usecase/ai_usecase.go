package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/service"
	"github.com/resumify/resumify-api/internal/util"
	"github.com/tidwall/gjson"
)

const maxImportChars = 20000

type AIUsecase struct {
	generator  service.TextGenerator
	ExtractPDF func(path string) (string, error)
}

func NewAIUsecase(generator service.TextGenerator) *AIUsecase {
	return &AIUsecase{generator: generator, ExtractPDF: util.ExtractPDFText}
}

func (uc *AIUsecase) GenerateSummary(ctx context.Context, content model.ResumeContent, targetRole string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, orDefault(targetRole, "not specified"), mustJSON(content))
	text, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	summary := strings.Trim(strings.TrimSpace(text), `"`)
	if summary == "" {
		return "", ErrModelOutput
	}
	return summary, nil
}

func (uc *AIUsecase) EnhanceExperience(ctx context.Context, exp model.Experience, targetRole string) (*dto.EnhanceResponse, error) {
	if strings.TrimSpace(exp.Title) == "" && strings.TrimSpace(exp.Description) == "" && len(exp.Highlights) == 0 {
		return nil, fmt.Errorf("%w: experience is empty", ErrInvalidInput)
	}

	prompt := fmt.Sprintf(enhancePrompt, orDefault(targetRole, exp.Title), mustJSON(exp))
	raw, err := uc.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out := &dto.EnhanceResponse{
		Description: gjson.Get(raw, "description").String(),
		Highlights:  stringArray(gjson.Get(raw, "highlights")),
	}
	if out.Description == "" && len(out.Highlights) == 0 {
		return nil, ErrModelOutput
	}
	return out, nil
}

func (uc *AIUsecase) AnalyzeJobMatch(ctx context.Context, content model.ResumeContent, jobDescription string) (*dto.JobMatchResponse, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}

	prompt := fmt.Sprintf(jobMatchPrompt, jobDescription, mustJSON(content))
	raw, err := uc.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	score := gjson.Get(raw, "match_score")
	if !score.Exists() {
		return nil, ErrModelOutput
	}
	return &dto.JobMatchResponse{
		MatchScore:      int(min(max(score.Int(), 0), 100)),
		MatchedKeywords: stringArray(gjson.Get(raw, "matched_keywords")),
		MissingKeywords: stringArray(gjson.Get(raw, "missing_keywords")),
		Suggestions:     stringArray(gjson.Get(raw, "suggestions")),
	}, nil
}

// ImportPDF turns an uploaded resume file into structured content.
func (uc *AIUsecase) ImportPDF(ctx context.Context, path string) (*model.ResumeContent, error) {
	text, err := uc.ExtractPDF(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(text) > maxImportChars {
		log.Printf("Import text length %d exceeds limit, truncating", len(text))
		text = util.TruncateUTF8(text, maxImportChars)
	}

	raw, err := uc.generateJSON(ctx, fmt.Sprintf(importPrompt, text))
	if err != nil {
		return nil, err
	}

	if err := model.ValidateResumeJSON(raw); err != nil {
		log.Printf("Import: %v", err)
		return nil, ErrModelOutput
	}
	var content model.ResumeContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		log.Printf("Import: unmarshal model output: %v", err)
		return nil, ErrModelOutput
	}
	return &content, nil
}

func (uc *AIUsecase) generateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	raw, err := util.ExtractJSON(text)
	if err != nil {
		log.Printf("Model output without JSON: %q", truncate(text, 200))
		return "", ErrModelOutput
	}
	return raw, nil
}

func stringArray(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return util.TruncateUTF8(s, n) + "..."
}
