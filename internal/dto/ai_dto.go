package dto

import (
	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/model"
)

// ResumeSource identifies the resume an AI request works on: a stored resume or inline content.
type ResumeSource struct {
	ResumeID *uuid.UUID           `json:"resume_id,omitempty"`
	Content  *model.ResumeContent `json:"content,omitempty"`
}

type SummaryRequest struct {
	ResumeSource
	TargetRole string `json:"target_role"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type EnhanceRequest struct {
	Experience model.Experience `json:"experience"`
	TargetRole string           `json:"target_role"`
}

type EnhanceResponse struct {
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

type JobMatchRequest struct {
	ResumeSource
	JobDescription string `json:"job_description"`
}

type JobMatchResponse struct {
	MatchScore      int      `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
}
