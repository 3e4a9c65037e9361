package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/ats"
	"github.com/resumify/resumify-api/internal/model"
)

// ResumeRequest is the writable part of a resume. The ATS score is always derived server side.
type ResumeRequest struct {
	Title    string              `json:"title" validate:"max=200"`
	Template string              `json:"template" validate:"max=50"`
	Content  model.ResumeContent `json:"content"`
}

type ResumeDTO struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Template  string              `json:"template"`
	Content   model.ResumeContent `json:"content"`
	ATSScore  int                 `json:"ats_score"`
	IsPublic  bool                `json:"is_public"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewResumeDTO(r *model.Resume) ResumeDTO {
	return ResumeDTO{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		Content:   r.Content,
		ATSScore:  r.ATSScore,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type ATSReportDTO struct {
	ResumeID uuid.UUID `json:"resume_id"`
	ats.Result
}

// CandidateDTO is what a recruiter sees of a published resume.
type CandidateDTO struct {
	ResumeID uuid.UUID     `json:"resume_id"`
	Title    string        `json:"title"`
	FullName string        `json:"full_name"`
	Location string        `json:"location,omitempty"`
	Summary  string        `json:"summary,omitempty"`
	Skills   []model.Skill `json:"skills"`
	ATSScore int           `json:"ats_score"`
}

func NewCandidateDTO(r *model.Resume) CandidateDTO {
	skills := r.Content.Skills
	if skills == nil {
		skills = []model.Skill{}
	}
	return CandidateDTO{
		ResumeID: r.ID,
		Title:    r.Title,
		FullName: r.Content.PersonalInfo.FullName,
		Location: r.Content.PersonalInfo.Location,
		Summary:  r.Content.PersonalInfo.Summary,
		Skills:   skills,
		ATSScore: r.ATSScore,
	}
}
