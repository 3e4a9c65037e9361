package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/resumify/resumify-api/internal/model"
	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) CreateResume(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *ResumeRepository) UpdateResume(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Save(resume).Error
}

func (r *ResumeRepository) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) FindResumeByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).First(&resume, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &resume, err
}

func (r *ResumeRepository) ListResumesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Resume, int64, error) {
	var (
		resumes []model.Resume
		total   int64
	)
	q := r.db.WithContext(ctx).Model(&model.Resume{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&resumes).Error
	return resumes, total, err
}

// SearchPublicResumes returns the published resumes closest to embedding.
func (r *ResumeRepository) SearchPublicResumes(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Resume, error) {
	var resumes []model.Resume

	err := r.db.WithContext(ctx).Raw(`
        SELECT *
        FROM resumes
        WHERE is_public = TRUE AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, topK).Scan(&resumes).Error

	return resumes, err
}
