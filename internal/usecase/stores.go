package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/resumify/resumify-api/internal/model"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type ResumeStore interface {
	CreateResume(ctx context.Context, resume *model.Resume) error
	UpdateResume(ctx context.Context, resume *model.Resume) error
	DeleteResume(ctx context.Context, userID, id uuid.UUID) error
	FindResumeByID(ctx context.Context, id uuid.UUID) (*model.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Resume, int64, error)
	SearchPublicResumes(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Resume, error)
}
