package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/model"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &u, err
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &u, err
}

// ResetUsage zeroes the monthly counter. Rows already stamped with month are left alone,
// so a concurrent increment made after another request's rollover is not wiped.
func (r *UserRepository) ResetUsage(ctx context.Context, userID uuid.UUID, month int) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND usage_last_reset_month <> ?", userID, month).
		Updates(map[string]any{
			"usage_count":            0,
			"usage_last_reset_month": month,
		}).Error
}

// IncrementUsage adds one to the counter in a single UPDATE.
func (r *UserRepository) IncrementUsage(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
