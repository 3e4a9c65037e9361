package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resumify/resumify-api/internal/auth"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/util"
)

type AuthUsecase struct {
	users  UserStore
	tokens *auth.TokenService
	Now    func() time.Time
}

func NewAuthUsecase(users UserStore, tokens *auth.TokenService) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, Now: time.Now}
}

func (uc *AuthUsecase) Signup(ctx context.Context, req dto.SignupRequest) (*model.User, string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateStruct("invalid signup data", req); err != nil {
		return nil, "", err
	}

	_, err := uc.users.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, "", ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	now := uc.Now()
	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Plan:         model.PlanFree,
		Usage:        model.Usage{Count: 0, LastResetMonth: model.MonthIndex(now)},
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := uc.tokens.GenerateToken(user.ID, now)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.users.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID, uc.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
