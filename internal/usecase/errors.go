package usecase

import (
	"errors"

	"github.com/resumify/resumify-api/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrModelOutput        = errors.New("could not understand AI response")
)
