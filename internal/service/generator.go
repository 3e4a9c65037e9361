package service

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a dense vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

var ErrNoProvider = errors.New("no text generation provider configured")

// FallbackGenerator asks each provider in turn and returns the first successful answer.
type FallbackGenerator struct {
	providers []TextGenerator
}

func NewFallbackGenerator(providers ...TextGenerator) *FallbackGenerator {
	var ps []TextGenerator
	for _, p := range providers {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return &FallbackGenerator{providers: ps}
}

func (f *FallbackGenerator) Name() string {
	return "fallback"
}

func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(f.providers) == 0 {
		return "", ErrNoProvider
	}

	var errs []error
	for _, p := range f.providers {
		text, err := p.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		log.Printf("Provider %s failed: %v", p.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}
