package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/resumify/resumify-api/internal/model"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*model.User{}}
}

func (s *fakeUserStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) FindUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type fakeResumeStore struct {
	resumes   map[uuid.UUID]*model.Resume
	searchVec pgvector.Vector
	updates   int
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{resumes: map[uuid.UUID]*model.Resume{}}
}

func (s *fakeResumeStore) CreateResume(_ context.Context, r *model.Resume) error {
	r.ID = uuid.New()
	cp := *r
	s.resumes[r.ID] = &cp
	return nil
}

func (s *fakeResumeStore) UpdateResume(_ context.Context, r *model.Resume) error {
	s.updates++
	cp := *r
	s.resumes[r.ID] = &cp
	return nil
}

func (s *fakeResumeStore) DeleteResume(_ context.Context, userID, id uuid.UUID) error {
	r, ok := s.resumes[id]
	if !ok || r.UserID != userID {
		return ErrNotFound
	}
	delete(s.resumes, id)
	return nil
}

func (s *fakeResumeStore) FindResumeByID(_ context.Context, id uuid.UUID) (*model.Resume, error) {
	r, ok := s.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeResumeStore) ListResumesByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Resume, int64, error) {
	var all []model.Resume
	for _, r := range s.resumes {
		if r.UserID == userID {
			all = append(all, *r)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Resume{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (s *fakeResumeStore) SearchPublicResumes(_ context.Context, vec pgvector.Vector, topK int) ([]model.Resume, error) {
	s.searchVec = vec
	var out []model.Resume
	for _, r := range s.resumes {
		if r.IsPublic && len(out) < topK {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (e *fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

var errBoom = errors.New("boom")
