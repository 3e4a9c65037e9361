package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/resumify/resumify-api/internal/ats"
	"github.com/resumify/resumify-api/internal/auth"
	"github.com/resumify/resumify-api/internal/middleware"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/repository"
	"github.com/resumify/resumify-api/internal/service"
	"github.com/resumify/resumify-api/internal/usage"
	"github.com/resumify/resumify-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*model.User
	resumes map[uuid.UUID]*model.Resume
}

func newMemDB() *memDB {
	return &memDB{users: map[uuid.UUID]*model.User{}, resumes: map[uuid.UUID]*model.Resume{}}
}

func (m *memDB) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.New()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memDB) FindUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memDB) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memDB) ResetUsage(_ context.Context, id uuid.UUID, month int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Usage = model.Usage{LastResetMonth: month}
	return nil
}

func (m *memDB) IncrementUsage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Usage.Count++
	return nil
}

func (m *memDB) CreateResume(_ context.Context, r *model.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.New()
	cp := *r
	m.resumes[r.ID] = &cp
	return nil
}

func (m *memDB) UpdateResume(_ context.Context, r *model.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.resumes[r.ID] = &cp
	return nil
}

func (m *memDB) DeleteResume(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

func (m *memDB) FindResumeByID(_ context.Context, id uuid.UUID) (*model.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memDB) ListResumesByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Resume, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Resume
	for _, r := range m.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memDB) SearchPublicResumes(_ context.Context, _ pgvector.Vector, topK int) ([]model.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Resume
	for _, r := range m.resumes {
		if r.IsPublic && len(out) < topK {
			out = append(out, *r)
		}
	}
	return out, nil
}

type stubAI struct {
	text string
	err  error
}

func (s *stubAI) Name() string { return "stub" }

func (s *stubAI) Generate(context.Context, string) (string, error) { return s.text, s.err }

func (s *stubAI) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, s.err
}

type testServer struct {
	app    *fiber.App
	db     *memDB
	ai     *stubAI
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, freeLimit int) *testServer {
	t.Helper()
	ts := &testServer{db: newMemDB(), ai: &stubAI{}, tokens: auth.NewTokenService("handler-secret", time.Hour)}

	gate := usage.NewGate(ts.db, freeLimit)
	resumeUC := usecase.NewResumeUsecase(ts.db, ats.NewScorer(ats.DefaultDictionary()), ts.ai)
	aiUC := usecase.NewAIUsecase(service.NewFallbackGenerator(ts.ai))
	authHandler := NewAuthHandler(usecase.NewAuthUsecase(ts.db, ts.tokens), gate)

	ts.app = fiber.New()
	api := ts.app.Group("/api")
	authHandler.RegisterPublicRoutes(api)
	private := api.Group("", middleware.Auth(ts.tokens), middleware.LoadUser(ts.db))
	metered := middleware.UsageGate(gate, time.Now)
	authHandler.RegisterRoutes(private)
	NewResumeHandler(resumeUC).RegisterRoutes(private)
	NewAIHandler(aiUC, resumeUC, t.TempDir()).RegisterRoutes(private, metered)
	NewRecruiterHandler(resumeUC).RegisterRoutes(private, middleware.RequirePlan(model.PlanB2B), metered)
	return ts
}

func (ts *testServer) signup(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	status, body := ts.call(t, "POST", "/api/auth/signup", "", map[string]string{
		"name": "Test User", "email": email, "password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return uuid.MustParse(user["id"].(string)), data["token"].(string)
}

func (ts *testServer) call(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestSignupLoginAndUsage(t *testing.T) {
	ts := newTestServer(t, 100)
	_, token := ts.signup(t, "ada@example.com")

	status, body := ts.call(t, "POST", "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["data"].(map[string]any)["token"])

	status, _ = ts.call(t, "POST", "/api/auth/signup", "", map[string]string{
		"name": "Again", "email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = ts.call(t, "GET", "/api/usage", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	quota := body["data"].(map[string]any)
	assert.Equal(t, "free", quota["plan"])
	assert.Equal(t, float64(100), quota["remaining"])
}

func TestCreateResume_IgnoresClientScore(t *testing.T) {
	ts := newTestServer(t, 100)
	_, token := ts.signup(t, "ada@example.com")

	status, body := ts.call(t, "POST", "/api/resumes", token, map[string]any{
		"title":     "Empty",
		"ats_score": 99,
		"content":   map[string]any{},
	})
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(50), data["ats_score"])

	status, body = ts.call(t, "GET", "/api/resumes/"+data["id"].(string)+"/ats", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	report := body["data"].(map[string]any)
	assert.Equal(t, float64(50), report["score"])
	assert.Len(t, report["issues"], 3)
}

func TestResumeRoutes_Errors(t *testing.T) {
	ts := newTestServer(t, 100)
	_, token := ts.signup(t, "ada@example.com")
	_, other := ts.signup(t, "eve@example.com")

	status, _ := ts.call(t, "GET", "/api/resumes/not-a-uuid", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	_, body := ts.call(t, "POST", "/api/resumes", token, map[string]any{"title": "Mine"})
	id := body["data"].(map[string]any)["id"].(string)

	status, _ = ts.call(t, "GET", "/api/resumes/"+id, other, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = ts.call(t, "GET", "/api/resumes", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAISummary_MeteredAndCounted(t *testing.T) {
	ts := newTestServer(t, 1)
	userID, token := ts.signup(t, "ada@example.com")
	ts.ai.text = "Seasoned engineer."

	payload := map[string]any{"content": map[string]any{"personalInfo": map[string]any{"fullName": "Ada"}}}
	status, body := ts.call(t, "POST", "/api/ai/summary", token, payload)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Seasoned engineer.", body["data"].(map[string]any)["summary"])
	assert.Equal(t, 1, ts.db.users[userID].Usage.Count)

	status, body = ts.call(t, "POST", "/api/ai/summary", token, payload)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, true, body["details"].(map[string]any)["limit_reached"])
	assert.Equal(t, 1, ts.db.users[userID].Usage.Count)
}

func TestAISummary_ProviderFailureNotCounted(t *testing.T) {
	ts := newTestServer(t, 5)
	userID, token := ts.signup(t, "ada@example.com")
	ts.ai.err = assert.AnError

	status, _ := ts.call(t, "POST", "/api/ai/summary", token, map[string]any{"content": map[string]any{}})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, 0, ts.db.users[userID].Usage.Count)

	status, _ = ts.call(t, "POST", "/api/ai/summary", token, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, 0, ts.db.users[userID].Usage.Count)
}

func TestRecruiterSearch_RequiresB2B(t *testing.T) {
	ts := newTestServer(t, 5)
	userID, token := ts.signup(t, "recruiter@example.com")

	status, _ := ts.call(t, "GET", "/api/recruiter/search?q=go", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	ts.db.users[userID].Plan = model.PlanB2B
	_, body := ts.call(t, "POST", "/api/resumes", token, map[string]any{"title": "Public"})
	id := body["data"].(map[string]any)["id"].(string)
	status, _ = ts.call(t, "POST", "/api/resumes/"+id+"/publish", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, body = ts.call(t, "GET", "/api/recruiter/search?q=go", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestSignup_PasswordTooLongIsFormError(t *testing.T) {
	ts := newTestServer(t, 100)

	status, body := ts.call(t, "POST", "/api/auth/signup", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": strings.Repeat("é", 40),
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["details"], "password")
}
