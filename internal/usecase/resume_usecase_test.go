package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/ats"
	"github.com/resumify/resumify-api/internal/dto"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResumeUsecase() (*ResumeUsecase, *fakeResumeStore, *fakeEmbedder) {
	store := newFakeResumeStore()
	emb := &fakeEmbedder{}
	return NewResumeUsecase(store, ats.NewScorer(ats.DefaultDictionary()), emb), store, emb
}

func TestResumeCreate_ScoresContent(t *testing.T) {
	uc, store, _ := newResumeUsecase()
	userID := uuid.New()

	r, err := uc.Create(context.Background(), userID, dto.ResumeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 50, r.ATSScore)
	assert.Equal(t, "Untitled resume", r.Title)
	assert.Equal(t, "classic", r.Template)
	assert.Equal(t, 50, store.resumes[r.ID].ATSScore)
}

func TestResumeUpdate_RecomputesScore(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	userID := uuid.New()
	r, err := uc.Create(context.Background(), userID, dto.ResumeRequest{Title: "Backend"})
	require.NoError(t, err)

	content := model.ResumeContent{
		PersonalInfo: model.PersonalInfo{FullName: "Ada"},
		Education:    []model.Education{{Institution: "MIT"}},
	}
	updated, err := uc.Update(context.Background(), userID, r.ID, dto.ResumeRequest{Content: content})
	require.NoError(t, err)

	want := ats.NewScorer(ats.DefaultDictionary()).Score(content).Score
	assert.Equal(t, want, updated.ATSScore)
	assert.Equal(t, 65, updated.ATSScore)
	assert.Equal(t, "Backend", updated.Title)
}

func TestResumeGet_OtherUserIsNotFound(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	r, err := uc.Create(context.Background(), uuid.New(), dto.ResumeRequest{})
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), uuid.New(), r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Update(context.Background(), uuid.New(), r.ID, dto.ResumeRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), uuid.New(), r.ID), ErrNotFound)
}

func TestResumeList_Paginates(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	userID := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := uc.Create(context.Background(), userID, dto.ResumeRequest{})
		require.NoError(t, err)
	}

	items, page, err := uc.List(context.Background(), userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.False(t, page.HasMore)
}

func TestResumeAnalyze(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	userID := uuid.New()
	r, err := uc.Create(context.Background(), userID, dto.ResumeRequest{})
	require.NoError(t, err)

	res, err := uc.Analyze(context.Background(), userID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.Len(t, res.Issues, 3)
}

func TestResumePublishAndSearch(t *testing.T) {
	uc, store, emb := newResumeUsecase()
	userID := uuid.New()
	r, err := uc.Create(context.Background(), userID, dto.ResumeRequest{
		Content: model.ResumeContent{Skills: []model.Skill{{Name: "Go"}}},
	})
	require.NoError(t, err)

	published, err := uc.Publish(context.Background(), userID, r.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublic)
	require.NotNil(t, store.resumes[r.ID].Embedding)

	found, err := uc.SearchCandidates(context.Background(), "go engineer", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, store.searchVec.Slice())

	_, err = uc.Update(context.Background(), userID, r.ID, dto.ResumeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, emb.calls)

	unpublished, err := uc.Unpublish(context.Background(), userID, r.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublic)
	assert.Nil(t, store.resumes[r.ID].Embedding)
}

func TestResumeUpdate_EmbeddingFailureKeepsSave(t *testing.T) {
	uc, store, emb := newResumeUsecase()
	userID := uuid.New()
	r, err := uc.Create(context.Background(), userID, dto.ResumeRequest{})
	require.NoError(t, err)
	_, err = uc.Publish(context.Background(), userID, r.ID)
	require.NoError(t, err)

	emb.err = errBoom
	_, err = uc.Update(context.Background(), userID, r.ID, dto.ResumeRequest{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", store.resumes[r.ID].Title)
	assert.NotNil(t, store.resumes[r.ID].Embedding)
}

func TestSearchCandidates_RequiresQuery(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	_, err := uc.SearchCandidates(context.Background(), "  ", 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_RejectsOversizedTitle(t *testing.T) {
	uc, _, _ := newResumeUsecase()

	_, err := uc.Create(context.Background(), uuid.New(), dto.ResumeRequest{Title: strings.Repeat("x", 201)})
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors, "title")
}
