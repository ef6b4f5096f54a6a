package repository

import (
	"chaos_backend/internal/model"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRoleQuestionCacheRoundTrip(t *testing.T) {
	repo := &QuestionRepository{RDB: newTestRedis(t)}

	roleID := uint(5)
	questions := []model.Question{
		{
			BaseModel:  model.BaseModel{ID: 20},
			CampaignID: 1,
			RoleID:     &roleID,
			Type:       model.DropDown,
			Title:      "Can you attend weekly meetings?",
			Options: []model.QuestionOption{
				{BaseModel: model.BaseModel{ID: 1}, Text: "Yes"},
				{BaseModel: model.BaseModel{ID: 2}, Text: "No"},
			},
		},
	}

	_, ok := repo.getCachedRoleQuestions(1, 5)
	assert.False(t, ok)

	repo.cacheRoleQuestions(1, 5, questions)

	got, ok := repo.getCachedRoleQuestions(1, 5)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, uint(20), got[0].ID)
	assert.Len(t, got[0].Options, 2)

	// A different role's key stays cold.
	_, ok = repo.getCachedRoleQuestions(1, 6)
	assert.False(t, ok)
}

func TestRoleQuestionCacheInvalidation(t *testing.T) {
	repo := &QuestionRepository{RDB: newTestRedis(t)}

	roleID := uint(5)
	question := &model.Question{
		BaseModel:  model.BaseModel{ID: 20},
		CampaignID: 1,
		RoleID:     &roleID,
	}

	repo.cacheRoleQuestions(1, 5, []model.Question{*question})
	repo.invalidate(question)

	_, ok := repo.getCachedRoleQuestions(1, 5)
	assert.False(t, ok)
}

func TestCommonQuestionDoesNotTouchRoleCache(t *testing.T) {
	repo := &QuestionRepository{RDB: newTestRedis(t)}

	repo.cacheRoleQuestions(1, 5, []model.Question{{BaseModel: model.BaseModel{ID: 20}}})

	// Invalidating a common question (no role) leaves role caches alone.
	repo.invalidate(&model.Question{BaseModel: model.BaseModel{ID: 30}, CampaignID: 1})

	_, ok := repo.getCachedRoleQuestions(1, 5)
	assert.True(t, ok)
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
	repo := &QuestionRepository{}

	repo.cacheRoleQuestions(1, 5, []model.Question{{BaseModel: model.BaseModel{ID: 20}}})
	_, ok := repo.getCachedRoleQuestions(1, 5)
	assert.False(t, ok)
}
