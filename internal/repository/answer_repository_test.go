package repository

import (
	"chaos_backend/internal/model"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Answer{}))
	return db
}

func TestAnswerPairUniquenessIsEnforced(t *testing.T) {
	repo := NewAnswerRepository(newSQLiteDB(t))

	require.NoError(t, repo.Create(&model.Answer{
		ApplicationID: 42,
		QuestionID:    10,
		AnswerType:    model.ShortAnswer,
		AnswerData:    json.RawMessage(`"Hello"`),
	}))

	err := repo.Create(&model.Answer{
		ApplicationID: 42,
		QuestionID:    10,
		AnswerType:    model.ShortAnswer,
		AnswerData:    json.RawMessage(`"Again"`),
	})
	assert.Error(t, err)
}

func TestDeleteFreesPairForReanswering(t *testing.T) {
	repo := NewAnswerRepository(newSQLiteDB(t))

	first := &model.Answer{
		ApplicationID: 42,
		QuestionID:    10,
		AnswerType:    model.ShortAnswer,
		AnswerData:    json.RawMessage(`"Hello"`),
	}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Delete(first.ID))

	_, err := repo.FindByApplicationAndQuestion(42, 10)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The cleared pair must be answerable again; a lingering soft-deleted
	// row would still hold the unique index.
	second := &model.Answer{
		ApplicationID: 42,
		QuestionID:    10,
		AnswerType:    model.ShortAnswer,
		AnswerData:    json.RawMessage(`"Hi again"`),
	}
	require.NoError(t, repo.Create(second))
	assert.NotEqual(t, first.ID, second.ID)
}
