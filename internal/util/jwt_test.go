package util

import (
	"chaos_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789-0123456789"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "alex@example.org",
		IsAdmin:   true,
	}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alex@example.org", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "alex@example.org"}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "some-other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "alex@example.org"}

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
