package apiclient

import (
	"chaos_backend/internal/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeJSON(code int, data interface{}) []byte {
	raw, _ := json.Marshal(map[string]interface{}{
		"code":    code,
		"message": "success",
		"data":    data,
	})
	return raw
}

func TestCreateOrGetApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/campaigns/3/applications", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(envelopeJSON(200, model.Application{
			BaseModel:  model.BaseModel{ID: 42},
			CampaignID: 3,
			Status:     model.ApplicationPending,
		}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	id, err := c.CreateOrGetApplication(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestGetRoleQuestions(t *testing.T) {
	roleID := uint(5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/campaigns/3/roles/5/questions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write(envelopeJSON(200, []model.Question{
			{BaseModel: model.BaseModel{ID: 20}, CampaignID: 3, RoleID: &roleID, Type: model.DropDown},
		}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	questions, err := c.GetRoleQuestions(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, uint(20), questions[0].ID)
}

func TestCreateAnswerSendsTypedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/applications/42/answers", r.URL.Path)

		var body struct {
			QuestionID uint            `json:"questionId"`
			AnswerType string          `json:"answer_type"`
			AnswerData json.RawMessage `json:"answer_data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, uint(10), body.QuestionID)
		assert.Equal(t, "ShortAnswer", body.AnswerType)
		assert.JSONEq(t, `"Hello"`, string(body.AnswerData))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(envelopeJSON(201, model.Answer{
			BaseModel:     model.BaseModel{ID: 7},
			ApplicationID: 42,
			QuestionID:    10,
			AnswerType:    model.ShortAnswer,
			AnswerData:    json.RawMessage(`"Hello"`),
		}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	answer, err := c.CreateAnswer(context.Background(), 42, 10, model.ShortAnswer, []byte(`"Hello"`))
	require.NoError(t, err)
	assert.Equal(t, uint(7), answer.ID)
}

func TestUpdateApplicationRolesSendsFullSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/applications/42/roles", r.URL.Path)

		var body struct {
			Roles []struct {
				CampaignRoleID uint `json:"campaign_role_id"`
				Preference     int  `json:"preference"`
			} `json:"roles"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Roles, 2)
		assert.Equal(t, uint(5), body.Roles[0].CampaignRoleID)
		assert.Equal(t, 1, body.Roles[0].Preference)
		assert.Equal(t, uint(8), body.Roles[1].CampaignRoleID)
		assert.Equal(t, 2, body.Roles[1].Preference)

		w.Header().Set("Content-Type", "application/json")
		w.Write(envelopeJSON(200, nil))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	err := c.UpdateApplicationRoles(context.Background(), 42, []model.ApplicationRole{
		{ApplicationID: 42, CampaignRoleID: 5, Preference: 1},
		{ApplicationID: 42, CampaignRoleID: 8, Preference: 2},
	})
	require.NoError(t, err)
}

func TestFailedRequestIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":500,"message":"internal error"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	_, err := c.CreateAnswer(context.Background(), 42, 10, model.ShortAnswer, []byte(`"Hello"`))
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"message":"campaign is not open"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateOrGetApplication(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign is not open")
}
