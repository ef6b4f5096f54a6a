package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnswerService(db *gorm.DB) *AnswerService {
	campaignRepo := repository.NewCampaignRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	campaigns := NewCampaignService(campaignRepo, roleRepo, repository.NewOrganisationRepository(db), nil)
	applications := NewApplicationService(repository.NewApplicationRepository(db), campaignRepo, roleRepo, campaigns)
	return NewAnswerService(
		repository.NewAnswerRepository(db),
		repository.NewQuestionRepository(db, nil),
		applications,
	)
}

func seedShortAnswerQuestion(t *testing.T, db *gorm.DB, campaignID uint) *model.Question {
	t.Helper()
	question := &model.Question{
		CampaignID: campaignID,
		Type:       model.ShortAnswer,
		Title:      "Why do you want to join?",
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func TestCreateUpdatesExistingRowForSamePair(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)

	campaign := seedCampaign(t, db, 1, "Subcommittee Recruitment")
	question := seedShortAnswerQuestion(t, db, campaign.ID)
	app := seedApplication(t, db, campaign.ID, 7)

	first, err := svc.Create(app.ID, 7, AnswerRequest{
		QuestionID: question.ID,
		AnswerType: model.ShortAnswer,
		AnswerData: json.RawMessage(`"Hello"`),
	})
	require.NoError(t, err)

	second, err := svc.Create(app.ID, 7, AnswerRequest{
		QuestionID: question.ID,
		AnswerType: model.ShortAnswer,
		AnswerData: json.RawMessage(`"Revised"`),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.JSONEq(t, `"Revised"`, string(second.AnswerData))

	var count int64
	require.NoError(t, db.Model(&model.Answer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestClearedQuestionCanBeAnsweredAgain(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)

	campaign := seedCampaign(t, db, 1, "Director Recruitment")
	question := seedShortAnswerQuestion(t, db, campaign.ID)
	app := seedApplication(t, db, campaign.ID, 7)

	answer, err := svc.Create(app.ID, 7, AnswerRequest{
		QuestionID: question.ID,
		AnswerType: model.ShortAnswer,
		AnswerData: json.RawMessage(`"Hello"`),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(answer.ID, 7))

	again, err := svc.Create(app.ID, 7, AnswerRequest{
		QuestionID: question.ID,
		AnswerType: model.ShortAnswer,
		AnswerData: json.RawMessage(`"Second thoughts"`),
	})
	require.NoError(t, err)
	assert.NotEqual(t, answer.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.Answer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnswersAreOwnedByTheApplicant(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)

	campaign := seedCampaign(t, db, 1, "Exec Recruitment")
	question := seedShortAnswerQuestion(t, db, campaign.ID)
	app := seedApplication(t, db, campaign.ID, 7)

	_, err := svc.Create(app.ID, 99, AnswerRequest{
		QuestionID: question.ID,
		AnswerType: model.ShortAnswer,
		AnswerData: json.RawMessage(`"Not mine"`),
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
