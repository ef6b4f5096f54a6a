package reconcile

import (
	"chaos_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetCampaign(ctx context.Context, campaignID uint) (*model.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *mockAPI) GetCampaignRoles(ctx context.Context, campaignID uint) ([]model.CampaignRole, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CampaignRole), args.Error(1)
}

func (m *mockAPI) GetCommonQuestions(ctx context.Context, campaignID uint) ([]model.Question, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *mockAPI) GetRoleQuestions(ctx context.Context, campaignID, roleID uint) ([]model.Question, error) {
	args := m.Called(ctx, campaignID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *mockAPI) CreateOrGetApplication(ctx context.Context, campaignID uint) (uint, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockAPI) GetCommonApplicationAnswers(ctx context.Context, applicationID uint) ([]model.Answer, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *mockAPI) GetApplicationAnswers(ctx context.Context, applicationID, roleID uint) ([]model.Answer, error) {
	args := m.Called(ctx, applicationID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *mockAPI) CreateAnswer(ctx context.Context, applicationID, questionID uint, answerType model.QuestionType, data []byte) (*model.Answer, error) {
	args := m.Called(ctx, applicationID, questionID, answerType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

func (m *mockAPI) UpdateAnswer(ctx context.Context, answerID, questionID uint, answerType model.QuestionType, data []byte) error {
	args := m.Called(ctx, answerID, questionID, answerType, data)
	return args.Error(0)
}

func (m *mockAPI) DeleteAnswer(ctx context.Context, answerID uint) error {
	args := m.Called(ctx, answerID)
	return args.Error(0)
}

func (m *mockAPI) GetApplicationRoles(ctx context.Context, applicationID uint) ([]model.ApplicationRole, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationRole), args.Error(1)
}

func (m *mockAPI) UpdateApplicationRoles(ctx context.Context, applicationID uint, roles []model.ApplicationRole) error {
	args := m.Called(ctx, applicationID, roles)
	return args.Error(0)
}

const (
	testCampaignID    = uint(1)
	testApplicationID = uint(42)
)

func shortQuestion(id uint) model.Question {
	return model.Question{
		BaseModel:  model.BaseModel{ID: id},
		CampaignID: testCampaignID,
		Type:       model.ShortAnswer,
		Title:      "Tell us about yourself",
	}
}

func dropDownQuestion(id, roleID uint, optionIDs ...uint) model.Question {
	labels := []string{"Yes", "No", "Maybe"}
	q := model.Question{
		BaseModel:  model.BaseModel{ID: id},
		CampaignID: testCampaignID,
		RoleID:     &roleID,
		Type:       model.DropDown,
		Title:      "Can you attend weekly meetings?",
	}
	for i, optID := range optionIDs {
		q.Options = append(q.Options, model.QuestionOption{
			BaseModel: model.BaseModel{ID: optID},
			Text:      labels[i%len(labels)],
			Order:     i,
		})
	}
	return q
}

func mustMarshal(t *testing.T, v Value) []byte {
	t.Helper()
	data, err := v.MarshalData()
	require.NoError(t, err)
	return data
}

// startSession boots a session with one common question and no persisted
// answers or role selection.
func startSession(t *testing.T, api *mockAPI, common []model.Question) *Session {
	t.Helper()
	api.On("CreateOrGetApplication", mock.Anything, testCampaignID).Return(testApplicationID, nil)
	api.On("GetCommonQuestions", mock.Anything, testCampaignID).Return(common, nil)
	api.On("GetCommonApplicationAnswers", mock.Anything, testApplicationID).Return([]model.Answer{}, nil)
	api.On("GetApplicationRoles", mock.Anything, testApplicationID).Return([]model.ApplicationRole{}, nil)

	s := NewSession(api, nil, testCampaignID)
	require.NoError(t, s.Start(context.Background()))
	return s
}

func TestSubmitCreatesThenUpdates(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	first := TextValue("Hello")
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(10), model.ShortAnswer, mustMarshal(t, first)).
		Return(&model.Answer{
			BaseModel:     model.BaseModel{ID: 7},
			ApplicationID: testApplicationID,
			QuestionID:    10,
			AnswerType:    model.ShortAnswer,
			AnswerData:    json.RawMessage(mustMarshal(t, first)),
		}, nil).Once()

	require.NoError(t, s.SubmitAnswer(context.Background(), 10, first))

	// A second submit for the same question must update the existing row,
	// never create a duplicate.
	second := TextValue("Hello again")
	api.On("UpdateAnswer", mock.Anything, uint(7), uint(10), model.ShortAnswer, mustMarshal(t, second)).
		Return(nil).Once()

	require.NoError(t, s.SubmitAnswer(context.Background(), 10, second))

	got, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "Hello again", got.Text)
	assert.Equal(t, StatusCommitted, s.Status(10))
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "DeleteAnswer", mock.Anything, mock.Anything)
}

func TestEmptySubmitDeletesExistingAnswer(t *testing.T) {
	api := new(mockAPI)
	question := shortQuestion(10)

	api.On("CreateOrGetApplication", mock.Anything, testCampaignID).Return(testApplicationID, nil)
	api.On("GetCommonQuestions", mock.Anything, testCampaignID).Return([]model.Question{question}, nil)
	api.On("GetCommonApplicationAnswers", mock.Anything, testApplicationID).Return([]model.Answer{
		{
			BaseModel:     model.BaseModel{ID: 7},
			ApplicationID: testApplicationID,
			QuestionID:    10,
			AnswerType:    model.ShortAnswer,
			AnswerData:    json.RawMessage(`"previous visit"`),
		},
	}, nil)
	api.On("GetApplicationRoles", mock.Anything, testApplicationID).Return([]model.ApplicationRole{}, nil)

	s := NewSession(api, nil, testCampaignID)
	require.NoError(t, s.Start(context.Background()))

	// The persisted answer was restored.
	got, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "previous visit", got.Text)

	api.On("DeleteAnswer", mock.Anything, uint(7)).Return(nil).Once()
	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("   ")))

	_, ok = s.Answer(10)
	assert.False(t, ok)
	assert.Equal(t, NoAnswerText, s.FormatAnswerFor(10))
	api.AssertExpectations(t)
}

func TestEmptySubmitWithNothingPersistedIsNoop(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("")))

	assert.Equal(t, StatusCommitted, s.Status(10))
	api.AssertNotCalled(t, "DeleteAnswer", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "CreateAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFailedSubmitKeepsLocalValue(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	value := TextValue("Hello")
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(10), model.ShortAnswer, mock.Anything).
		Return(nil, errors.New("network down")).Once()

	err := s.SubmitAnswer(context.Background(), 10, value)
	require.Error(t, err)

	// The optimistic value stays; only the status records the failure.
	got, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "Hello", got.Text)
	assert.Equal(t, StatusFailed, s.Status(10))
	assert.Equal(t, []uint{10}, s.FailedQuestions())
}

func TestToggleRoleFetchesQuestionsOnce(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	roleQuestions := []model.Question{dropDownQuestion(20, 5, 1, 2)}
	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).Return(roleQuestions, nil).Once()
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, uint(5)).Return([]model.Answer{}, nil).Once()
	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, mock.Anything).Return(nil)

	s.ToggleRole(context.Background(), 5)
	s.Wait()

	questions, fetched := s.QuestionsForRole(5)
	require.True(t, fetched)
	assert.Len(t, questions, 1)

	// Off and on again: the cache is warm, no second fetch.
	s.ToggleRole(context.Background(), 5)
	s.ToggleRole(context.Background(), 5)
	s.Wait()

	assert.Equal(t, []uint{5}, s.SelectedRoles())
	api.AssertExpectations(t)
}

func TestTogglePushesPreferenceOrder(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, nil)

	api.On("GetRoleQuestions", mock.Anything, testCampaignID, mock.Anything).Return([]model.Question{}, nil)
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, mock.Anything).Return([]model.Answer{}, nil)

	// Selecting 5 then 8 makes 5 first preference and 8 second.
	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, []model.ApplicationRole{
		{ApplicationID: testApplicationID, CampaignRoleID: 5, Preference: 1},
	}).Return(nil).Once()
	s.ToggleRole(context.Background(), 5)

	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, []model.ApplicationRole{
		{ApplicationID: testApplicationID, CampaignRoleID: 5, Preference: 1},
		{ApplicationID: testApplicationID, CampaignRoleID: 8, Preference: 2},
	}).Return(nil).Once()
	s.ToggleRole(context.Background(), 8)

	// Deselecting 5 promotes 8 to first preference.
	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, []model.ApplicationRole{
		{ApplicationID: testApplicationID, CampaignRoleID: 8, Preference: 1},
	}).Return(nil).Once()
	s.ToggleRole(context.Background(), 5)

	s.Wait()
	api.AssertExpectations(t)
}

func TestStaleRoleFetchIsDiscarded(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, mock.Anything).Return(nil)

	release := make(chan struct{})
	roleQuestions := []model.Question{dropDownQuestion(20, 5, 1, 2)}
	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).
		Run(func(mock.Arguments) { <-release }).
		Return(roleQuestions, nil).Once()
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, uint(5)).
		Return([]model.Answer{}, nil).Maybe()

	// Select, then deselect while the fetch is still in flight.
	s.ToggleRole(context.Background(), 5)
	s.ToggleRole(context.Background(), 5)
	close(release)
	s.Wait()

	// The late response must not populate the cache for a deselected role.
	_, fetched := s.QuestionsForRole(5)
	assert.False(t, fetched)
	assert.Empty(t, s.SelectedRoles())

	// And it must not leak into the visible question list.
	for _, q := range s.ActiveQuestions() {
		assert.NotEqual(t, uint(20), q.ID)
	}
}

func TestReselectBeforeFirstFetchResolvesKeepsOnlyFreshData(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, mock.Anything).Return(nil)
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, uint(5)).
		Return([]model.Answer{}, nil)

	firstFetchStarted := make(chan struct{})
	release := make(chan struct{})
	stale := []model.Question{dropDownQuestion(99, 5, 1)}
	fresh := []model.Question{dropDownQuestion(20, 5, 1, 2)}

	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).
		Run(func(mock.Arguments) {
			close(firstFetchStarted)
			<-release
		}).
		Return(stale, nil).Once()
	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).
		Return(fresh, nil).Once()

	// On, off, on again while the first fetch is still in flight.
	s.ToggleRole(context.Background(), 5)
	<-firstFetchStarted
	s.ToggleRole(context.Background(), 5)
	s.ToggleRole(context.Background(), 5)
	close(release)
	s.Wait()

	// Only the second fetch, issued while the role was selected, may land.
	questions, fetched := s.QuestionsForRole(5)
	require.True(t, fetched)
	require.Len(t, questions, 1)
	assert.Equal(t, uint(20), questions[0].ID)
	api.AssertExpectations(t)
}

func TestDeselectKeepsAnswerCaches(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, mock.Anything).Return(nil)
	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).
		Return([]model.Question{dropDownQuestion(20, 5, 1, 2)}, nil).Once()
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, uint(5)).
		Return([]model.Answer{}, nil).Once()

	// Answer the common question.
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(10), model.ShortAnswer, mock.Anything).
		Return(&model.Answer{
			BaseModel:     model.BaseModel{ID: 7},
			ApplicationID: testApplicationID,
			QuestionID:    10,
			AnswerType:    model.ShortAnswer,
			AnswerData:    json.RawMessage(`"Hello"`),
		}, nil).Once()
	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("Hello")))

	s.ToggleRole(context.Background(), 5)
	s.Wait()
	s.ToggleRole(context.Background(), 5)
	s.Wait()

	// Deselecting the role hides its questions but common answers stay put.
	assert.Len(t, s.ActiveQuestions(), 1)
	assert.Contains(t, s.CommonAnswers(), uint(10))
	got, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "Hello", got.Text)
}

func TestApplicationFlow(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	// Answer the common question.
	helloData := mustMarshal(t, TextValue("Hello"))
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(10), model.ShortAnswer, helloData).
		Return(&model.Answer{
			BaseModel:     model.BaseModel{ID: 7},
			ApplicationID: testApplicationID,
			QuestionID:    10,
			AnswerType:    model.ShortAnswer,
			AnswerData:    json.RawMessage(helloData),
		}, nil).Once()
	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("Hello")))

	// Select a role and answer its drop-down.
	api.On("UpdateApplicationRoles", mock.Anything, testApplicationID, mock.Anything).Return(nil)
	api.On("GetRoleQuestions", mock.Anything, testCampaignID, uint(5)).
		Return([]model.Question{dropDownQuestion(20, 5, 1, 2)}, nil).Once()
	api.On("GetApplicationAnswers", mock.Anything, testApplicationID, uint(5)).
		Return([]model.Answer{}, nil).Once()
	s.ToggleRole(context.Background(), 5)
	s.Wait()

	choice := OptionValue(model.DropDown, 1)
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(20), model.DropDown, mustMarshal(t, choice)).
		Return(&model.Answer{
			BaseModel:     model.BaseModel{ID: 8},
			ApplicationID: testApplicationID,
			QuestionID:    20,
			AnswerType:    model.DropDown,
			AnswerData:    json.RawMessage(`1`),
		}, nil).Once()
	require.NoError(t, s.SubmitAnswer(context.Background(), 20, choice))

	assert.Equal(t, "Hello", s.FormatAnswerFor(10))
	assert.Equal(t, "Yes", s.FormatAnswerFor(20))

	// Clearing the common question deletes its row.
	api.On("DeleteAnswer", mock.Anything, uint(7)).Return(nil).Once()
	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("")))

	assert.Equal(t, NoAnswerText, s.FormatAnswerFor(10))
	assert.Equal(t, "Yes", s.FormatAnswerFor(20))
	api.AssertExpectations(t)
}

func TestCreateResponseWithoutBodyIsSynthesized(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	// Some deployments return an empty body on create; the session fills in
	// the row from what it sent.
	api.On("CreateAnswer", mock.Anything, testApplicationID, uint(10), model.ShortAnswer, mock.Anything).
		Return(nil, nil).Once()

	require.NoError(t, s.SubmitAnswer(context.Background(), 10, TextValue("Hello")))

	row, ok := s.CommonAnswers()[10]
	require.True(t, ok)
	assert.Equal(t, testApplicationID, row.ApplicationID)
	assert.Equal(t, uint(10), row.QuestionID)
	assert.Equal(t, model.ShortAnswer, row.AnswerType)
}

func TestUnknownQuestionIsRejected(t *testing.T) {
	api := new(mockAPI)
	s := startSession(t, api, []model.Question{shortQuestion(10)})

	err := s.SubmitAnswer(context.Background(), 99, TextValue("Hello"))
	assert.Error(t, err)
	api.AssertNotCalled(t, "CreateAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
