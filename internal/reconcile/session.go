package reconcile

import (
	"chaos_backend/internal/model"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// API is the backend contract the session drives. pkg/apiclient provides
// the HTTP implementation; tests substitute a mock.
type API interface {
	GetCampaign(ctx context.Context, campaignID uint) (*model.Campaign, error)
	GetCampaignRoles(ctx context.Context, campaignID uint) ([]model.CampaignRole, error)
	GetCommonQuestions(ctx context.Context, campaignID uint) ([]model.Question, error)
	GetRoleQuestions(ctx context.Context, campaignID, roleID uint) ([]model.Question, error)
	CreateOrGetApplication(ctx context.Context, campaignID uint) (uint, error)
	GetCommonApplicationAnswers(ctx context.Context, applicationID uint) ([]model.Answer, error)
	GetApplicationAnswers(ctx context.Context, applicationID, roleID uint) ([]model.Answer, error)
	CreateAnswer(ctx context.Context, applicationID, questionID uint, answerType model.QuestionType, data []byte) (*model.Answer, error)
	UpdateAnswer(ctx context.Context, answerID, questionID uint, answerType model.QuestionType, data []byte) error
	DeleteAnswer(ctx context.Context, answerID uint) error
	GetApplicationRoles(ctx context.Context, applicationID uint) ([]model.ApplicationRole, error)
	UpdateApplicationRoles(ctx context.Context, applicationID uint, roles []model.ApplicationRole) error
}

// SubmitStatus tracks the fate of each question's last submission, so the
// UI can surface entries whose optimistic value never reached the server.
type SubmitStatus int

const (
	StatusPending SubmitStatus = iota
	StatusCommitted
	StatusFailed
)

// Session keeps an applicant's in-memory answers consistent with persisted
// rows across role (de)selection and field edits. All state is owned here;
// the UI layer reads through accessors and never holds the source of truth.
//
// Role question fetches run asynchronously. A fetch only commits its result
// if the role is still selected and no later toggle superseded it, so a
// stale response arriving after deselection cannot repopulate the caches.
type Session struct {
	mu  sync.Mutex
	api API
	log *zap.Logger

	campaignID    uint
	applicationID uint

	selected   []uint // role ids in selection order; order is preference order
	fetchEpoch map[uint]int

	commonQuestions []model.Question
	questionsByRole map[uint][]model.Question // absent key = not yet fetched

	commonAnswers map[uint]model.Answer          // question id -> persisted row
	roleAnswers   map[uint]map[uint]model.Answer // role id -> question id -> row

	answers map[uint]Value // optimistic local values
	status  map[uint]SubmitStatus

	fetches sync.WaitGroup
}

func NewSession(api API, log *zap.Logger, campaignID uint) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		api:             api,
		log:             log,
		campaignID:      campaignID,
		fetchEpoch:      make(map[uint]int),
		questionsByRole: make(map[uint][]model.Question),
		commonAnswers:   make(map[uint]model.Answer),
		roleAnswers:     make(map[uint]map[uint]model.Answer),
		answers:         make(map[uint]Value),
		status:          make(map[uint]SubmitStatus),
	}
}

// Start gets or creates the application and loads the campaign's common
// questions with any answers persisted on an earlier visit.
func (s *Session) Start(ctx context.Context) error {
	appID, err := s.api.CreateOrGetApplication(ctx, s.campaignID)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	questions, err := s.api.GetCommonQuestions(ctx, s.campaignID)
	if err != nil {
		return fmt.Errorf("fetch common questions: %w", err)
	}

	answers, err := s.api.GetCommonApplicationAnswers(ctx, appID)
	if err != nil {
		return fmt.Errorf("fetch common answers: %w", err)
	}

	// Restore an earlier visit's role selection.
	selected, rolesErr := s.api.GetApplicationRoles(ctx, appID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicationID = appID
	s.commonQuestions = questions
	for _, row := range answers {
		s.commonAnswers[row.QuestionID] = row
		s.seedValueLocked(row)
	}

	if rolesErr != nil {
		s.log.Warn("could not restore role selection", zap.Error(rolesErr))
		return nil
	}
	for _, ar := range selected {
		s.selected = append(s.selected, ar.CampaignRoleID)
		s.spawnRoleFetchLocked(ctx, ar.CampaignRoleID)
	}
	return nil
}

func (s *Session) seedValueLocked(row model.Answer) {
	value, err := DecodeValue(row.AnswerType, row.AnswerData)
	if err != nil {
		s.log.Warn("skipping malformed persisted answer",
			zap.Uint("question_id", row.QuestionID), zap.Error(err))
		return
	}
	s.answers[row.QuestionID] = value
	s.status[row.QuestionID] = StatusCommitted
}

// ToggleRole flips the role's membership in the current selection, pushes
// the full updated preference list to the backend, and lazily fetches the
// role's questions on first selection.
func (s *Session) ToggleRole(ctx context.Context, roleID uint) {
	s.mu.Lock()

	s.fetchEpoch[roleID]++
	idx := -1
	for i, id := range s.selected {
		if id == roleID {
			idx = i
			break
		}
	}

	nowSelected := idx < 0
	if nowSelected {
		s.selected = append(s.selected, roleID)
	} else {
		s.selected = append(s.selected[:idx], s.selected[idx+1:]...)
	}

	_, fetched := s.questionsByRole[roleID]
	if nowSelected && !fetched {
		s.spawnRoleFetchLocked(ctx, roleID)
	}

	roles := s.preferenceListLocked()
	appID := s.applicationID
	s.mu.Unlock()

	// Full replace: the client always sends its complete current selection.
	if err := s.api.UpdateApplicationRoles(ctx, appID, roles); err != nil {
		s.log.Error("pushing role selection failed",
			zap.Uint("role_id", roleID), zap.Error(err))
	}
}

func (s *Session) preferenceListLocked() []model.ApplicationRole {
	roles := make([]model.ApplicationRole, len(s.selected))
	for i, id := range s.selected {
		roles[i] = model.ApplicationRole{
			ApplicationID:  s.applicationID,
			CampaignRoleID: id,
			Preference:     i + 1,
		}
	}
	return roles
}

func (s *Session) spawnRoleFetchLocked(ctx context.Context, roleID uint) {
	epoch := s.fetchEpoch[roleID]
	appID := s.applicationID

	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()

		questions, err := s.api.GetRoleQuestions(ctx, s.campaignID, roleID)
		if err != nil {
			// Cache entry stays unset so the next toggle retries.
			s.log.Error("fetching role questions failed",
				zap.Uint("role_id", roleID), zap.Error(err))
			return
		}
		answers, err := s.api.GetApplicationAnswers(ctx, appID, roleID)
		if err != nil {
			s.log.Error("fetching role answers failed",
				zap.Uint("role_id", roleID), zap.Error(err))
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		// Stale-write guard: commit only if this fetch is still current and
		// the role is still selected.
		if s.fetchEpoch[roleID] != epoch || !s.isSelectedLocked(roleID) {
			s.log.Debug("discarding stale role fetch", zap.Uint("role_id", roleID))
			return
		}

		s.questionsByRole[roleID] = questions
		rows := make(map[uint]model.Answer, len(answers))
		for _, row := range answers {
			rows[row.QuestionID] = row
			s.seedValueLocked(row)
		}
		s.roleAnswers[roleID] = rows
	}()
}

func (s *Session) isSelectedLocked(roleID uint) bool {
	for _, id := range s.selected {
		if id == roleID {
			return true
		}
	}
	return false
}

// SubmitAnswer reconciles one edit. The local value is updated first and is
// not rolled back if the network call fails; failures are logged and the
// question's status is set to StatusFailed.
func (s *Session) SubmitAnswer(ctx context.Context, questionID uint, value Value) error {
	s.mu.Lock()

	question := s.questionLocked(questionID)
	if question == nil {
		s.mu.Unlock()
		return fmt.Errorf("unknown question %d", questionID)
	}

	deleting := value.IsEmpty(len(question.Options))

	// Optimistic update, before any network call.
	if deleting {
		delete(s.answers, questionID)
	} else {
		s.answers[questionID] = value
	}
	s.status[questionID] = StatusPending

	existing, hasExisting := s.lookupAnswerLocked(question)
	appID := s.applicationID
	s.mu.Unlock()

	var err error
	switch {
	case deleting && hasExisting:
		err = s.api.DeleteAnswer(ctx, existing.ID)
		if err == nil {
			s.mu.Lock()
			s.removeCachedAnswerLocked(question)
			s.mu.Unlock()
		}
	case deleting:
		// Nothing persisted; already unanswered.
	case hasExisting:
		var data []byte
		if data, err = value.MarshalData(); err == nil {
			err = s.api.UpdateAnswer(ctx, existing.ID, questionID, value.Kind, data)
			if err == nil {
				existing.AnswerType = value.Kind
				existing.AnswerData = data
				s.mu.Lock()
				s.storeCachedAnswerLocked(question, existing)
				s.mu.Unlock()
			}
		}
	default:
		var data []byte
		if data, err = value.MarshalData(); err == nil {
			var created *model.Answer
			created, err = s.api.CreateAnswer(ctx, appID, questionID, value.Kind, data)
			if err == nil {
				if created == nil {
					// Create response omitted the row; synthesize it.
					created = &model.Answer{
						ApplicationID: appID,
						QuestionID:    questionID,
						AnswerType:    value.Kind,
						AnswerData:    data,
					}
				}
				s.mu.Lock()
				s.storeCachedAnswerLocked(question, *created)
				s.mu.Unlock()
			}
		}
	}

	s.mu.Lock()
	if err != nil {
		s.status[questionID] = StatusFailed
	} else {
		s.status[questionID] = StatusCommitted
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("answer submission failed",
			zap.Uint("question_id", questionID), zap.Error(err))
	}
	return err
}

func (s *Session) questionLocked(questionID uint) *model.Question {
	for i := range s.commonQuestions {
		if s.commonQuestions[i].ID == questionID {
			return &s.commonQuestions[i]
		}
	}
	for _, questions := range s.questionsByRole {
		for i := range questions {
			if questions[i].ID == questionID {
				return &questions[i]
			}
		}
	}
	return nil
}

// lookupAnswerLocked checks both cache partitions: the question's scope
// decides which one holds its row.
func (s *Session) lookupAnswerLocked(question *model.Question) (model.Answer, bool) {
	if question.IsCommon() {
		row, ok := s.commonAnswers[question.ID]
		return row, ok
	}
	if rows, ok := s.roleAnswers[*question.RoleID]; ok {
		row, ok := rows[question.ID]
		return row, ok
	}
	return model.Answer{}, false
}

func (s *Session) storeCachedAnswerLocked(question *model.Question, row model.Answer) {
	if question.IsCommon() {
		s.commonAnswers[question.ID] = row
		return
	}
	rows, ok := s.roleAnswers[*question.RoleID]
	if !ok {
		rows = make(map[uint]model.Answer)
		s.roleAnswers[*question.RoleID] = rows
	}
	rows[question.ID] = row
}

func (s *Session) removeCachedAnswerLocked(question *model.Question) {
	if question.IsCommon() {
		delete(s.commonAnswers, question.ID)
		return
	}
	if rows, ok := s.roleAnswers[*question.RoleID]; ok {
		delete(rows, question.ID)
	}
}

// Wait blocks until outstanding role fetches finish. Used by tests and by
// teardown; normal operation never needs it.
func (s *Session) Wait() {
	s.fetches.Wait()
}

func (s *Session) ApplicationID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applicationID
}

// SelectedRoles returns the current selection in preference order.
func (s *Session) SelectedRoles() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint, len(s.selected))
	copy(out, s.selected)
	return out
}

// Answer returns the current local value for a question.
func (s *Session) Answer(questionID uint) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.answers[questionID]
	return v, ok
}

// Status reports the last submission outcome for a question.
func (s *Session) Status(questionID uint) SubmitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[questionID]
}

// FailedQuestions lists questions whose last submission did not reach the
// server, so the UI can surface them instead of assuming success.
func (s *Session) FailedQuestions() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint
	for id, st := range s.status {
		if st == StatusFailed {
			out = append(out, id)
		}
	}
	return out
}

// QuestionsForRole returns the cached question set; ok is false while the
// set has not been fetched (absence is distinct from an empty list).
func (s *Session) QuestionsForRole(roleID uint) ([]model.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	questions, ok := s.questionsByRole[roleID]
	return questions, ok
}

// ActiveQuestions returns the common questions followed by the question
// sets of the selected roles, in selection order. Deselected roles drop out
// of this list without their caches being touched.
func (s *Session) ActiveQuestions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Question, 0, len(s.commonQuestions))
	out = append(out, s.commonQuestions...)
	for _, roleID := range s.selected {
		out = append(out, s.questionsByRole[roleID]...)
	}
	return out
}

// CommonAnswers returns a copy of the persisted common-answer cache.
func (s *Session) CommonAnswers() map[uint]model.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]model.Answer, len(s.commonAnswers))
	for k, v := range s.commonAnswers {
		out[k] = v
	}
	return out
}

// FormatAnswerFor renders the question's current value for review display.
func (s *Session) FormatAnswerFor(questionID uint) string {
	s.mu.Lock()
	question := s.questionLocked(questionID)
	value, ok := s.answers[questionID]
	s.mu.Unlock()

	if question == nil {
		return NoAnswerText
	}
	if !ok {
		return FormatAnswer(question, nil)
	}
	return FormatAnswer(question, &value)
}
