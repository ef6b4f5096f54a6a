package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type AnswerService struct {
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	Applications *ApplicationService
}

func NewAnswerService(
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	applications *ApplicationService,
) *AnswerService {
	return &AnswerService{
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		Applications: applications,
	}
}

type AnswerRequest struct {
	QuestionID uint               `json:"questionId" binding:"required"`
	AnswerType model.QuestionType `json:"answer_type" binding:"required"`
	AnswerData json.RawMessage    `json:"answer_data" binding:"required"`
}

// Create persists an answer, enforcing at most one row per
// (application, question): when a row already exists it is updated in
// place, never duplicated.
func (s *AnswerService) Create(applicationID, userID uint, req AnswerRequest) (*model.Answer, error) {
	app, err := s.Applications.GetOwned(applicationID, userID)
	if err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.CampaignID != app.CampaignID {
		return nil, util.ErrQuestionMismatch
	}
	if question.Type != req.AnswerType {
		return nil, fmt.Errorf("answer type %s does not match question type %s", req.AnswerType, question.Type)
	}

	existing, err := s.AnswerRepo.FindByApplicationAndQuestion(applicationID, req.QuestionID)
	if err == nil {
		existing.AnswerType = req.AnswerType
		existing.AnswerData = req.AnswerData
		if err := s.AnswerRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	answer := &model.Answer{
		ApplicationID: applicationID,
		QuestionID:    req.QuestionID,
		AnswerType:    req.AnswerType,
		AnswerData:    req.AnswerData,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) Update(answerID, userID uint, req AnswerRequest) (*model.Answer, error) {
	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Applications.GetOwned(answer.ApplicationID, userID); err != nil {
		return nil, err
	}
	if answer.QuestionID != req.QuestionID {
		return nil, util.ErrQuestionMismatch
	}

	answer.AnswerType = req.AnswerType
	answer.AnswerData = req.AnswerData
	if err := s.AnswerRepo.Update(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// Delete removes the row; a deleted answer is how "unanswered" is stored.
func (s *AnswerService) Delete(answerID, userID uint) error {
	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		return err
	}
	if _, err := s.Applications.GetOwned(answer.ApplicationID, userID); err != nil {
		return err
	}
	return s.AnswerRepo.Delete(answerID)
}

func (s *AnswerService) ListCommon(applicationID, userID uint) ([]model.Answer, error) {
	if _, err := s.Applications.GetOwned(applicationID, userID); err != nil {
		return nil, err
	}
	return s.AnswerRepo.FindCommonByApplication(applicationID)
}

func (s *AnswerService) ListForRole(applicationID, roleID, userID uint) ([]model.Answer, error) {
	if _, err := s.Applications.GetOwned(applicationID, userID); err != nil {
		return nil, err
	}
	return s.AnswerRepo.FindByApplicationAndRole(applicationID, roleID)
}
