package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindByApplicationAndQuestion(applicationID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.Where("application_id = ? AND question_id = ?", applicationID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// FindCommonByApplication returns answers to the campaign's common questions.
func (r *AnswerRepository) FindCommonByApplication(applicationID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.application_id = ? AND questions.role_id IS NULL", applicationID).
		Find(&answers).Error
	return answers, err
}

// FindByApplicationAndRole returns answers to one role's questions.
func (r *AnswerRepository) FindByApplicationAndRole(applicationID, roleID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.application_id = ? AND questions.role_id = ?", applicationID, roleID).
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) FindAllByApplication(applicationID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("application_id = ?", applicationID).Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) Update(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

// Delete removes the row outright. A soft-deleted row would still occupy the
// (application_id, question_id) unique index and block re-answering.
func (r *AnswerRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Answer{}, id).Error
}
