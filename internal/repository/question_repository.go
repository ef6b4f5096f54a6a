package repository

import (
	"chaos_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const questionCacheTTL = 5 * time.Minute

// QuestionRepository reads question sets with a redis cache in front of the
// per-role lookup, which is the hot path during the application flow.
type QuestionRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewQuestionRepository(db *gorm.DB, rdb *redis.Client) *QuestionRepository {
	return &QuestionRepository{DB: db, RDB: rdb}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	if err := r.DB.Create(question).Error; err != nil {
		return err
	}
	r.invalidate(question)
	return nil
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order")
	}).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindCommonByCampaignID returns the campaign-scoped questions in order.
func (r *QuestionRepository) FindCommonByCampaignID(campaignID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order")
	}).
		Where("campaign_id = ? AND role_id IS NULL", campaignID).
		Order("questions.order").
		Find(&questions).Error
	return questions, err
}

// FindByRoleID returns one role's question set, served from redis when warm.
func (r *QuestionRepository) FindByRoleID(campaignID, roleID uint) ([]model.Question, error) {
	if cached, ok := r.getCachedRoleQuestions(campaignID, roleID); ok {
		return cached, nil
	}

	var questions []model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order")
	}).
		Where("campaign_id = ? AND role_id = ?", campaignID, roleID).
		Order("questions.order").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	r.cacheRoleQuestions(campaignID, roleID, questions)
	return questions, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	if err := r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error; err != nil {
		return err
	}
	r.invalidate(question)
	return nil
}

// ReplaceOptions swaps the question's option list wholesale and saves the
// row. FullSaveAssociations alone upserts options but never removes the ones
// dropped from the list, so the old rows go first.
func (r *QuestionRepository) ReplaceOptions(question *model.Question, options []model.QuestionOption) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("question_id = ?", question.ID).
			Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		question.Options = options
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(question)
	return nil
}

func (r *QuestionRepository) Delete(id uint) error {
	question, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if err := r.DB.Delete(&model.Question{}, id).Error; err != nil {
		return err
	}
	r.invalidate(question)
	return nil
}

func roleQuestionsKey(campaignID, roleID uint) string {
	return fmt.Sprintf("chaos:campaign:%d:role:%d:questions", campaignID, roleID)
}

func (r *QuestionRepository) getCachedRoleQuestions(campaignID, roleID uint) ([]model.Question, bool) {
	if r.RDB == nil {
		return nil, false
	}
	raw, err := r.RDB.Get(context.Background(), roleQuestionsKey(campaignID, roleID)).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []model.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (r *QuestionRepository) cacheRoleQuestions(campaignID, roleID uint, questions []model.Question) {
	if r.RDB == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	r.RDB.Set(context.Background(), roleQuestionsKey(campaignID, roleID), raw, questionCacheTTL)
}

func (r *QuestionRepository) invalidate(question *model.Question) {
	if r.RDB == nil || question.RoleID == nil {
		return
	}
	r.RDB.Del(context.Background(), roleQuestionsKey(question.CampaignID, *question.RoleID))
}
