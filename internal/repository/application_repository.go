package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) FindByID(id uint) (*model.Application, error) {
	var app model.Application
	err := r.DB.First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByCampaignAndUser(campaignID, userID uint) (*model.Application, error) {
	var app model.Application
	err := r.DB.Where("campaign_id = ? AND user_id = ?", campaignID, userID).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByCampaign(campaignID uint) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.Where("campaign_id = ?", campaignID).Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) UpdateStatus(id uint, status model.ApplicationStatus) error {
	return r.DB.Model(&model.Application{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// GetRoles returns the application's role selection in preference order.
func (r *ApplicationRepository) GetRoles(applicationID uint) ([]model.ApplicationRole, error) {
	var roles []model.ApplicationRole
	err := r.DB.Where("application_id = ?", applicationID).
		Order("preference").
		Find(&roles).Error
	return roles, err
}

// ReplaceRoles swaps the application's whole role-preference set in one
// transaction. The client always sends its complete current selection.
func (r *ApplicationRepository) ReplaceRoles(applicationID uint, roles []model.ApplicationRole) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("application_id = ?", applicationID).
			Delete(&model.ApplicationRole{}).Error; err != nil {
			return err
		}
		if len(roles) == 0 {
			return nil
		}
		return tx.Create(&roles).Error
	})
}
