package repository

import (
	"chaos_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	DB *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(campaign *model.Campaign) error {
	return r.DB.Create(campaign).Error
}

func (r *CampaignRepository) FindByID(id uint) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.DB.First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepository) Update(campaign *model.Campaign) error {
	return r.DB.Save(campaign).Error
}

func (r *CampaignRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Campaign{}, id).Error
}

// FindPublished returns published campaigns whose window covers now.
func (r *CampaignRepository) FindPublished(now time.Time) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := r.DB.Where("published = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("ends_at").
		Find(&campaigns).Error
	return campaigns, err
}

func (r *CampaignRepository) FindByOrganisation(orgID uint) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := r.DB.Where("organisation_id = ?", orgID).Order("starts_at DESC").Find(&campaigns).Error
	return campaigns, err
}
