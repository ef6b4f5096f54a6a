package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) Create(role *model.CampaignRole) error {
	return r.DB.Create(role).Error
}

func (r *RoleRepository) FindByID(id uint) (*model.CampaignRole, error) {
	var role model.CampaignRole
	err := r.DB.First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) FindAllByCampaignID(campaignID uint) ([]model.CampaignRole, error) {
	var roles []model.CampaignRole
	err := r.DB.Where("campaign_id = ?", campaignID).Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) Update(role *model.CampaignRole) error {
	return r.DB.Save(role).Error
}

func (r *RoleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CampaignRole{}, id).Error
}
