package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type OrganisationRepository struct {
	DB *gorm.DB
}

func NewOrganisationRepository(db *gorm.DB) *OrganisationRepository {
	return &OrganisationRepository{DB: db}
}

func (r *OrganisationRepository) Create(org *model.Organisation) error {
	return r.DB.Create(org).Error
}

func (r *OrganisationRepository) FindByID(id uint) (*model.Organisation, error) {
	var org model.Organisation
	err := r.DB.First(&org, id).Error
	return &org, err
}

func (r *OrganisationRepository) FindAll() ([]model.Organisation, error) {
	var orgs []model.Organisation
	err := r.DB.Order("name").Find(&orgs).Error
	return orgs, err
}

func (r *OrganisationRepository) Update(org *model.Organisation) error {
	return r.DB.Save(org).Error
}

func (r *OrganisationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Organisation{}, id).Error
}

func (r *OrganisationRepository) AddMember(member *model.OrganisationMember) error {
	return r.DB.Create(member).Error
}

func (r *OrganisationRepository) RemoveMember(orgID, userID uint) error {
	return r.DB.Where("organisation_id = ? AND user_id = ?", orgID, userID).
		Delete(&model.OrganisationMember{}).Error
}

func (r *OrganisationRepository) FindMember(orgID, userID uint) (*model.OrganisationMember, error) {
	var member model.OrganisationMember
	err := r.DB.Where("organisation_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *OrganisationRepository) ListMembers(orgID uint) ([]model.OrganisationMember, error) {
	var members []model.OrganisationMember
	err := r.DB.Where("organisation_id = ?", orgID).Find(&members).Error
	return members, err
}
