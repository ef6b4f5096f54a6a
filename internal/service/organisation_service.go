package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
)

type OrganisationService struct {
	OrgRepo  *repository.OrganisationRepository
	UserRepo *repository.UserRepository
}

func NewOrganisationService(orgRepo *repository.OrganisationRepository, userRepo *repository.UserRepository) *OrganisationService {
	return &OrganisationService{OrgRepo: orgRepo, UserRepo: userRepo}
}

type OrganisationRequest struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logoUrl"`
}

func (s *OrganisationService) Create(req OrganisationRequest, creatorID uint) (*model.Organisation, error) {
	org := &model.Organisation{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	}
	if err := s.OrgRepo.Create(org); err != nil {
		return nil, err
	}

	// The creator becomes the organisation's first admin.
	member := &model.OrganisationMember{
		OrganisationID: org.ID,
		UserID:         creatorID,
		Role:           model.OrgAdmin,
	}
	if err := s.OrgRepo.AddMember(member); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganisationService) List() ([]model.Organisation, error) {
	return s.OrgRepo.FindAll()
}

func (s *OrganisationService) Get(id uint) (*model.Organisation, error) {
	return s.OrgRepo.FindByID(id)
}

func (s *OrganisationService) Delete(id uint) error {
	return s.OrgRepo.Delete(id)
}

type MemberRequest struct {
	UserID uint          `json:"userId" binding:"required"`
	Role   model.OrgRole `json:"role" binding:"required,oneof=admin director"`
}

func (s *OrganisationService) AddMember(orgID uint, req MemberRequest) error {
	if _, err := s.UserRepo.FindByID(req.UserID); err != nil {
		return err
	}
	return s.OrgRepo.AddMember(&model.OrganisationMember{
		OrganisationID: orgID,
		UserID:         req.UserID,
		Role:           req.Role,
	})
}

func (s *OrganisationService) RemoveMember(orgID, userID uint) error {
	return s.OrgRepo.RemoveMember(orgID, userID)
}

func (s *OrganisationService) ListMembers(orgID uint) ([]model.OrganisationMember, error) {
	return s.OrgRepo.ListMembers(orgID)
}

// IsMember reports whether the user belongs to the organisation.
func (s *OrganisationService) IsMember(orgID, userID uint) bool {
	_, err := s.OrgRepo.FindMember(orgID, userID)
	return err == nil
}
