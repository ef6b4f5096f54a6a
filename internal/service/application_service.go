package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ApplicationService struct {
	AppRepo      *repository.ApplicationRepository
	CampaignRepo *repository.CampaignRepository
	RoleRepo     *repository.RoleRepository
	Campaigns    *CampaignService
}

func NewApplicationService(
	appRepo *repository.ApplicationRepository,
	campaignRepo *repository.CampaignRepository,
	roleRepo *repository.RoleRepository,
	campaigns *CampaignService,
) *ApplicationService {
	return &ApplicationService{
		AppRepo:      appRepo,
		CampaignRepo: campaignRepo,
		RoleRepo:     roleRepo,
		Campaigns:    campaigns,
	}
}

// GetOrCreate returns the user's application for the campaign, creating it
// on first visit. At most one application exists per (campaign, user).
func (s *ApplicationService) GetOrCreate(campaignID, userID uint) (*model.Application, error) {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, util.ErrCampaignNotFound
	}
	if !s.Campaigns.IsOpen(campaign) {
		return nil, util.ErrCampaignClosed
	}

	app, err := s.AppRepo.FindByCampaignAndUser(campaignID, userID)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app = &model.Application{
		CampaignID: campaignID,
		UserID:     userID,
		Status:     model.ApplicationPending,
	}
	if err := s.AppRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetOwned fetches an application and verifies the caller owns it.
func (s *ApplicationService) GetOwned(applicationID, userID uint) (*model.Application, error) {
	app, err := s.AppRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return app, nil
}

func (s *ApplicationService) GetRoles(applicationID uint) ([]model.ApplicationRole, error) {
	return s.AppRepo.GetRoles(applicationID)
}

type RoleSelection struct {
	CampaignRoleID uint `json:"campaign_role_id" binding:"required"`
	Preference     int  `json:"preference" binding:"required,min=1"`
}

type UpdateRolesRequest struct {
	Roles []RoleSelection `json:"roles"`
}

// ReplaceRoles swaps the application's role selection wholesale. Every role
// must belong to the application's campaign and appear at most once.
func (s *ApplicationService) ReplaceRoles(applicationID, userID uint, req UpdateRolesRequest) error {
	app, err := s.GetOwned(applicationID, userID)
	if err != nil {
		return err
	}

	seen := make(map[uint]bool, len(req.Roles))
	rows := make([]model.ApplicationRole, 0, len(req.Roles))
	for _, sel := range req.Roles {
		if seen[sel.CampaignRoleID] {
			return util.ErrDuplicatePreference
		}
		seen[sel.CampaignRoleID] = true

		role, err := s.RoleRepo.FindByID(sel.CampaignRoleID)
		if err != nil {
			return err
		}
		if role.CampaignID != app.CampaignID {
			return util.ErrRoleNotInCampaign
		}

		rows = append(rows, model.ApplicationRole{
			ApplicationID:  applicationID,
			CampaignRoleID: sel.CampaignRoleID,
			Preference:     sel.Preference,
		})
	}

	return s.AppRepo.ReplaceRoles(applicationID, rows)
}
