package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

type CampaignService struct {
	CampaignRepo *repository.CampaignRepository
	RoleRepo     *repository.RoleRepository
	OrgRepo      *repository.OrganisationRepository
	Storage      *StorageService
}

func NewCampaignService(
	campaignRepo *repository.CampaignRepository,
	roleRepo *repository.RoleRepository,
	orgRepo *repository.OrganisationRepository,
	storage *StorageService,
) *CampaignService {
	return &CampaignService{
		CampaignRepo: campaignRepo,
		RoleRepo:     roleRepo,
		OrgRepo:      orgRepo,
		Storage:      storage,
	}
}

type CampaignRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	Published   bool      `json:"published"`
}

func (s *CampaignService) Create(orgID uint, req CampaignRequest) (*model.Campaign, error) {
	campaign := &model.Campaign{
		OrganisationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Published:      req.Published,
	}
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// GetOwnedBy fetches a campaign and verifies it belongs to the organisation.
// Every org-scoped operation goes through this so that a member of one
// organisation cannot act on another organisation's campaigns.
func (s *CampaignService) GetOwnedBy(campaignID, orgID uint) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OrganisationID != orgID {
		return nil, util.ErrPermissionDenied
	}
	return campaign, nil
}

func (s *CampaignService) Update(orgID, id uint, req CampaignRequest) (*model.Campaign, error) {
	campaign, err := s.GetOwnedBy(id, orgID)
	if err != nil {
		return nil, err
	}

	campaign.Name = req.Name
	campaign.Description = req.Description
	campaign.StartsAt = req.StartsAt
	campaign.EndsAt = req.EndsAt
	campaign.Published = req.Published
	if err := s.CampaignRepo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(orgID, id uint) error {
	if _, err := s.GetOwnedBy(id, orgID); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(id)
}

func (s *CampaignService) Get(id uint) (*model.Campaign, error) {
	return s.CampaignRepo.FindByID(id)
}

func (s *CampaignService) ListPublished() ([]model.Campaign, error) {
	return s.CampaignRepo.FindPublished(time.Now())
}

func (s *CampaignService) ListByOrganisation(orgID uint) ([]model.Campaign, error) {
	return s.CampaignRepo.FindByOrganisation(orgID)
}

// UploadCoverImage stores the image and records its URL on the campaign.
func (s *CampaignService) UploadCoverImage(ctx context.Context, orgID, id uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	campaign, err := s.GetOwnedBy(id, orgID)
	if err != nil {
		return "", err
	}

	stored := fmt.Sprintf("campaigns/%d/cover-%s%s", id, model.GenerateUUID(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, stored, reader, size, contentType)
	if err != nil {
		return "", err
	}

	campaign.CoverImage = url
	if err := s.CampaignRepo.Update(campaign); err != nil {
		return "", err
	}
	return url, nil
}

type RoleRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	MinAvailable int    `json:"minAvailable"`
	MaxAvailable int    `json:"maxAvailable"`
}

func (s *CampaignService) CreateRole(orgID, campaignID uint, req RoleRequest) (*model.CampaignRole, error) {
	if _, err := s.GetOwnedBy(campaignID, orgID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			return nil, err
		}
		return nil, util.ErrCampaignNotFound
	}

	role := &model.CampaignRole{
		CampaignID:   campaignID,
		Name:         req.Name,
		Description:  req.Description,
		MinAvailable: req.MinAvailable,
		MaxAvailable: req.MaxAvailable,
	}
	if err := s.RoleRepo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *CampaignService) UpdateRole(orgID, roleID uint, req RoleRequest) (*model.CampaignRole, error) {
	role, err := s.RoleRepo.FindByID(roleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetOwnedBy(role.CampaignID, orgID); err != nil {
		return nil, err
	}

	role.Name = req.Name
	role.Description = req.Description
	role.MinAvailable = req.MinAvailable
	role.MaxAvailable = req.MaxAvailable
	if err := s.RoleRepo.Update(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *CampaignService) DeleteRole(orgID, roleID uint) error {
	role, err := s.RoleRepo.FindByID(roleID)
	if err != nil {
		return err
	}
	if _, err := s.GetOwnedBy(role.CampaignID, orgID); err != nil {
		return err
	}
	return s.RoleRepo.Delete(roleID)
}

func (s *CampaignService) ListRoles(campaignID uint) ([]model.CampaignRole, error) {
	return s.RoleRepo.FindAllByCampaignID(campaignID)
}

// IsOpen reports whether the campaign currently accepts applications.
func (s *CampaignService) IsOpen(campaign *model.Campaign) bool {
	now := time.Now()
	return campaign.Published && !now.Before(campaign.StartsAt) && !now.After(campaign.EndsAt)
}
