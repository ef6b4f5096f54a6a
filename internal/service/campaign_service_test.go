package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCampaignService(db *gorm.DB) *CampaignService {
	return NewCampaignService(
		repository.NewCampaignRepository(db),
		repository.NewRoleRepository(db),
		repository.NewOrganisationRepository(db),
		nil,
	)
}

func campaignRequest(name string) CampaignRequest {
	return CampaignRequest{
		Name:      name,
		StartsAt:  time.Now().Add(-time.Hour),
		EndsAt:    time.Now().Add(time.Hour),
		Published: true,
	}
}

func TestCampaignUpdateIsScopedToOrganisation(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)

	campaign := seedCampaign(t, db, 1, "Autumn Recruitment")

	_, err := svc.Update(2, campaign.ID, campaignRequest("Hijacked"))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(2, campaign.ID), util.ErrPermissionDenied)

	updated, err := svc.Update(1, campaign.ID, campaignRequest("Autumn Recruitment 2026"))
	require.NoError(t, err)
	assert.Equal(t, "Autumn Recruitment 2026", updated.Name)
}

func TestRoleManagementIsScopedToOrganisation(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)

	campaign := seedCampaign(t, db, 1, "Winter Recruitment")
	role := &model.CampaignRole{CampaignID: campaign.ID, Name: "Marketing Director"}
	require.NoError(t, db.Create(role).Error)

	_, err := svc.CreateRole(2, campaign.ID, RoleRequest{Name: "Intruder"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.UpdateRole(2, role.ID, RoleRequest{Name: "Renamed"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteRole(2, role.ID), util.ErrPermissionDenied)

	renamed, err := svc.UpdateRole(1, role.ID, RoleRequest{Name: "Media Director"})
	require.NoError(t, err)
	assert.Equal(t, "Media Director", renamed.Name)
}
