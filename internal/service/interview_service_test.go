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

func newInterviewService(db *gorm.DB) *InterviewService {
	campaignRepo := repository.NewCampaignRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	campaigns := NewCampaignService(campaignRepo, roleRepo, repository.NewOrganisationRepository(db), nil)
	applications := NewApplicationService(repository.NewApplicationRepository(db), campaignRepo, roleRepo, campaigns)
	return NewInterviewService(repository.NewInterviewRepository(db), campaignRepo, applications)
}

func TestSlotManagementIsScopedToOrganisation(t *testing.T) {
	db := newTestDB(t)
	svc := newInterviewService(db)

	campaign := seedCampaign(t, db, 1, "Interview Recruitment")
	req := SlotRequest{
		StartsAt: time.Now().Add(24 * time.Hour),
		EndsAt:   time.Now().Add(25 * time.Hour),
		Capacity: 3,
	}

	_, err := svc.CreateSlot(2, campaign.ID, req)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	slot, err := svc.CreateSlot(1, campaign.ID, req)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteSlot(2, slot.ID), util.ErrPermissionDenied)
	require.NoError(t, svc.DeleteSlot(1, slot.ID))

	var count int64
	require.NoError(t, db.Model(&model.InterviewSlot{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
