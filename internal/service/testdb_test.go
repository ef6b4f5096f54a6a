package service

import (
	"chaos_backend/internal/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Organisation{},
		&model.OrganisationMember{},
		&model.Campaign{},
		&model.CampaignRole{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Application{},
		&model.ApplicationRole{},
		&model.Answer{},
		&model.Rating{},
		&model.InterviewSlot{},
		&model.InterviewBooking{},
	))
	return db
}

// seedCampaign creates an open, published campaign for the organisation.
func seedCampaign(t *testing.T, db *gorm.DB, orgID uint, name string) *model.Campaign {
	t.Helper()
	campaign := &model.Campaign{
		OrganisationID: orgID,
		Name:           name,
		StartsAt:       time.Now().Add(-time.Hour),
		EndsAt:         time.Now().Add(time.Hour),
		Published:      true,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

func seedApplication(t *testing.T, db *gorm.DB, campaignID, userID uint) *model.Application {
	t.Helper()
	app := &model.Application{
		CampaignID: campaignID,
		UserID:     userID,
		Status:     model.ApplicationPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

type nopMailer struct{}

func (nopMailer) Send(toName, toAddress, subject, body string) {}
