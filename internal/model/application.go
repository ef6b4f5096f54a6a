package model

type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "Pending"
	ApplicationInterviewing ApplicationStatus = "Interviewing"
	ApplicationOffered      ApplicationStatus = "Offered"
	ApplicationRejected     ApplicationStatus = "Rejected"
)

// Application is created lazily, at most one per applicant per campaign.
// swagger:model Application
type Application struct {
	BaseModel
	CampaignID uint              `gorm:"index;uniqueIndex:idx_campaign_user" json:"campaignId"`
	UserID     uint              `gorm:"index;uniqueIndex:idx_campaign_user" json:"userId"`
	Status     ApplicationStatus `gorm:"size:20;default:'Pending'" json:"status"`
}

func (Application) TableName() string {
	return "applications"
}

// ApplicationRole records one selected role with its 1-based preference.
// The full set is replaced whenever the applicant's selection changes.
type ApplicationRole struct {
	BaseModel
	ApplicationID  uint `gorm:"index;uniqueIndex:idx_app_role" json:"application_id"`
	CampaignRoleID uint `gorm:"uniqueIndex:idx_app_role" json:"campaign_role_id"`
	Preference     int  `gorm:"not null" json:"preference"`
}

func (ApplicationRole) TableName() string {
	return "application_roles"
}
