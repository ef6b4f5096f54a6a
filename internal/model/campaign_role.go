package model

// CampaignRole is a position applicants can apply for within a campaign.
// swagger:model CampaignRole
type CampaignRole struct {
	BaseModel
	CampaignID   uint   `gorm:"index;not null" json:"campaignId"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	MinAvailable int    `gorm:"default:1" json:"minAvailable"`
	MaxAvailable int    `gorm:"default:1" json:"maxAvailable"`
}

func (CampaignRole) TableName() string {
	return "campaign_roles"
}
