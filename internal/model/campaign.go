package model

import "time"

// Campaign is one recruitment drive run by an organisation.
// swagger:model Campaign
type Campaign struct {
	BaseModel
	OrganisationID uint      `gorm:"index;not null" json:"organisationId"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CoverImage     string    `gorm:"size:255" json:"coverImage"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	Published      bool      `gorm:"default:false" json:"published"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
