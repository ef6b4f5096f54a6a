package model

import "time"

// InterviewSlot is a bookable interview window published by a campaign.
// swagger:model InterviewSlot
type InterviewSlot struct {
	BaseModel
	CampaignID uint      `gorm:"index;not null" json:"campaignId"`
	StartsAt   time.Time `gorm:"not null" json:"startsAt"`
	EndsAt     time.Time `gorm:"not null" json:"endsAt"`
	Capacity   int       `gorm:"default:1" json:"capacity"`
}

func (InterviewSlot) TableName() string {
	return "interview_slots"
}

// InterviewBooking holds one application's booking. An application may hold
// at most one booking per campaign; rebooking moves it.
type InterviewBooking struct {
	BaseModel
	SlotID        uint `gorm:"index;not null" json:"slotId"`
	ApplicationID uint `gorm:"uniqueIndex" json:"applicationId"`
}

func (InterviewBooking) TableName() string {
	return "interview_bookings"
}
