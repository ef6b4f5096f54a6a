package model

// Rating is one reviewer's mark on an application.
// swagger:model Rating
type Rating struct {
	BaseModel
	ApplicationID uint   `gorm:"index;uniqueIndex:idx_app_rater" json:"applicationId"`
	RaterID       uint   `gorm:"uniqueIndex:idx_app_rater" json:"raterId"`
	Rating        int    `gorm:"not null" json:"rating"` // 0-5
	Comment       string `gorm:"type:text" json:"comment"`
}

func (Rating) TableName() string {
	return "ratings"
}
