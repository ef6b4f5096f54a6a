package model

type QuestionType string

const (
	ShortAnswer QuestionType = "ShortAnswer"
	DropDown    QuestionType = "DropDown"
	MultiChoice QuestionType = "MultiChoice"
	MultiSelect QuestionType = "MultiSelect"
	Ranking     QuestionType = "Ranking"
)

// Question belongs to a campaign; RoleID nil means it is a common question
// asked of every applicant, otherwise it belongs to one role.
// swagger:model Question
type Question struct {
	BaseModel
	CampaignID  uint             `gorm:"index;not null" json:"campaignId"`
	RoleID      *uint            `gorm:"index" json:"roleId,omitempty"`
	Type        QuestionType     `gorm:"size:20;not null" json:"type"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Required    bool             `gorm:"default:false" json:"required"`
	Order       int              `gorm:"default:0" json:"order"`
	Options     []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// IsCommon reports whether the question is campaign-scoped.
func (q *Question) IsCommon() bool {
	return q.RoleID == nil
}

// HasOptions reports whether the question type carries an option list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case DropDown, MultiChoice, MultiSelect, Ranking:
		return true
	}
	return false
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
