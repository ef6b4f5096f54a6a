package model

type OrgRole string

const (
	OrgAdmin    OrgRole = "admin"
	OrgDirector OrgRole = "director"
)

// swagger:model Organisation
type Organisation struct {
	BaseModel
	Name    string `gorm:"size:100;unique;not null" json:"name"`
	LogoURL string `gorm:"size:255" json:"logoUrl"`
}

func (Organisation) TableName() string {
	return "organisations"
}

// OrganisationMember links a user to an organisation with an org-level role.
type OrganisationMember struct {
	BaseModel
	OrganisationID uint    `gorm:"index;uniqueIndex:idx_org_user" json:"organisationId"`
	UserID         uint    `gorm:"index;uniqueIndex:idx_org_user" json:"userId"`
	Role           OrgRole `gorm:"type:enum('admin','director');default:'director'" json:"role"`
}

func (OrganisationMember) TableName() string {
	return "organisation_members"
}
