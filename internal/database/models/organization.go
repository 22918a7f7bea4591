package models

// Organization represents the root entity for multi-tenancy. Every user and
// project belongs to exactly one organization; deleting an organization
// cascades to both.
type Organization struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:255" validate:"required,min=1,max=255"`
	Description string `json:"description" gorm:"size:500" validate:"max=500"`

	// Relationships
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
