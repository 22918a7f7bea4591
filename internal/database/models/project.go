package models

// Project belongs to an organization and owns members and tasks. Deleting a
// project cascades to both.
type Project struct {
	BaseModel
	Name           string `json:"name" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description    string `json:"description" gorm:"type:text"`
	OrganizationID uint   `json:"organization_id" gorm:"not null;index"`
	CreatedByID    *uint  `json:"created_by_id" gorm:"index"`

	// Relationships
	Organization *Organization   `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	CreatedBy    *User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Members      []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks        []Task          `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
