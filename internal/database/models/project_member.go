package models

import "time"

// ProjectMember is the join entity between projects and users. The composite
// unique index backs the no-duplicate-membership invariant even when two
// concurrent add-member requests race past the service-level check.
type ProjectMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_project_members_project_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_project_members_project_user"`
	JoinedAt  time.Time `json:"joined_at" gorm:"autoCreateTime"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectMember
func (ProjectMember) TableName() string {
	return "project_members"
}
