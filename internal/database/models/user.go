package models

// UserRole represents the RBAC tier of a user within their organization
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleMember  UserRole = "member"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleMember:
		return true
	}
	return false
}

// User represents an authenticated account. Users are never hard-deleted;
// they are soft-disabled through IsActive.
type User struct {
	BaseModel
	Email          string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash   string   `json:"-" gorm:"not null;size:255"`
	FullName       string   `json:"full_name" gorm:"not null;size:255" validate:"required,max=255"`
	Role           UserRole `json:"role" gorm:"type:varchar(20);not null;default:'member'" validate:"required"`
	IsActive       bool     `json:"is_active" gorm:"not null;default:true"`
	OrganizationID uint     `json:"organization_id" gorm:"not null;index"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user's role is one of the given roles.
func (u *User) HasRole(roles ...UserRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
