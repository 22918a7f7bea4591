package models

// Comment is an immutable note on a task; it can only be deleted, and only
// by its author or an admin.
type Comment struct {
	BaseModel
	Content string `json:"content" gorm:"type:text;not null" validate:"required"`
	TaskID  uint   `json:"task_id" gorm:"not null;index"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
