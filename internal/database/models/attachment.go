package models

// Attachment is a file uploaded to a task. At most MaxAttachmentsPerTask
// rows may exist per task; the repository enforces the cap inside a locked
// transaction as the backstop for concurrent uploads.
type Attachment struct {
	BaseModel
	FilePath string `json:"file_path" gorm:"not null;size:500"`
	FileName string `json:"file_name" gorm:"not null;size:255"`
	FileType string `json:"file_type" gorm:"size:100"`
	FileSize int64  `json:"file_size"`
	TaskID   uint   `json:"task_id" gorm:"not null;index"`
	UserID   *uint  `json:"user_id" gorm:"index"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
