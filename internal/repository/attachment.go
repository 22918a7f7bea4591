package repository

import (
	"taskboard-backend/internal/database/models"
	apperrors "taskboard-backend/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachmentRepository handles database operations for task attachments
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// CreateWithCap inserts the attachment unless the task already carries
// maxPerTask attachments. The task row is locked for the duration of the
// transaction so concurrent uploads cannot both pass the count check.
func (r *AttachmentRepository) CreateWithCap(attachment *models.Attachment, maxPerTask int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&task, "id = ?", attachment.TaskID).Error
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.Attachment{}).
			Where("task_id = ?", attachment.TaskID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count >= int64(maxPerTask) {
			return apperrors.NewAttachmentLimitError(maxPerTask)
		}

		return tx.Create(attachment).Error
	})
}

// GetByID retrieves an attachment by ID
func (r *AttachmentRepository) GetByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.First(&attachment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// GetByTaskID retrieves all attachments of a task, oldest first
func (r *AttachmentRepository) GetByTaskID(taskID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Where("task_id = ?", taskID).Order("created_at").Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete deletes an attachment record
func (r *AttachmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Attachment{}, "id = ?", id).Error
}
