package repository

import (
	"taskboard-backend/internal/database/models"

	"gorm.io/gorm"
)

// CommentRepository handles database operations for task comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByTaskID retrieves the task's comments oldest first, with pagination
func (r *CommentRepository) GetByTaskID(taskID uint, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).Where("task_id = ?", taskID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at").Limit(limit).Offset(offset).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Delete deletes a comment
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
