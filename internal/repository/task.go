package repository

import (
	"time"

	"taskboard-backend/internal/database/models"

	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetWithRelations retrieves a task with assignee and creator details
func (r *TaskRepository) GetWithRelations(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("Assignee").Preload("CreatedBy").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByProjectID retrieves the project's tasks matching the filter, with
// pagination
func (r *TaskRepository) GetByProjectID(projectID uint, filter TaskFilter, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task and, through FK cascades, its comments and attachments
func (r *TaskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// CountByStatus returns task counts per status for a project. Every status
// appears in the result, zero-filled when the project has no such tasks.
func (r *TaskRepository) CountByStatus(projectID uint) (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}
	var rows []row

	err := r.db.Model(&models.Task{}).
		Select("status, count(*) as count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(models.AllTaskStatuses))
	for _, status := range models.AllTaskStatuses {
		counts[status] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// GetOverdue retrieves unfinished tasks whose due date has passed
func (r *TaskRepository) GetOverdue(projectID uint, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ? AND due_date < ? AND status <> ?",
		projectID, now, models.TaskStatusDone).
		Order("due_date").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
