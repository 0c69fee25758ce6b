package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return &task, nil
}

// ListByOwner returns the owner's tasks, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes the mutable columns of task. Owner and creation time are
// never written.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"updated_at":  task.UpdatedAt,
		})

	if res.Error != nil {
		return fmt.Errorf("update task %s: %w", task.ID, res.Error)
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete task %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
