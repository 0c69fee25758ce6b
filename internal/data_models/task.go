package dto

import "task-tracker.com/task-tracker/internal/constants"

type CreateTaskRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      *constants.TaskStatus `json:"status"`
}

// UpdateTaskRequest carries a partial update. A nil field is left unchanged.
type UpdateTaskRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Status      *constants.TaskStatus `json:"status"`
}
