package model

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	Description string               `gorm:"not null;default:''" json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	UserID      string               `gorm:"size:36;not null;index:idx_tasks_owner_created,priority:1" json:"userId"`
	CreatedAt   time.Time            `gorm:"not null;index:idx_tasks_owner_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"not null" json:"updatedAt"`
}

// OwnedBy reports whether userID is the task's owner.
func (t *Task) OwnedBy(userID string) bool {
	return t.UserID == userID
}
