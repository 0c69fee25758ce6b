package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

const maxTitleLength = 200

// TaskStore is the persistence the task service needs. Implementations
// return apperrors.ErrTaskNotFound for unknown ids.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
}

// TaskService mediates every read and write of a task. A task is only ever
// visible to the user that created it.
type TaskService struct {
	repo        TaskStore
	hideForeign bool
	now         func() time.Time
}

// NewTaskService builds the service. With hideForeign set, a caller probing
// somebody else's task gets ErrTaskNotFound instead of ErrTaskForbidden.
func NewTaskService(repo TaskStore, hideForeign bool) *TaskService {
	return &TaskService{
		repo:        repo,
		hideForeign: hideForeign,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	callerID string,
	title string,
	description string,
	status *constants.TaskStatus,
) (*model.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	taskStatus := constants.StatusPending
	if status != nil {
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		taskStatus = *status
	}

	now := s.now()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      taskStatus,
		UserID:      callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, callerID string) ([]model.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// GetTask returns the task if callerID owns it. Existence is checked before
// ownership.
func (s *TaskService) GetTask(ctx context.Context, id, callerID string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.OwnedBy(callerID) {
		if s.hideForeign {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.ErrTaskForbidden
	}

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id, callerID string, patch TaskPatch) (*model.Task, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	task.UpdatedAt = s.nextUpdatedAt(task.UpdatedAt)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, callerID string) error {
	if _, err := s.GetTask(ctx, id, callerID); err != nil {
		return err
	}

	// A concurrent delete between the check and here surfaces as ErrTaskNotFound.
	return s.repo.Delete(ctx, id)
}

// nextUpdatedAt keeps updatedAt strictly increasing even if the clock has not
// advanced since the previous write.
func (s *TaskService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

func validatePatch(patch *TaskPatch) error {
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return err
		}
		patch.Title = &title
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", apperrors.ErrTitleTooLong
	}
	return title, nil
}
