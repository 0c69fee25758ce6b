package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const (
	alice = "alice-id"
	bob   = "bob-id"
)

func ptr[T any](v T) *T {
	return &v
}

// stepClock advances by step on every reading.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(":memory:", logger.Silent)
	require.NoError(t, err)

	return db
}

var stores = map[string]func(t *testing.T) TaskStore{
	"memory": func(*testing.T) TaskStore { return newMemTaskStore() },
	"sqlite": func(t *testing.T) TaskStore { return repository.NewTaskRepository(setupTestDB(t)) },
}

func newTestTaskService(t *testing.T, store TaskStore) *TaskService {
	t.Helper()

	svc := NewTaskService(store, false)
	clock := &stepClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
	svc.now = clock.Now
	return svc
}

func forEachStore(t *testing.T, fn func(t *testing.T, svc *TaskService)) {
	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestTaskService(t, factory(t)))
		})
	}
}

func TestTaskService_CreateDefaultsToPending(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "Buy milk", "", nil)
		require.NoError(t, err)

		assert.NotEmpty(t, task.ID)
		assert.Equal(t, constants.StatusPending, task.Status)
		assert.Equal(t, alice, task.UserID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
	})
}

func TestTaskService_CreateKeepsSuppliedStatus(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		for _, status := range constants.TaskStatuses {
			task, err := svc.CreateTask(context.Background(), alice, "Task", "desc", ptr(status))
			require.NoError(t, err)
			assert.Equal(t, status, task.Status)

			stored, err := svc.GetTask(context.Background(), task.ID, alice)
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
			assert.Equal(t, "desc", stored.Description)
		}
	})
}

func TestTaskService_CreateRejectsEmptyTitle(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := svc.CreateTask(ctx, alice, title, "desc", nil)
			assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
			assert.True(t, apperrors.IsValidation(err))
		}

		tasks, err := svc.ListTasks(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskService_CreateTrimsAndLimitsTitle(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "  Buy milk  ", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)

		long := make([]rune, maxTitleLength+1)
		for i := range long {
			long[i] = 'é'
		}
		_, err = svc.CreateTask(ctx, alice, string(long), "", nil)
		assert.ErrorIs(t, err, apperrors.ErrTitleTooLong)

		_, err = svc.CreateTask(ctx, alice, string(long[:maxTitleLength]), "", nil)
		assert.NoError(t, err)
	})
}

func TestTaskService_RejectsUnknownStatus(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		for _, status := range []constants.TaskStatus{"", "done", "PENDING", "in_progress"} {
			_, err := svc.CreateTask(ctx, alice, "Task", "", ptr(status))
			assert.ErrorIs(t, err, apperrors.ErrInvalidStatus, "create with %q", status)
		}

		task, err := svc.CreateTask(ctx, alice, "Task", "", nil)
		require.NoError(t, err)

		_, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Status: ptr(constants.TaskStatus("archived"))})
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

		stored, err := svc.GetTask(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusPending, stored.Status)
	})
}

func TestTaskService_OnlyOwnerHasAccess(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "Private", "", nil)
		require.NoError(t, err)

		_, err = svc.GetTask(ctx, task.ID, bob)
		assert.ErrorIs(t, err, apperrors.ErrTaskForbidden)

		_, err = svc.UpdateTask(ctx, task.ID, bob, TaskPatch{Title: ptr("Hijacked")})
		assert.ErrorIs(t, err, apperrors.ErrTaskForbidden)

		err = svc.DeleteTask(ctx, task.ID, bob)
		assert.ErrorIs(t, err, apperrors.ErrTaskForbidden)

		stored, err := svc.GetTask(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "Private", stored.Title)

		_, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Title: ptr("Still private")})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTask(ctx, task.ID, alice))
	})
}

func TestTaskService_MissingTaskIsNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()
		missing := uuid.NewString()

		for _, caller := range []string{alice, bob} {
			_, err := svc.GetTask(ctx, missing, caller)
			assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

			_, err = svc.UpdateTask(ctx, missing, caller, TaskPatch{Title: ptr("x")})
			assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

			err = svc.DeleteTask(ctx, missing, caller)
			assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		}
	})
}

func TestTaskService_ListIsScopedAndNewestFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		first, err := svc.CreateTask(ctx, alice, "first", "", nil)
		require.NoError(t, err)
		_, err = svc.CreateTask(ctx, bob, "bob's", "", nil)
		require.NoError(t, err)
		second, err := svc.CreateTask(ctx, alice, "second", "", nil)
		require.NoError(t, err)
		third, err := svc.CreateTask(ctx, alice, "third", "", nil)
		require.NoError(t, err)

		tasks, err := svc.ListTasks(ctx, alice)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, third.ID, tasks[0].ID)
		assert.Equal(t, second.ID, tasks[1].ID)
		assert.Equal(t, first.ID, tasks[2].ID)
		for _, task := range tasks {
			assert.Equal(t, alice, task.UserID)
		}

		empty, err := svc.ListTasks(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestTaskService_UpdateRefreshesUpdatedAt(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "Report", "draft", nil)
		require.NoError(t, err)

		updated, err := svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Status: ptr(constants.StatusCompleted)})
		require.NoError(t, err)
		assert.Equal(t, constants.StatusCompleted, updated.Status)

		stored, err := svc.GetTask(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusCompleted, stored.Status)
		assert.True(t, stored.UpdatedAt.After(task.UpdatedAt))
		assert.True(t, stored.CreatedAt.Equal(task.CreatedAt))
		assert.Equal(t, alice, stored.UserID)
		assert.Equal(t, "Report", stored.Title)
		assert.Equal(t, "draft", stored.Description)
	})
}

func TestTaskService_UpdatedAtAdvancesWithFrozenClock(t *testing.T) {
	svc := NewTaskService(newMemTaskStore(), false)
	frozen := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, alice, "Tick", "", nil)
	require.NoError(t, err)

	prev := task.UpdatedAt
	for i := 0; i < 3; i++ {
		updated, err := svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Description: ptr("again")})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(prev))
		prev = updated.UpdatedAt
	}
}

func TestTaskService_UpdatePartialFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "Title", "Description", ptr(constants.StatusInProgress))
		require.NoError(t, err)

		updated, err := svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Description: ptr("")})
		require.NoError(t, err)
		assert.Equal(t, "Title", updated.Title)
		assert.Equal(t, "", updated.Description)
		assert.Equal(t, constants.StatusInProgress, updated.Status)

		updated, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Title: ptr("  New title ")})
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)

		_, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Title: ptr(" ")})
		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)

		// No enforced workflow: completed can go straight back to pending.
		_, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Status: ptr(constants.StatusCompleted)})
		require.NoError(t, err)
		updated, err = svc.UpdateTask(ctx, task.ID, alice, TaskPatch{Status: ptr(constants.StatusPending)})
		require.NoError(t, err)
		assert.Equal(t, constants.StatusPending, updated.Status)
	})
}

func TestTaskService_DeleteIsPermanent(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		task, err := svc.CreateTask(ctx, alice, "Ephemeral", "", nil)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTask(ctx, task.ID, alice))

		_, err = svc.GetTask(ctx, task.ID, alice)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

		err = svc.DeleteTask(ctx, task.ID, alice)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_EmptyIDIsRejected(t *testing.T) {
	svc := NewTaskService(newMemTaskStore(), false)

	_, err := svc.GetTask(context.Background(), "", alice)
	assert.ErrorIs(t, err, apperrors.ErrTaskIDRequired)
}

func TestTaskService_HideForeignTasks(t *testing.T) {
	svc := NewTaskService(newMemTaskStore(), true)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, alice, "Secret", "", nil)
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, task.ID, bob)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	err = svc.DeleteTask(ctx, task.ID, bob)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = svc.GetTask(ctx, task.ID, alice)
	assert.NoError(t, err)
}

func TestTaskService_Scenario(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *TaskService) {
		ctx := context.Background()

		t1, err := svc.CreateTask(ctx, alice, "Buy milk", "", nil)
		require.NoError(t, err)
		assert.Equal(t, constants.StatusPending, t1.Status)

		tasks, err := svc.ListTasks(ctx, alice)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, t1.ID, tasks[0].ID)

		_, err = svc.GetTask(ctx, t1.ID, bob)
		assert.ErrorIs(t, err, apperrors.ErrTaskForbidden)

		updated, err := svc.UpdateTask(ctx, t1.ID, alice, TaskPatch{Status: ptr(constants.StatusCompleted)})
		require.NoError(t, err)
		assert.Equal(t, constants.StatusCompleted, updated.Status)
		assert.True(t, updated.UpdatedAt.After(t1.UpdatedAt))

		require.NoError(t, svc.DeleteTask(ctx, t1.ID, alice))

		tasks, err = svc.ListTasks(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		_, err = svc.GetTask(ctx, t1.ID, alice)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}
