package services

import (
	"context"
	"sort"
	"sync"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

// memTaskStore is an in-memory TaskStore. It hands out copies so the service
// cannot mutate stored records without calling Update.
type memTaskStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[string]model.Task)}
}

func (m *memTaskStore) Create(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) FindByID(_ context.Context, id string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return &task, nil
}

func (m *memTaskStore) ListByOwner(_ context.Context, ownerID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []model.Task{}
	for _, task := range m.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (m *memTaskStore) Update(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.tasks[task.ID]
	if !ok {
		return apperrors.ErrTaskNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.UpdatedAt = task.UpdatedAt
	m.tasks[task.ID] = stored
	return nil
}

func (m *memTaskStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return apperrors.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}
