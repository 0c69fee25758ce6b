package client

import (
	"context"
	"sync"

	dto "task-tracker.com/task-tracker/internal/data_models"
	model "task-tracker.com/task-tracker/internal/models"
)

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Store mirrors the caller's task list. It changes only after the server
// accepted a mutation, merging the response by task id instead of
// refetching the whole list.
type Store struct {
	api TaskAPI

	mu    sync.RWMutex
	tasks []model.Task
}

func NewStore(api TaskAPI) *Store {
	return &Store{api: api}
}

func (s *Store) Refresh(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *Store) Create(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	task, err := s.api.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{*task}, s.tasks...)
	s.mu.Unlock()
	return task, nil
}

func (s *Store) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.api.UpdateTask(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = *task
			break
		}
	}
	s.mu.Unlock()
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	s.tasks = kept
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the mirrored list, newest first.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

// Reset drops the mirrored list, e.g. on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	s.tasks = nil
	s.mu.Unlock()
}
