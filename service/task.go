package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/logging/logger"
)

// TaskInput carries the mutable fields of a task. Status and priority
// default when empty; the project reference is stored unvalidated.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *string
	ProjectID   *primitive.ObjectID
	Tags        []string
	Attachments []string
}

func (in *TaskInput) applyDefaults() {
	if in.Status == "" {
		in.Status = "todo"
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
}

// TaskService exposes owner-scoped task CRUD.
type TaskService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewTaskService creates a new task service instance.
func NewTaskService(d *data.Data, log *logger.Logger) *TaskService {
	return &TaskService{data: d, logger: log}
}

// List returns the owner's tasks.
func (s *TaskService) List(ctx context.Context, owner primitive.ObjectID) ([]*repository.Task, error) {
	return s.data.TaskRepo.List(ctx, owner)
}

// Create adds a task owned by the caller.
func (s *TaskService) Create(ctx context.Context, owner primitive.ObjectID, in *TaskInput) (*repository.Task, error) {
	in.applyDefaults()
	return s.data.TaskRepo.Create(ctx, &repository.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		UserID:      owner,
		ProjectID:   in.ProjectID,
		Tags:        in.Tags,
		Attachments: in.Attachments,
	})
}

// Get returns one of the owner's tasks.
func (s *TaskService) Get(ctx context.Context, owner, id primitive.ObjectID) (*repository.Task, error) {
	task, err := s.data.TaskRepo.Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update replaces the task's mutable fields. Submitting the same
// values again succeeds and returns the unchanged document.
func (s *TaskService) Update(ctx context.Context, owner, id primitive.ObjectID, in *TaskInput) (*repository.Task, error) {
	in.applyDefaults()
	task, err := s.data.TaskRepo.Update(ctx, owner, id, &repository.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ProjectID:   in.ProjectID,
		Tags:        in.Tags,
		Attachments: in.Attachments,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete removes one of the owner's tasks.
func (s *TaskService) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	if err := s.data.TaskRepo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
