package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/logging/logger"
)

// ProjectInput carries the mutable fields of a project.
type ProjectInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// ProjectService exposes owner-scoped project CRUD.
type ProjectService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewProjectService creates a new project service instance.
func NewProjectService(d *data.Data, log *logger.Logger) *ProjectService {
	return &ProjectService{data: d, logger: log}
}

// List returns the owner's projects.
func (s *ProjectService) List(ctx context.Context, owner primitive.ObjectID) ([]*repository.Project, error) {
	return s.data.ProjectRepo.List(ctx, owner)
}

// Create adds a project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, owner primitive.ObjectID, in *ProjectInput) (*repository.Project, error) {
	return s.data.ProjectRepo.Create(ctx, &repository.Project{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		UserID:      owner,
	})
}

// Get returns one of the owner's projects.
func (s *ProjectService) Get(ctx context.Context, owner, id primitive.ObjectID) (*repository.Project, error) {
	project, err := s.data.ProjectRepo.Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Update replaces the project's mutable fields. Submitting the same
// values again succeeds and returns the unchanged document.
func (s *ProjectService) Update(ctx context.Context, owner, id primitive.ObjectID, in *ProjectInput) (*repository.Project, error) {
	project, err := s.data.ProjectRepo.Update(ctx, owner, id, &repository.ProjectUpdate{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete removes one of the owner's projects. Tasks referencing it
// keep their dangling project_id.
func (s *ProjectService) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	if err := s.data.ProjectRepo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
