package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/logging/logger"
)

// UserService exposes profile lookups and updates.
type UserService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewUserService creates a new user service instance.
func NewUserService(d *data.Data, log *logger.Logger) *UserService {
	return &UserService{data: d, logger: log}
}

// Get returns any user's public profile by ID.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*repository.User, error) {
	user, err := s.data.UserRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes a user's name and avatar. Only the user
// themselves may do this.
func (s *UserService) UpdateProfile(ctx context.Context, caller, id primitive.ObjectID, name string, avatar *string) (*repository.User, error) {
	if caller != id {
		return nil, ErrForbidden
	}

	user, err := s.data.UserRepo.UpdateProfile(ctx, id, name, avatar)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
