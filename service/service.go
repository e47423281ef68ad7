// Package service holds the business logic between the HTTP handlers
// and the repositories. Handlers translate the sentinel errors below
// into HTTP responses; repositories never leak past this layer.
package service

import (
	"errors"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/email"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/mentor"
	"github.com/tasksphere/server/security/jwt"
)

var (
	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUnauthenticated reports a missing or invalid access token.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrForbidden reports an authenticated caller acting on a
	// resource they may not touch.
	ErrForbidden = errors.New("not allowed to modify this resource")

	// ErrNotFound reports a missing record. Cross-owner access maps
	// here too, so existence is never revealed.
	ErrNotFound = errors.New("not found")

	// ErrInvalidResetToken reports an unknown or expired reset token.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// Service aggregates the business-logic services.
type Service struct {
	Auth    *AuthService
	User    *UserService
	Project *ProjectService
	Task    *TaskService
	Mentor  *MentorService
}

// New wires the services against the data layer and collaborators.
func New(d *data.Data, tm *jwt.TokenManager, notifier *email.Notifier, frontendURL string, log *logger.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(d, tm, notifier, frontendURL, log),
		User:    NewUserService(d, log),
		Project: NewProjectService(d, log),
		Task:    NewTaskService(d, log),
		Mentor:  NewMentorService(d, mentor.NewCannedAdvisor(), log),
	}
}
