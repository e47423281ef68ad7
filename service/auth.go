package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/crypto"
	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/email"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/security/jwt"
)

// resetTokenTTL bounds how long an issued reset token stays valid.
const resetTokenTTL = time.Hour

// AuthService implements registration, login, the password-reset flow
// and account deletion.
type AuthService struct {
	data        *data.Data
	tokens      *jwt.TokenManager
	notifier    *email.Notifier
	frontendURL string
	logger      *logger.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(d *data.Data, tm *jwt.TokenManager, notifier *email.Notifier, frontendURL string, log *logger.Logger) *AuthService {
	return &AuthService{
		data:        d,
		tokens:      tm,
		notifier:    notifier,
		frontendURL: frontendURL,
		logger:      log,
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user and returns a signed access token.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (string, error) {
	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.data.UserRepo.Create(ctx, &repository.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: hashed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.tokens.GenerateAccessToken(user.ID.Hex())
}

// Login verifies credentials and returns a signed access token.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := s.data.UserRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := crypto.ComparePassword(user.HashedPassword, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateAccessToken(user.ID.Hex())
}

// ForgotPasswordResult reports the outcome of a reset request. The
// message is identical whether or not an account matched.
type ForgotPasswordResult struct {
	Message    string
	Success    bool
	ResetToken string
}

const forgotPasswordMessage = "If an account with that email and name exists, a password reset link has been sent."

// ForgotPassword starts the reset flow. When email and name match an
// account, a fresh token is stored (hashed) with a one-hour expiry and
// the reset link is mailed out; the plain token is also returned.
// Otherwise the same message comes back with Success=false and no
// token.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr, name string) (*ForgotPasswordResult, error) {
	user, err := s.data.UserRepo.FindByEmailAndName(ctx, emailAddr, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ForgotPasswordResult{Message: forgotPasswordMessage, Success: false}, nil
		}
		return nil, err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.data.UserRepo.SetResetToken(ctx, user.ID, crypto.HashResetToken(token), expires); err != nil {
		return nil, err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	s.notifier.SendPasswordReset(ctx, user.Email, user.Name, resetLink)

	return &ForgotPasswordResult{
		Message:    forgotPasswordMessage,
		Success:    true,
		ResetToken: token,
	}, nil
}

// ResetPassword completes the flow: it hashes the presented token,
// finds the matching unexpired reset, and replaces the password. The
// stored reset fields are cleared so a token works once.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.data.UserRepo.FindByResetToken(ctx, crypto.HashResetToken(token), time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.data.UserRepo.ResetPassword(ctx, user.ID, hashed)
}

// Me returns the authenticated user's record.
func (s *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*repository.User, error) {
	user, err := s.data.UserRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own: tasks first,
// then projects, then chat history, then the user record.
func (s *AuthService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	tasks, err := s.data.TaskRepo.DeleteByOwner(ctx, id)
	if err != nil {
		return err
	}
	projects, err := s.data.ProjectRepo.DeleteByOwner(ctx, id)
	if err != nil {
		return err
	}
	chats, err := s.data.ChatRepo.DeleteByOwner(ctx, id)
	if err != nil {
		return err
	}

	if err := s.data.UserRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Infof(ctx, "account %s deleted (%d tasks, %d projects, %d chat messages)",
		id.Hex(), tasks, projects, chats)
	return nil
}
