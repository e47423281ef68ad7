package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/mentor"
)

// MentorService answers advice queries and keeps the per-user chat
// history.
type MentorService struct {
	data    *data.Data
	advisor mentor.Advisor
	logger  *logger.Logger
}

// NewMentorService creates a new mentor service instance.
func NewMentorService(d *data.Data, advisor mentor.Advisor, log *logger.Logger) *MentorService {
	return &MentorService{data: d, advisor: advisor, logger: log}
}

// Advise generates advice for the query and records the exchange in
// the caller's history.
func (s *MentorService) Advise(ctx context.Context, owner primitive.ObjectID, q mentor.Query) (string, error) {
	response := s.advisor.Advise(q)

	if _, err := s.data.ChatRepo.Append(ctx, &repository.ChatMessage{
		UserID:   owner,
		Message:  q.Text,
		Response: response,
		Tasks:    q.Tasks,
	}); err != nil {
		return "", err
	}

	return response, nil
}

// History returns a page of the caller's chat history with the total
// message count.
func (s *MentorService) History(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*repository.ChatMessage, int64, error) {
	return s.data.ChatRepo.ListByOwner(ctx, owner, limit, skip)
}

// ClearHistory removes all of the caller's chat history.
func (s *MentorService) ClearHistory(ctx context.Context, owner primitive.ObjectID) error {
	_, err := s.data.ChatRepo.DeleteByOwner(ctx, owner)
	return err
}
