package email

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tasksphere/server/concurrency/worker"
	"github.com/tasksphere/server/logging/logger"
)

// Notifier delivers account emails asynchronously. Sends go through a
// worker pool so the request path never waits on the relay, and a
// circuit breaker so a dead relay cannot stack up goroutines.
type Notifier struct {
	sender  Sender
	pool    *worker.Pool
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewNotifier creates a notifier around the given sender. A nil sender
// is allowed; delivery then degrades to a logged no-op so the reset
// flow still succeeds (the token is considered issued either way).
func NewNotifier(sender Sender, pool *worker.Pool, log *logger.Logger) *Notifier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "email",
		Interval: 5 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})

	return &Notifier{
		sender:  sender,
		pool:    pool,
		breaker: cb,
		logger:  log,
	}
}

// SendPasswordReset queues the password-reset email carrying the raw
// token link. Failures are logged, never returned: per the reset
// contract the token counts as issued whether or not delivery works.
func (n *Notifier) SendPasswordReset(ctx context.Context, recipient, name, resetLink string) {
	if n.sender == nil {
		n.logger.Warn(ctx, "email sender not configured, password reset email not sent")
		return
	}

	msg := Message{
		Subject: "Password Reset Request",
		Body: fmt.Sprintf("Hello %s,\n\n"+
			"Click the link below to reset your password: %s\n\n"+
			"This link will expire in 1 hour.\n\n"+
			"If you did not request a password reset, please ignore this email.\n\n"+
			"TaskSphere Team", name, resetLink),
	}

	err := n.pool.Submit(func() error {
		_, err := n.breaker.Execute(func() (any, error) {
			id, err := n.sender.Send(recipient, msg)
			return id, err
		})
		if err != nil {
			n.logger.Errorf(ctx, "failed to send password reset email to %s: %v", recipient, err)
			return err
		}
		n.logger.Infof(ctx, "password reset email sent to %s", recipient)
		return nil
	})
	if err != nil {
		n.logger.Errorf(ctx, "failed to queue password reset email to %s: %v", recipient, err)
	}
}
