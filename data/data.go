// Package data manages the MongoDB connection and aggregates the
// repositories built on it.
package data

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/logging/logger"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	client *mongo.Client
	db     *mongo.Database

	UserRepo    repository.UserRepository
	ProjectRepo repository.ProjectRepository
	TaskRepo    repository.TaskRepository
	ChatRepo    repository.ChatRepository
}

// New creates a new Data instance with a MongoDB connection.
func New(mongoURI, dbName string, log *logger.Logger) (*Data, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Infof(ctx, "connected to MongoDB database %s", dbName)

	db := client.Database(dbName)

	return &Data{
		client:      client,
		db:          db,
		UserRepo:    repository.NewUserRepository(db, log),
		ProjectRepo: repository.NewProjectRepository(db, log),
		TaskRepo:    repository.NewTaskRepository(db, log),
		ChatRepo:    repository.NewChatRepository(db, log),
	}, nil
}

// Close closes the MongoDB connection.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// DB returns the MongoDB database instance.
func (d *Data) DB() *mongo.Database {
	return d.db
}

// Ping verifies the connection is alive.
func (d *Data) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}
