package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasksphere/server/logging/logger"
)

// ChatMessage is one mentor exchange: the user's message, the advice
// returned, and the task titles that were in scope at the time.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Message   string             `bson:"message" json:"message"`
	Response  string             `bson:"response" json:"response"`
	Tasks     []string           `bson:"tasks" json:"tasks"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// ChatRepository defines the interface for mentor chat history.
type ChatRepository interface {
	Append(ctx context.Context, msg *ChatMessage) (*ChatMessage, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*ChatMessage, int64, error)
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type chatRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewChatRepository creates a new chat history repository instance.
func NewChatRepository(db *mongo.Database, log *logger.Logger) ChatRepository {
	collection := db.Collection("chat_history")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warnf(ctx, "failed to create index on chat_history: %v", err)
	}

	return &chatRepository{
		collection: collection,
		logger:     log,
	}
}

// Append records one mentor exchange.
func (r *chatRepository) Append(ctx context.Context, msg *ChatMessage) (*ChatMessage, error) {
	msg.ID = primitive.NewObjectID()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if msg.Tasks == nil {
		msg.Tasks = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		r.logger.Errorf(ctx, "failed to append chat message: %v", err)
		return nil, fmt.Errorf("failed to append chat message: %w", err)
	}
	return msg, nil
}

// ListByOwner returns a page of the owner's history, newest first,
// along with the total count.
func (r *chatRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*ChatMessage, int64, error) {
	if limit <= 0 || limit > pageLimit {
		limit = pageLimit
	}
	if skip < 0 {
		skip = 0
	}

	filter := ownerScoped(owner)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Errorf(ctx, "failed to count chat history: %v", err)
		return nil, 0, fmt.Errorf("failed to count chat history: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Errorf(ctx, "failed to list chat history: %v", err)
		return nil, 0, fmt.Errorf("failed to list chat history: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]*ChatMessage, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("failed to decode chat history: %w", err)
	}
	return messages, total, nil
}

// DeleteByOwner clears the owner's history.
func (r *chatRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, ownerScoped(owner))
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete chat history for %s: %v", owner.Hex(), err)
		return 0, fmt.Errorf("failed to delete chat history: %w", err)
	}
	return result.DeletedCount, nil
}
