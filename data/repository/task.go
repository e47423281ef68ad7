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

// Task represents a task document. The project reference is a plain
// ObjectID with no referential check on insert.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Status      string              `bson:"status" json:"status"`
	Priority    string              `bson:"priority" json:"priority"`
	DueDate     *string             `bson:"due_date,omitempty" json:"due_date,omitempty"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ProjectID   *primitive.ObjectID `bson:"project_id,omitempty" json:"project_id,omitempty"`
	Tags        []string            `bson:"tags" json:"tags"`
	Attachments []string            `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}

// TaskUpdate carries the replacement field values for an update.
type TaskUpdate struct {
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      string              `bson:"status"`
	Priority    string              `bson:"priority"`
	DueDate     *string             `bson:"due_date"`
	ProjectID   *primitive.ObjectID `bson:"project_id"`
	Tags        []string            `bson:"tags"`
	Attachments []string            `bson:"attachments"`
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	List(ctx context.Context, owner primitive.ObjectID) ([]*Task, error)
	Create(ctx context.Context, task *Task) (*Task, error)
	Get(ctx context.Context, owner, id primitive.ObjectID) (*Task, error)
	Update(ctx context.Context, owner, id primitive.ObjectID, update *TaskUpdate) (*Task, error)
	Delete(ctx context.Context, owner, id primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type taskRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *mongo.Database, log *logger.Logger) TaskRepository {
	collection := db.Collection("tasks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warnf(ctx, "failed to create index on tasks.user_id: %v", err)
	}

	return &taskRepository{
		collection: collection,
		logger:     log,
	}
}

// List returns the owner's tasks, newest first, capped at pageLimit.
func (r *taskRepository) List(ctx context.Context, owner primitive.ObjectID) ([]*Task, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(pageLimit)

	cursor, err := r.collection.Find(ctx, ownerScoped(owner), opts)
	if err != nil {
		r.logger.Errorf(ctx, "failed to list tasks: %v", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a new task for the owner carried on it.
func (r *taskRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now().UTC()
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Attachments == nil {
		task.Attachments = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		r.logger.Errorf(ctx, "failed to create task: %v", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	r.logger.Infof(ctx, "task created: %s", task.ID.Hex())
	return task, nil
}

// Get retrieves one of the owner's tasks by ID.
func (r *taskRepository) Get(ctx context.Context, owner, id primitive.ObjectID) (*Task, error) {
	var task Task
	err := r.collection.FindOne(ctx, ownerScoped(owner, id)).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to get task %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Update replaces the task's mutable fields and returns the
// post-update document.
func (r *taskRepository) Update(ctx context.Context, owner, id primitive.ObjectID, update *TaskUpdate) (*Task, error) {
	if update.Tags == nil {
		update.Tags = []string{}
	}
	if update.Attachments == nil {
		update.Attachments = []string{}
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		ownerScoped(owner, id),
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to update task %s: %v", id.Hex(), result.Err())
		return nil, fmt.Errorf("failed to update task: %w", result.Err())
	}

	var updated Task
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated task: %w", err)
	}
	return &updated, nil
}

// Delete removes one of the owner's tasks.
func (r *taskRepository) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, ownerScoped(owner, id))
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete task %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "task deleted: %s", id.Hex())
	return nil
}

// DeleteByOwner removes all of the owner's tasks. Runs first in the
// account-deletion cascade.
func (r *taskRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, ownerScoped(owner))
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete tasks for %s: %v", owner.Hex(), err)
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return result.DeletedCount, nil
}
