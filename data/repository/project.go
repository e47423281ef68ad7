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

// Project represents a project document. Every project belongs to
// exactly one user.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Color       string             `bson:"color" json:"color"`
	Icon        string             `bson:"icon" json:"icon"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ProjectUpdate carries the replacement field values for an update.
type ProjectUpdate struct {
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Color       string `bson:"color"`
	Icon        string `bson:"icon"`
}

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	List(ctx context.Context, owner primitive.ObjectID) ([]*Project, error)
	Create(ctx context.Context, project *Project) (*Project, error)
	Get(ctx context.Context, owner, id primitive.ObjectID) (*Project, error)
	Update(ctx context.Context, owner, id primitive.ObjectID, update *ProjectUpdate) (*Project, error)
	Delete(ctx context.Context, owner, id primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

type projectRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewProjectRepository creates a new project repository instance.
func NewProjectRepository(db *mongo.Database, log *logger.Logger) ProjectRepository {
	collection := db.Collection("projects")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warnf(ctx, "failed to create index on projects.user_id: %v", err)
	}

	return &projectRepository{
		collection: collection,
		logger:     log,
	}
}

// List returns the owner's projects, newest first, capped at pageLimit.
func (r *projectRepository) List(ctx context.Context, owner primitive.ObjectID) ([]*Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(pageLimit)

	cursor, err := r.collection.Find(ctx, ownerScoped(owner), opts)
	if err != nil {
		r.logger.Errorf(ctx, "failed to list projects: %v", err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := make([]*Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// Create inserts a new project for the owner carried on it.
func (r *projectRepository) Create(ctx context.Context, project *Project) (*Project, error) {
	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		r.logger.Errorf(ctx, "failed to create project: %v", err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	r.logger.Infof(ctx, "project created: %s", project.ID.Hex())
	return project, nil
}

// Get retrieves one of the owner's projects by ID.
func (r *projectRepository) Get(ctx context.Context, owner, id primitive.ObjectID) (*Project, error) {
	var project Project
	err := r.collection.FindOne(ctx, ownerScoped(owner, id)).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to get project %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// Update replaces the project's mutable fields and returns the
// post-update document.
func (r *projectRepository) Update(ctx context.Context, owner, id primitive.ObjectID, update *ProjectUpdate) (*Project, error) {
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
		r.logger.Errorf(ctx, "failed to update project %s: %v", id.Hex(), result.Err())
		return nil, fmt.Errorf("failed to update project: %w", result.Err())
	}

	var updated Project
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated project: %w", err)
	}
	return &updated, nil
}

// Delete removes one of the owner's projects.
func (r *projectRepository) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, ownerScoped(owner, id))
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete project %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "project deleted: %s", id.Hex())
	return nil
}

// DeleteByOwner removes all of the owner's projects. Used by the
// account-deletion cascade.
func (r *projectRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, ownerScoped(owner))
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete projects for %s: %v", owner.Hex(), err)
		return 0, fmt.Errorf("failed to delete projects: %w", err)
	}
	return result.DeletedCount, nil
}
