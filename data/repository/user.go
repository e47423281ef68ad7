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

// User represents a user document.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Avatar         *string            `bson:"avatar,omitempty" json:"avatar,omitempty"`

	// Pending password reset; only the SHA-256 hash is stored.
	ResetPasswordToken   *string    `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailAndName(ctx context.Context, email, name string) (*User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *string) (*User, error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *mongo.Database, log *logger.Logger) UserRepository {
	collection := db.Collection("users")

	// Unique index backs the email-uniqueness invariant.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warnf(ctx, "failed to create unique index on users.email: %v", err)
	}

	return &userRepository{
		collection: collection,
		logger:     log,
	}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *User) (*User, error) {
	user.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		r.logger.Errorf(ctx, "failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infof(ctx, "user created: %s", user.ID.Hex())
	return user, nil
}

// FindByID retrieves a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByEmailAndName retrieves a user matching both email and name
// exactly. Used by the password-reset flow.
func (r *userRepository) FindByEmailAndName(ctx context.Context, email, name string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email, "name": name})
}

// FindByResetToken retrieves the user holding an unexpired reset-token
// hash.
func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error) {
	return r.findOne(ctx, bson.M{
		"reset_password_token":   tokenHash,
		"reset_password_expires": bson.M{"$gt": now},
	})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to find user: %v", err)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the user's mutable profile fields.
func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *string) (*User, error) {
	update := bson.M{"$set": bson.M{
		"name":   name,
		"avatar": avatar,
	}}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to update user %s: %v", id.Hex(), result.Err())
		return nil, fmt.Errorf("failed to update user: %w", result.Err())
	}

	var updated User
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated user: %w", err)
	}
	return &updated, nil
}

// SetResetToken stores a pending password reset on the user.
func (r *userRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Errorf(ctx, "failed to set reset token for %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword replaces the password hash and clears the pending
// reset in one atomic update.
func (r *userRepository) ResetPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	update := bson.M{
		"$set":   bson.M{"hashed_password": hashedPassword},
		"$unset": bson.M{"reset_password_token": "", "reset_password_expires": ""},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Errorf(ctx, "failed to reset password for %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "password reset completed for %s", id.Hex())
	return nil
}

// Delete removes a user document.
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete user %s: %v", id.Hex(), err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "user deleted: %s", id.Hex())
	return nil
}
