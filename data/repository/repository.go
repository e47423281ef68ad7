// Package repository provides MongoDB-backed persistence. All project,
// task and chat queries pass through ownerScoped, which binds the
// filter to the owning user; a record under another owner is therefore
// indistinguishable from a record that does not exist.
package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound reports that no owned record matched.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail reports a unique-index violation on users.email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// pageLimit caps every list operation.
const pageLimit = 100

// ownerScoped builds the filter every owned query must use. The owner
// predicate is the sole authorization mechanism.
func ownerScoped(owner primitive.ObjectID, id ...primitive.ObjectID) bson.M {
	filter := bson.M{"user_id": owner}
	if len(id) > 0 {
		filter["_id"] = id[0]
	}
	return filter
}
