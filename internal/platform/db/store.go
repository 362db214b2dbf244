package db

import (
	"context"
	"errors"
)

// Collection names. Each role has its own user collection, so the same email
// may register once as a patient and once as a doctor.
const (
	CollPatients    = "patient"
	CollDoctors     = "doctor"
	CollSessions    = "session"
	CollAssessments = "assessment"
	CollFeedback    = "feedback"
)

// Collections returns every collection the service writes to.
func Collections() []string {
	return []string{CollPatients, CollDoctors, CollSessions, CollAssessments, CollFeedback}
}

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("document not found")

// Document is a record as stored in a collection. The store enforces no
// schema; callers validate their fields before writing.
type Document map[string]interface{}

// Filter matches documents by exact field equality. An empty filter matches
// every document in the collection.
type Filter map[string]interface{}

// Store is the document store gateway consumed by all repositories.
// Implementations provide per-document write atomicity and read-after-write
// consistency for the handle issuing both. There are no transactions spanning
// documents and no retries; storage failures propagate to the caller.
type Store interface {
	// Create inserts doc into the named collection and returns the
	// store-assigned id.
	Create(ctx context.Context, collection string, doc Document) (string, error)

	// Find returns documents matching every field in filter exactly. A
	// limit <= 0 returns all matches. Result order is unspecified. Returned
	// documents carry their id under the "_id" key as a string.
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)

	// UpdateByID sets the given fields on the document with the given id.
	// Returns ErrNotFound when no such document exists.
	UpdateByID(ctx context.Context, collection string, id string, fields Document) error
}
