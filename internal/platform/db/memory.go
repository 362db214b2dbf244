package db

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store. It backs the server in development mode
// when no MongoDB URL is configured, and the package tests across the
// repository.
type MemStore struct {
	mu    sync.RWMutex
	colls map[string][]Document
}

func NewMemStore() *MemStore {
	return &MemStore{colls: make(map[string][]Document)}
}

func (s *MemStore) Create(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDoc(doc)
	id := uuid.NewString()
	stored["_id"] = id
	s.colls[collection] = append(s.colls[collection], stored)
	return id, nil
}

func (s *MemStore) Find(_ context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, doc := range s.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		out = append(out, cloneDoc(doc))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemStore) UpdateByID(_ context.Context, collection string, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.colls[collection] {
		if doc["_id"] == id {
			for k, v := range fields {
				doc[k] = v
			}
			return nil
		}
	}
	return ErrNotFound
}

func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

// cloneDoc keeps callers from mutating stored documents through returned or
// retained maps. Nested values are shared; repositories treat documents as
// immutable after creation.
func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
