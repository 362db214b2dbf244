package db

import (
	"context"
	"testing"
)

func TestMemStoreCreateAssignsDistinctIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	id1, err := s.Create(ctx, CollAssessments, Document{"patient_id": "p1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id2, err := s.Create(ctx, CollAssessments, Document{"patient_id": "p1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id1 == "" || id2 == "" {
		t.Fatal("expected non-empty ids")
	}
	if id1 == id2 {
		t.Errorf("expected distinct ids, got %q twice", id1)
	}
}

func TestMemStoreFindEqualityFilter(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, _ = s.Create(ctx, CollAssessments, Document{"patient_id": "p1", "score": 0.5})
	_, _ = s.Create(ctx, CollAssessments, Document{"patient_id": "p2", "score": 0.5})
	_, _ = s.Create(ctx, CollAssessments, Document{"patient_id": "p1", "score": 0.9})

	docs, err := s.Find(ctx, CollAssessments, Filter{"patient_id": "p1"}, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, d := range docs {
		if d["patient_id"] != "p1" {
			t.Errorf("filter leaked document for %v", d["patient_id"])
		}
	}
}

func TestMemStoreFindLimit(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = s.Create(ctx, CollSessions, Document{"role": "patient"})
	}

	docs, err := s.Find(ctx, CollSessions, Filter{"role": "patient"}, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected limit of 1 document, got %d", len(docs))
	}
}

func TestMemStoreFindEmptyFilterMatchesAll(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, _ = s.Create(ctx, CollAssessments, Document{"patient_id": "p1"})
	_, _ = s.Create(ctx, CollAssessments, Document{"patient_id": "p2"})

	docs, err := s.Find(ctx, CollAssessments, Filter{}, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected every document, got %d", len(docs))
	}
}

func TestMemStoreUpdateByID(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	id, _ := s.Create(ctx, CollAssessments, Document{"patient_id": "p1"})

	if err := s.UpdateByID(ctx, CollAssessments, id, Document{"reviewed_by": "d1"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	docs, _ := s.Find(ctx, CollAssessments, Filter{"_id": id}, 1)
	if len(docs) != 1 {
		t.Fatalf("expected document back, got %d", len(docs))
	}
	if docs[0]["reviewed_by"] != "d1" {
		t.Errorf("expected reviewed_by to be set, got %v", docs[0]["reviewed_by"])
	}
}

func TestMemStoreUpdateByIDMissing(t *testing.T) {
	s := NewMemStore()

	err := s.UpdateByID(context.Background(), CollAssessments, "no-such-id", Document{"x": 1})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStoreReturnedDocumentsAreCopies(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	id, _ := s.Create(ctx, CollPatients, Document{"name": "Ada"})

	docs, _ := s.Find(ctx, CollPatients, Filter{"_id": id}, 1)
	docs[0]["name"] = "mutated"

	again, _ := s.Find(ctx, CollPatients, Filter{"_id": id}, 1)
	if again[0]["name"] != "Ada" {
		t.Errorf("stored document was mutated through a returned copy")
	}
}
