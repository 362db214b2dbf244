package assessment

import (
	"context"
	"fmt"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

type repoStore struct{ store db.Store }

func NewRepo(store db.Store) AssessmentRepository {
	return &repoStore{store: store}
}

func (r *repoStore) Create(ctx context.Context, a *Assessment) (string, error) {
	id, err := r.store.Create(ctx, db.CollAssessments, a.document())
	if err != nil {
		return "", fmt.Errorf("create assessment: %w", err)
	}
	return id, nil
}

func (r *repoStore) ListByPatient(ctx context.Context, patientID string) ([]*Assessment, error) {
	docs, err := r.store.Find(ctx, db.CollAssessments, db.Filter{"patient_id": patientID}, 0)
	if err != nil {
		return nil, fmt.Errorf("list assessments by patient: %w", err)
	}
	return collect(docs), nil
}

func (r *repoStore) ListAll(ctx context.Context) ([]*Assessment, error) {
	docs, err := r.store.Find(ctx, db.CollAssessments, db.Filter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return collect(docs), nil
}

func (r *repoStore) SetReview(ctx context.Context, id, doctorID, feedbackID string) error {
	err := r.store.UpdateByID(ctx, db.CollAssessments, id, db.Document{
		"reviewed_by": doctorID,
		"feedback_id": feedbackID,
	})
	if err != nil {
		return fmt.Errorf("set review on assessment %s: %w", id, err)
	}
	return nil
}

func collect(docs []db.Document) []*Assessment {
	items := make([]*Assessment, 0, len(docs))
	for _, doc := range docs {
		items = append(items, fromDocument(doc))
	}
	return items
}
