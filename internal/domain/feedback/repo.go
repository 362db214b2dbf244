package feedback

import (
	"context"
	"fmt"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

type FeedbackRepository interface {
	// Create stores a feedback and returns the assigned id.
	Create(ctx context.Context, f *Feedback) (string, error)
}

type repoStore struct{ store db.Store }

func NewRepo(store db.Store) FeedbackRepository {
	return &repoStore{store: store}
}

func (r *repoStore) Create(ctx context.Context, f *Feedback) (string, error) {
	id, err := r.store.Create(ctx, db.CollFeedback, f.document())
	if err != nil {
		return "", fmt.Errorf("create feedback: %w", err)
	}
	return id, nil
}
