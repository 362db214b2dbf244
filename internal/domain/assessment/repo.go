package assessment

import "context"

type AssessmentRepository interface {
	// Create stores an assessment and returns the assigned id.
	Create(ctx context.Context, a *Assessment) (string, error)
	// ListByPatient returns every assessment owned by patientID.
	ListByPatient(ctx context.Context, patientID string) ([]*Assessment, error)
	// ListAll returns every assessment in the collection.
	ListAll(ctx context.Context) ([]*Assessment, error)
	// SetReview stamps the reviewed_by/feedback_id back-references.
	SetReview(ctx context.Context, id, doctorID, feedbackID string) error
}
