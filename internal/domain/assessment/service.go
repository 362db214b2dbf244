package assessment

import (
	"context"
	"time"
)

type Service struct {
	repo AssessmentRepository
	now  func() time.Time
}

func NewService(repo AssessmentRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit scores the questionnaire and persists one assessment owned by the
// given subject. Identical features score identically but every call stores
// a new document with a fresh id.
func (s *Service) Submit(ctx context.Context, subject Subject, f Features, notes string) (*Assessment, error) {
	probability, label := Score(f)

	patientID := subject.PatientID
	if patientID == "" {
		patientID = UnknownPatient
	}

	a := &Assessment{
		PatientID:   patientID,
		Source:      subject.Source,
		Features:    f,
		Score:       probability,
		Probability: probability,
		ResultLabel: label,
		Notes:       notes,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// ListByPatient returns the assessments owned by one patient.
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Assessment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// ListAll returns every stored assessment. Unpaginated; acceptable at this
// system's size.
func (s *Service) ListAll(ctx context.Context) ([]*Assessment, error) {
	return s.repo.ListAll(ctx)
}

// MarkReviewed completes the assessment's back-references after feedback is
// filed. It is best-effort and non-atomic with the feedback write.
func (s *Service) MarkReviewed(ctx context.Context, assessmentID, doctorID, feedbackID string) error {
	return s.repo.SetReview(ctx, assessmentID, doctorID, feedbackID)
}
