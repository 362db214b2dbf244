package feedback

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidSeverity = errors.New("severity must be Low, Moderate or High")
	ErrMissingFields   = errors.New("assessment_id and message are required")
)

// AssessmentLinker completes an assessment's reviewed_by/feedback_id
// back-references once feedback is filed for it.
type AssessmentLinker interface {
	MarkReviewed(ctx context.Context, assessmentID, doctorID, feedbackID string) error
}

type Service struct {
	repo   FeedbackRepository
	linker AssessmentLinker
	now    func() time.Time
}

func NewService(repo FeedbackRepository, linker AssessmentLinker) *Service {
	return &Service{repo: repo, linker: linker, now: time.Now}
}

// Submission is a doctor's feedback request, validated before persistence.
type Submission struct {
	AssessmentID    string
	Message         string
	Severity        string
	Recommendations []string
}

// Submit persists one feedback document for the acting doctor. The
// assessment id is not checked to exist; an orphaned feedback is accepted.
// When the assessment does exist, its back-references are completed after
// the write. The two writes are not atomic; a failed link leaves the
// feedback standing.
func (s *Service) Submit(ctx context.Context, doctorID string, sub Submission) (*Feedback, error) {
	if sub.AssessmentID == "" || sub.Message == "" {
		return nil, ErrMissingFields
	}

	f := &Feedback{
		DoctorID:        doctorID,
		AssessmentID:    sub.AssessmentID,
		Message:         sub.Message,
		Recommendations: sub.Recommendations,
		CreatedAt:       s.now().UTC(),
	}
	if sub.Severity != "" {
		severity, err := ParseSeverity(sub.Severity)
		if err != nil {
			return nil, err
		}
		f.Severity = severity
	}
	if f.Recommendations == nil {
		f.Recommendations = []string{}
	}

	id, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id

	if s.linker != nil {
		_ = s.linker.MarkReviewed(ctx, f.AssessmentID, doctorID, id)
	}

	return f, nil
}
