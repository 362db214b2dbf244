package feedback

import (
	"strings"
	"time"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

// Severity is the closed set of feedback severities. It is optional on a
// feedback, but when present must be one of these values.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// ParseSeverity validates a severity string from a request, accepting any
// casing.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "low":
		return SeverityLow, nil
	case "moderate":
		return SeverityModerate, nil
	case "high":
		return SeverityHigh, nil
	default:
		return "", ErrInvalidSeverity
	}
}

// Feedback is a clinician's annotation attached to an assessment by
// reference. The referenced assessment is not checked to exist; an orphaned
// feedback is accepted. Never updated after creation.
type Feedback struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	AssessmentID    string    `json:"assessment_id"`
	Message         string    `json:"message"`
	Severity        Severity  `json:"severity,omitempty"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

func (f *Feedback) document() db.Document {
	doc := db.Document{
		"doctor_id":       f.DoctorID,
		"assessment_id":   f.AssessmentID,
		"message":         f.Message,
		"recommendations": f.Recommendations,
		"created_at":      f.CreatedAt,
	}
	if f.Severity != "" {
		doc["severity"] = string(f.Severity)
	}
	return doc
}
