package assessment

import (
	"time"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

// UnknownPatient is the sentinel owner for assessments whose submitter could
// not be tied to a patient record.
const UnknownPatient = "unknown"

// SubjectSource records how the submitting identity was established.
type SubjectSource string

const (
	// SourceSession means a verified patient session owned the submission.
	SourceSession SubjectSource = "session"
	// SourceSelfReport means the caller supplied a raw user id without a
	// session; the association is unverified.
	SourceSelfReport SubjectSource = "self-report"
	// SourceUnknown means a verified session of a non-patient role
	// submitted, so no patient owns the assessment.
	SourceUnknown SubjectSource = "unknown"
)

// Subject is the explicitly modeled capability under which an assessment is
// submitted.
type Subject struct {
	PatientID string
	Source    SubjectSource
}

// VerifiedPatient is a subject backed by a resolved patient session.
func VerifiedPatient(patientID string) Subject {
	return Subject{PatientID: patientID, Source: SourceSession}
}

// SelfReport is a subject carrying an unverified, caller-supplied user id.
func SelfReport(userID string) Subject {
	return Subject{PatientID: userID, Source: SourceSelfReport}
}

// Anonymous is a subject with no patient association at all.
func Anonymous() Subject {
	return Subject{PatientID: UnknownPatient, Source: SourceUnknown}
}

// Assessment is a stored record of one scoring invocation. Score and
// Probability hold the same value; both are kept for compatibility with the
// stored document shape. ReviewedBy and FeedbackID are back-references set
// when a doctor files feedback.
type Assessment struct {
	ID          string        `json:"id"`
	PatientID   string        `json:"patient_id"`
	Source      SubjectSource `json:"source"`
	Features    Features      `json:"features"`
	Score       float64       `json:"score"`
	Probability float64       `json:"probability"`
	ResultLabel RiskLabel     `json:"result_label"`
	Notes       string        `json:"notes,omitempty"`
	ReviewedBy  string        `json:"reviewed_by,omitempty"`
	FeedbackID  string        `json:"feedback_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (a *Assessment) document() db.Document {
	return db.Document{
		"patient_id": a.PatientID,
		"source":     string(a.Source),
		"features": db.Document{
			"eye_contact":                   a.Features.EyeContact,
			"speech_delay":                  a.Features.SpeechDelay,
			"repetitive_behavior":           a.Features.RepetitiveBehavior,
			"sensory_sensitivity":           a.Features.SensorySensitivity,
			"social_interaction_difficulty": a.Features.SocialInteractionDifficulty,
		},
		"score":        a.Score,
		"probability":  a.Probability,
		"result_label": string(a.ResultLabel),
		"notes":        a.Notes,
		"created_at":   a.CreatedAt,
	}
}

func fromDocument(doc db.Document) *Assessment {
	a := &Assessment{}
	a.ID, _ = doc["_id"].(string)
	a.PatientID, _ = doc["patient_id"].(string)
	if v, ok := doc["source"].(string); ok {
		a.Source = SubjectSource(v)
	}
	if features, ok := doc["features"].(db.Document); ok {
		a.Features = Features{
			EyeContact:                  floatField(features, "eye_contact"),
			SpeechDelay:                 floatField(features, "speech_delay"),
			RepetitiveBehavior:          floatField(features, "repetitive_behavior"),
			SensorySensitivity:          floatField(features, "sensory_sensitivity"),
			SocialInteractionDifficulty: floatField(features, "social_interaction_difficulty"),
		}
	}
	a.Score = floatField(doc, "score")
	a.Probability = floatField(doc, "probability")
	if v, ok := doc["result_label"].(string); ok {
		a.ResultLabel = RiskLabel(v)
	}
	a.Notes, _ = doc["notes"].(string)
	a.ReviewedBy, _ = doc["reviewed_by"].(string)
	a.FeedbackID, _ = doc["feedback_id"].(string)
	if v, ok := doc["created_at"].(time.Time); ok {
		a.CreatedAt = v
	}
	return a
}

func floatField(doc db.Document, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
