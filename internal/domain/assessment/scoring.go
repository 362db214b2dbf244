package assessment

// Features is the fixed-shape screening questionnaire. Values are expected
// in [0,1] but are not clamped on input; only the combined score is.
type Features struct {
	EyeContact                  float64 `json:"eye_contact"`
	SpeechDelay                 float64 `json:"speech_delay"`
	RepetitiveBehavior          float64 `json:"repetitive_behavior"`
	SensorySensitivity          float64 `json:"sensory_sensitivity"`
	SocialInteractionDifficulty float64 `json:"social_interaction_difficulty"`
}

// RiskLabel is the three-tier categorization of a probability.
type RiskLabel string

const (
	RiskLow      RiskLabel = "Low Risk"
	RiskModerate RiskLabel = "Moderate Risk"
	RiskHigh     RiskLabel = "High Risk"
)

// Feature weights. They sum to 1.0, so the weighted total is already a
// probability before clamping.
const (
	weightEyeContact                  = 0.18
	weightSpeechDelay                 = 0.22
	weightRepetitiveBehavior          = 0.22
	weightSensorySensitivity          = 0.20
	weightSocialInteractionDifficulty = 0.18
)

// Label thresholds partition [0,1] with no gap or overlap:
// [0, 0.33) low, [0.33, 0.66) moderate, [0.66, 1] high.
const (
	lowUpperBound      = 0.33
	moderateUpperBound = 0.66
)

// Score maps the questionnaire to a probability in [0,1] and its risk label.
// It is deterministic and side-effect-free; identical inputs produce
// bit-identical outputs.
func Score(f Features) (float64, RiskLabel) {
	total := f.EyeContact*weightEyeContact +
		f.SpeechDelay*weightSpeechDelay +
		f.RepetitiveBehavior*weightRepetitiveBehavior +
		f.SensorySensitivity*weightSensorySensitivity +
		f.SocialInteractionDifficulty*weightSocialInteractionDifficulty

	probability := clamp(total)
	return probability, LabelFor(probability)
}

// LabelFor thresholds a probability into its risk label.
func LabelFor(probability float64) RiskLabel {
	switch {
	case probability < lowUpperBound:
		return RiskLow
	case probability < moderateUpperBound:
		return RiskModerate
	default:
		return RiskHigh
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
