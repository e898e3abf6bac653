package lexical

import (
	"github.com/pemistahl/lingua-go"
)

// Detector scores how likely a string is Spanish.
type Detector interface {
	SpanishConfidence(text string) float64
}

// CandidateLanguages are the languages the Spanish score is computed
// against. Restricting the set keeps short words from scoring as some
// unrelated language.
var CandidateLanguages = []lingua.Language{
	lingua.Spanish,
	lingua.English,
	lingua.French,
	lingua.Portuguese,
}

// LinguaDetector computes Spanish confidence with lingua.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over CandidateLanguages. Building
// loads the language models and takes a moment; do it once per run.
func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(CandidateLanguages...).
			Build(),
	}
}

// SpanishConfidence returns a value in [0,1].
func (d *LinguaDetector) SpanishConfidence(text string) float64 {
	return d.detector.ComputeLanguageConfidence(text, lingua.Spanish)
}
