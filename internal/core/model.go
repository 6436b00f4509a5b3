package core

import (
	"time"
)

// Prediction is the binary verdict returned by a classifier
type Prediction string

const (
	PredictionSpam Prediction = "spam"
	PredictionHam  Prediction = "ham"
)

// ParsePrediction maps a wire value to a Prediction. Anything that is not "spam" is ham.
func ParsePrediction(s string) Prediction {
	if s == string(PredictionSpam) {
		return PredictionSpam
	}
	return PredictionHam
}

// IsSpam reports whether the prediction is spam
func (p Prediction) IsSpam() bool {
	return p == PredictionSpam
}

// DefaultLabel returns the display label used when a classifier omits one
func (p Prediction) DefaultLabel() string {
	if p.IsSpam() {
		return "SPAM"
	}
	return "LEGITIMATE"
}

// AnalysisResult represents the verdict of a successful classification
type AnalysisResult struct {
	Prediction      Prediction `json:"prediction" yaml:"prediction"`
	Label           string     `json:"label" yaml:"label"`
	Confidence      float64    `json:"confidence" yaml:"confidence"`
	HamProbability  float64    `json:"ham_probability" yaml:"ham_probability"`
	SpamProbability float64    `json:"spam_probability" yaml:"spam_probability"`
	CleanedText     string     `json:"cleaned_text,omitempty" yaml:"cleaned_text,omitempty"`

	// Set by the client, not part of the wire format
	AnalyzedAt time.Time `json:"-" yaml:"-"`
	ModelUsed  string    `json:"-" yaml:"-"`
	RequestID  string    `json:"-" yaml:"-"`
}

// SampleType tags a catalog sample as spam or legitimate
type SampleType string

const (
	SampleSpam SampleType = "spam"
	SampleHam  SampleType = "ham"
)

// Sample is a canned example text
type Sample struct {
	ID    int        `json:"id" yaml:"id"`
	Type  SampleType `json:"type" yaml:"type"`
	Title string     `json:"title" yaml:"title"`
	Text  string     `json:"text" yaml:"text"`
}
