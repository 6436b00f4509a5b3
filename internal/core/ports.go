package core

import (
	"context"
)

// Classifier sends text to a classification backend and returns its verdict.
// Implementations perform exactly one request per call and never retry.
type Classifier interface {
	// Classify classifies non-empty text
	Classify(ctx context.Context, text string) (*AnalysisResult, error)
}
