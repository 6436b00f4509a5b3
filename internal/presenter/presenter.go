// Package presenter turns analysis results into display-ready values. Nothing here reads
// or writes workflow state.
package presenter

import (
	"math"
	"strconv"
	"strings"

	"github.com/mikey/spam-detector/internal/core"
)

// NotAvailable is shown in place of empty processed text
const NotAvailable = "N/A"

const (
	spamDescription = "⚠️ This message appears to be spam or a scam. Be cautious and avoid clicking any links or sharing personal information."
	hamDescription  = "✅ This message appears to be legitimate. However, always verify the sender before taking any action."
)

// Badge is the binary classification shown on a result
type Badge string

const (
	BadgeSpam       Badge = "Spam"
	BadgeLegitimate Badge = "Legitimate"
)

// View is a formatted AnalysisResult
type View struct {
	Badge           Badge  `json:"badge" yaml:"badge"`
	Label           string `json:"label" yaml:"label"`
	Description     string `json:"description" yaml:"description"`
	Confidence      string `json:"confidence" yaml:"confidence"`
	HamProbability  string `json:"ham_probability" yaml:"ham_probability"`
	SpamProbability string `json:"spam_probability" yaml:"spam_probability"`
	CleanedText     string `json:"cleaned_text" yaml:"cleaned_text"`

	// Percentages clamped to [0, 100] for drawing bars
	HamPercent  float64 `json:"-" yaml:"-"`
	SpamPercent float64 `json:"-" yaml:"-"`
}

// IsSpam reports whether the view shows a spam verdict
func (v View) IsSpam() bool {
	return v.Badge == BadgeSpam
}

// Present formats a result for display
func Present(result core.AnalysisResult) View {
	badge, description := BadgeLegitimate, hamDescription
	if result.Prediction.IsSpam() {
		badge, description = BadgeSpam, spamDescription
	}

	cleaned := result.CleanedText
	if strings.TrimSpace(cleaned) == "" {
		cleaned = NotAvailable
	}

	return View{
		Badge:           badge,
		Label:           result.Label,
		Description:     description,
		Confidence:      FormatPercent(result.Confidence),
		HamProbability:  FormatPercent(result.HamProbability),
		SpamProbability: FormatPercent(result.SpamProbability),
		CleanedText:     cleaned,
		HamPercent:      clampPercent(result.HamProbability),
		SpamPercent:     clampPercent(result.SpamProbability),
	}
}

// FormatPercent formats a 0-100 value with two decimal places
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Bar draws a horizontal bar of width cells filled to percent
func Bar(percent float64, width int, fill, empty string) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(clampPercent(percent) / 100 * float64(width)))
	return strings.Repeat(fill, filled) + strings.Repeat(empty, width-filled)
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
