// Package llmverdict holds the prompt and response mapping shared by the LLM-backed
// classifiers.
package llmverdict

import (
	"fmt"
	"time"

	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
)

// SystemPrompt is sent as the system message where the provider supports one
const SystemPrompt = "You are a spam detection system. Respond only with JSON."

const promptFormat = `You are a spam detection system. Analyze the following message and determine if it's spam.
Respond with a JSON object containing:
- is_spam: boolean (true if spam, false if not)
- score: number between 0 and 1 (higher means more likely to be spam)
- confidence: number between 0 and 1 (how confident you are in your assessment)
- explanation: string (brief explanation of why you think it's spam or not)

Message:
%s

Respond only with the JSON object and nothing else.`

// Response is the structured answer requested from the model
type Response struct {
	IsSpam      bool    `json:"is_spam"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Prompt builds the user prompt for text
func Prompt(text string) string {
	return fmt.Sprintf(promptFormat, text)
}

// Parse extracts the Response from raw model output
func Parse(responseText string) (*Response, error) {
	var r Response
	if err := utils.DecodeJSONObject(responseText, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ToResult maps the model's answer to an AnalysisResult. Probabilities are expressed in
// percent; the ham probability is the complement of the spam score.
func (r *Response) ToResult(model, sentText string) *core.AnalysisResult {
	prediction := core.PredictionHam
	if r.IsSpam {
		prediction = core.PredictionSpam
	}

	spam := clampUnit(r.Score) * 100
	return &core.AnalysisResult{
		Prediction:      prediction,
		Label:           prediction.DefaultLabel(),
		Confidence:      clampUnit(r.Confidence) * 100,
		HamProbability:  100 - spam,
		SpamProbability: spam,
		CleanedText:     sentText,
		AnalyzedAt:      time.Now(),
		ModelUsed:       model,
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
