package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/spam-detector/internal/adapters/llmverdict"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// contentGenerator is the part of *genai.GenerativeModel the client uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient is an implementation of the Classifier interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         contentGenerator
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	client *genai.Client,
	model contentGenerator,
	modelName string,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiClient {
	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify asks the model whether text is spam
func (c *GeminiClient) Classify(ctx context.Context, text string) (*core.AnalysisResult, error) {
	processed := c.textProcessor.ProcessText(text, c.maxBodySize)

	resp, err := c.model.GenerateContent(ctx, genai.Text(llmverdict.Prompt(processed)))
	if err != nil {
		return nil, classifyError(err)
	}

	responseText := responseText(resp)
	if responseText == "" {
		return nil, core.NewServerError(0, "", errors.New("empty response from Gemini"))
	}

	verdict, err := llmverdict.Parse(responseText)
	if err != nil {
		return nil, core.NewServerError(0, "", err)
	}

	c.logger.Debug("Gemini verdict",
		zap.String("model", c.modelName),
		zap.String("explanation", verdict.Explanation))

	return verdict.ToResult(c.modelName, processed), nil
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return core.NewServerError(apiErr.Code, apiErr.Message, err)
	}
	return core.NewNetworkError(fmt.Errorf("failed to generate content with Gemini: %w", err))
}
