package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/spam-detector/internal/adapters/llmverdict"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the Classifier interface using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Classify asks the model whether text is spam
func (c *OpenAIClient) Classify(ctx context.Context, text string) (*core.AnalysisResult, error) {
	processed := c.textProcessor.ProcessText(text, c.maxBodySize)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: llmverdict.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: llmverdict.Prompt(processed),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, core.NewServerError(0, "", errors.New("empty response from OpenAI"))
	}

	verdict, err := llmverdict.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, core.NewServerError(0, "", err)
	}

	c.logger.Debug("OpenAI verdict",
		zap.String("model", c.modelName),
		zap.String("completion_id", resp.ID),
		zap.String("explanation", verdict.Explanation))

	return verdict.ToResult(c.modelName, processed), nil
}

// classifyError separates API failures, which carry a message from OpenAI, from
// failures to reach the API at all
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return core.NewServerError(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return core.NewServerError(reqErr.HTTPStatusCode, "", err)
	}
	return core.NewNetworkError(fmt.Errorf("failed to create chat completion with OpenAI: %w", err))
}
