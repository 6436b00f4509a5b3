package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/utils"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id to the prediction service
const RequestIDHeader = "X-Request-ID"

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 1 << 20

// PredictClient is an implementation of the Classifier interface that posts text to a
// prediction service
type PredictClient struct {
	httpClient    *http.Client
	endpoint      string
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Prediction      string  `json:"prediction"`
	Label           string  `json:"label"`
	Confidence      float64 `json:"confidence"`
	HamProbability  float64 `json:"ham_probability"`
	SpamProbability float64 `json:"spam_probability"`
	CleanedText     string  `json:"cleaned_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewPredictClient creates a new prediction service client
func NewPredictClient(
	httpClient *http.Client,
	endpoint string,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *PredictClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}
	return &PredictClient{
		httpClient:    httpClient,
		endpoint:      endpoint,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Classify posts text to the prediction endpoint and parses the verdict
func (c *PredictClient) Classify(ctx context.Context, text string) (*core.AnalysisResult, error) {
	payload, err := json.Marshal(predictRequest{
		Text: c.textProcessor.TruncateText(text, c.maxTextSize),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := core.RequestIDFromContext(ctx)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	c.logger.Debug("Posting text to prediction service",
		zap.String("endpoint", c.endpoint),
		zap.String("request_id", requestID),
		zap.Int("payload_size", len(payload)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, core.NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		decodeErr := json.Unmarshal(body, &errResp)
		if decodeErr != nil {
			decodeErr = fmt.Errorf("failed to decode error response: %w", decodeErr)
		}
		c.logger.Debug("Prediction service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("error", errResp.Error))
		return nil, core.NewServerError(resp.StatusCode, errResp.Error, decodeErr)
	}

	var pr predictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, core.NewServerError(resp.StatusCode, "", fmt.Errorf("failed to decode prediction: %w", err))
	}

	prediction := core.ParsePrediction(pr.Prediction)
	label := pr.Label
	if label == "" {
		label = prediction.DefaultLabel()
	}

	return &core.AnalysisResult{
		Prediction:      prediction,
		Label:           label,
		Confidence:      pr.Confidence,
		HamProbability:  pr.HamProbability,
		SpamProbability: pr.SpamProbability,
		CleanedText:     pr.CleanedText,
		AnalyzedAt:      time.Now(),
		ModelUsed:       c.endpoint,
		RequestID:       requestID,
	}, nil
}
