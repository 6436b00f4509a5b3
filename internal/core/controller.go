package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the coarse state of the analysis workflow
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// WorkflowState is the single record tracking input, in-flight status and last outcome.
// At most one of Result and Error is set, and neither is set while Loading.
type WorkflowState struct {
	EmailText string
	Result    *AnalysisResult
	Error     string
	Loading   bool
}

// Phase derives the workflow phase from the state fields
func (s WorkflowState) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Result != nil:
		return PhaseSuccess
	case s.Error != "":
		return PhaseFailure
	default:
		return PhaseIdle
	}
}

// Request identifies one dispatched classification
type Request struct {
	// Generation increases with every dispatch and every superseding reset
	Generation uint64
	// ID correlates the request across logs and the wire
	ID   string
	Text string
}

// Outcome is the resolution of a dispatched request
type Outcome struct {
	Request  Request
	Result   *AnalysisResult
	Err      error
	Duration time.Duration
}

// Controller owns the WorkflowState and is its only writer.
// It is not safe for concurrent use: every method except Dispatch must be called from
// the same goroutine. Dispatch touches no state and may run anywhere.
type Controller struct {
	classifier Classifier
	logger     *zap.Logger

	state      WorkflowState
	generation uint64
	inflight   uint64
}

// NewController creates a controller in the Idle state
func NewController(classifier Classifier, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		classifier: classifier,
		logger:     logger,
	}
}

// State returns a snapshot of the workflow state
func (c *Controller) State() WorkflowState {
	s := c.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// SetText replaces the draft text. Result and error are left untouched.
func (c *Controller) SetText(text string) {
	c.state.EmailText = text
}

// Analyze validates the draft and, if it is non-empty, enters Loading and returns the
// request to dispatch. Blank input moves straight to Failure with a validation error.
// While a request is in flight ErrBusy is returned and nothing changes.
func (c *Controller) Analyze() (Request, error) {
	if c.state.Loading {
		c.logger.Debug("Analyze rejected, request in flight", zap.Uint64("generation", c.inflight))
		return Request{}, ErrBusy
	}

	if strings.TrimSpace(c.state.EmailText) == "" {
		verr := NewValidationError()
		c.state.Result = nil
		c.state.Error = verr.Message
		return Request{}, verr
	}

	c.generation++
	c.inflight = c.generation
	c.state.Result = nil
	c.state.Error = ""
	c.state.Loading = true

	req := Request{
		Generation: c.generation,
		ID:         uuid.NewString(),
		Text:       c.state.EmailText,
	}

	c.logger.Debug("Dispatching analysis",
		zap.String("request_id", req.ID),
		zap.Uint64("generation", req.Generation),
		zap.Int("text_length", len(req.Text)))

	return req, nil
}

// Dispatch performs the classification for req. It does not touch the workflow state.
func (c *Controller) Dispatch(ctx context.Context, req Request) Outcome {
	start := time.Now()
	result, err := c.classifier.Classify(WithRequestID(ctx, req.ID), req.Text)
	if err == nil && result == nil {
		err = NewServerError(0, "", errors.New("classifier returned no result"))
	}
	if result != nil && result.RequestID == "" {
		result.RequestID = req.ID
	}
	return Outcome{
		Request:  req,
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	}
}

// Resolve applies an outcome to the state. Outcomes for a request that is no longer the
// current one are discarded and false is returned.
func (c *Controller) Resolve(o Outcome) bool {
	fields := []zap.Field{
		zap.String("request_id", o.Request.ID),
		zap.Uint64("generation", o.Request.Generation),
		zap.Duration("duration", o.Duration),
	}

	if o.Request.Generation == 0 || o.Request.Generation != c.inflight {
		c.logger.Debug("Discarding stale analysis outcome",
			append(fields, zap.Uint64("current_generation", c.generation))...)
		return false
	}

	if o.Err != nil {
		c.state.Result = nil
		c.state.Error = UserMessage(o.Err)
		c.logger.Warn("Analysis failed", append(fields, zap.Error(o.Err))...)
	} else {
		c.state.Error = ""
		c.state.Result = o.Result
		c.logger.Info("Analysis complete",
			append(fields,
				zap.String("prediction", string(o.Result.Prediction)),
				zap.Float64("confidence", o.Result.Confidence))...)
	}

	c.inflight = 0
	c.state.Loading = false
	return true
}

// Run performs a full analyze cycle synchronously and returns the failure, if any
func (c *Controller) Run(ctx context.Context) error {
	req, err := c.Analyze()
	if err != nil {
		return err
	}
	o := c.Dispatch(ctx, req)
	c.Resolve(o)
	return o.Err
}

// LoadSample replaces the draft with a sample text and clears any outcome
func (c *Controller) LoadSample(text string) {
	c.supersede("load_sample")
	c.state.EmailText = text
	c.state.Result = nil
	c.state.Error = ""
}

// ClearAll resets the draft and clears any outcome
func (c *Controller) ClearAll() {
	c.supersede("clear")
	c.state.EmailText = ""
	c.state.Result = nil
	c.state.Error = ""
}

// supersede abandons the in-flight request, if any. The transport call is left to finish
// and its outcome is dropped by Resolve.
func (c *Controller) supersede(reason string) {
	if !c.state.Loading {
		return
	}
	c.logger.Debug("Abandoning in-flight analysis",
		zap.String("reason", reason),
		zap.Uint64("generation", c.inflight))
	c.generation++
	c.inflight = 0
	c.state.Loading = false
}
