package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClassifier struct {
	calls  []string
	result *AnalysisResult
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*AnalysisResult, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	return &r, nil
}

func spamResult() *AnalysisResult {
	return &AnalysisResult{
		Prediction:      PredictionSpam,
		Label:           "Spam",
		Confidence:      97.5,
		HamProbability:  2.5,
		SpamProbability: 97.5,
		CleanedText:     "winner click link",
	}
}

func newTestController(t *testing.T, f *fakeClassifier) *Controller {
	return NewController(f, zaptest.NewLogger(t))
}

func TestController_InitialStateIsIdle(t *testing.T) {
	c := newTestController(t, &fakeClassifier{})

	s := c.State()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.EmailText)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.Error)
	assert.False(t, s.Loading)
}

func TestController_AnalyzeBlankInput(t *testing.T) {
	for _, text := range []string{"", " ", "\n\t  \r\n"} {
		f := &fakeClassifier{result: spamResult()}
		c := newTestController(t, f)
		c.SetText(text)

		err := c.Run(context.Background())

		var ce *ClassificationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrorKindValidation, ce.Kind)
		s := c.State()
		assert.Equal(t, EmptyTextMessage, s.Error)
		assert.Nil(t, s.Result)
		assert.False(t, s.Loading)
		assert.Equal(t, PhaseFailure, s.Phase())
		assert.Empty(t, f.calls, "validation must not reach the classifier")
	}
}

func TestController_AnalyzeBlankInputClearsPreviousResult(t *testing.T) {
	f := &fakeClassifier{result: spamResult()}
	c := newTestController(t, f)
	c.SetText("win money")
	require.NoError(t, c.Run(context.Background()))

	c.SetText("   ")
	_, err := c.Analyze()
	require.Error(t, err)

	s := c.State()
	assert.Nil(t, s.Result)
	assert.Equal(t, EmptyTextMessage, s.Error)
}

func TestController_AnalyzeEntersLoading(t *testing.T) {
	c := newTestController(t, &fakeClassifier{result: spamResult()})
	c.SetText("hello")
	c.state.Error = "old error"

	req, err := c.Analyze()
	require.NoError(t, err)

	s := c.State()
	assert.True(t, s.Loading)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.Error)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, "hello", req.Text)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, uint64(1), req.Generation)
}

func TestController_Success(t *testing.T) {
	f := &fakeClassifier{result: spamResult()}
	c := newTestController(t, f)
	c.SetText("WINNER click this link")

	require.NoError(t, c.Run(context.Background()))

	s := c.State()
	require.NotNil(t, s.Result)
	assert.Equal(t, PredictionSpam, s.Result.Prediction)
	assert.Equal(t, "Spam", s.Result.Label)
	assert.Equal(t, 97.5, s.Result.Confidence)
	assert.Equal(t, 2.5, s.Result.HamProbability)
	assert.Equal(t, 97.5, s.Result.SpamProbability)
	assert.Equal(t, "winner click link", s.Result.CleanedText)
	assert.NotEmpty(t, s.Result.RequestID)
	assert.Empty(t, s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"WINNER click this link"}, f.calls)
}

func TestController_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", NewServerError(500, "Model unavailable", nil), "Model unavailable"},
		{"server without message", NewServerError(502, "", errors.New("invalid character")), FallbackErrorMessage},
		{"network", NewNetworkError(errors.New("connection refused")), FallbackErrorMessage},
		{"untyped", errors.New("boom"), FallbackErrorMessage},
		{"wrapped", wrap(NewServerError(400, "Please enter some text", nil)), "Please enter some text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, &fakeClassifier{err: tt.err})
			c.SetText("some text")

			err := c.Run(context.Background())
			require.Error(t, err)

			s := c.State()
			assert.Equal(t, tt.want, s.Error)
			assert.Nil(t, s.Result)
			assert.False(t, s.Loading)
			assert.Equal(t, PhaseFailure, s.Phase())
		})
	}
}

func TestController_AnalyzeWhileLoadingIsRejected(t *testing.T) {
	f := &fakeClassifier{result: spamResult()}
	c := newTestController(t, f)
	c.SetText("first")
	first, err := c.Analyze()
	require.NoError(t, err)

	c.SetText("second")
	_, err = c.Analyze()
	require.ErrorIs(t, err, ErrBusy)
	assert.True(t, c.State().Loading)

	require.True(t, c.Resolve(c.Dispatch(context.Background(), first)))
	assert.Equal(t, []string{"first"}, f.calls)
}

func TestController_LoadSample(t *testing.T) {
	states := map[string]func(c *Controller){
		"idle": func(c *Controller) {},
		"success": func(c *Controller) {
			c.SetText("x")
			_ = c.Run(context.Background())
		},
		"failure": func(c *Controller) {
			_ = c.Run(context.Background())
		},
		"loading": func(c *Controller) {
			c.SetText("x")
			_, _ = c.Analyze()
		},
	}

	for name, prepare := range states {
		t.Run(name, func(t *testing.T) {
			c := newTestController(t, &fakeClassifier{result: spamResult()})
			prepare(c)

			c.LoadSample("sample body")

			s := c.State()
			assert.Equal(t, "sample body", s.EmailText)
			assert.Nil(t, s.Result)
			assert.Empty(t, s.Error)
			assert.False(t, s.Loading)
		})
	}
}

func TestController_ClearAllIsIdempotent(t *testing.T) {
	c := newTestController(t, &fakeClassifier{result: spamResult()})
	c.SetText("text")
	require.NoError(t, c.Run(context.Background()))

	c.ClearAll()
	once := c.State()
	c.ClearAll()
	twice := c.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, WorkflowState{}, twice)
}

func TestController_SetTextKeepsOutcome(t *testing.T) {
	c := newTestController(t, &fakeClassifier{result: spamResult()})
	c.SetText("text")
	require.NoError(t, c.Run(context.Background()))

	c.SetText("edited")

	s := c.State()
	assert.Equal(t, "edited", s.EmailText)
	assert.NotNil(t, s.Result)
}

func TestController_StaleOutcomeIsDiscarded(t *testing.T) {
	tests := []struct {
		name  string
		reset func(c *Controller)
		text  string
	}{
		{"clear", func(c *Controller) { c.ClearAll() }, ""},
		{"load sample", func(c *Controller) { c.LoadSample("sample") }, "sample"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, &fakeClassifier{result: spamResult()})
			c.SetText("pending")
			req, err := c.Analyze()
			require.NoError(t, err)

			tt.reset(c)
			applied := c.Resolve(c.Dispatch(context.Background(), req))

			assert.False(t, applied)
			s := c.State()
			assert.Equal(t, tt.text, s.EmailText)
			assert.Nil(t, s.Result)
			assert.Empty(t, s.Error)
			assert.False(t, s.Loading)
		})
	}
}

func TestController_StaleOutcomeDoesNotClobberNewerRequest(t *testing.T) {
	c := newTestController(t, &fakeClassifier{result: spamResult()})
	c.SetText("one")
	old, err := c.Analyze()
	require.NoError(t, err)

	c.LoadSample("two")
	current, err := c.Analyze()
	require.NoError(t, err)
	assert.Greater(t, current.Generation, old.Generation)

	assert.False(t, c.Resolve(Outcome{Request: old, Err: NewServerError(500, "late", nil)}))
	assert.True(t, c.State().Loading)

	assert.True(t, c.Resolve(c.Dispatch(context.Background(), current)))
	s := c.State()
	assert.NotNil(t, s.Result)
	assert.Empty(t, s.Error)
}

func TestController_StateIsASnapshot(t *testing.T) {
	c := newTestController(t, &fakeClassifier{result: spamResult()})
	c.SetText("text")
	require.NoError(t, c.Run(context.Background()))

	s := c.State()
	s.Result.Label = "changed"

	assert.Equal(t, "Spam", c.State().Result.Label)
}

func TestController_DispatchPropagatesRequestID(t *testing.T) {
	var seen string
	c := NewController(classifierFunc(func(ctx context.Context, text string) (*AnalysisResult, error) {
		seen = RequestIDFromContext(ctx)
		return spamResult(), nil
	}), nil)
	c.SetText("text")
	req, err := c.Analyze()
	require.NoError(t, err)

	o := c.Dispatch(context.Background(), req)

	assert.Equal(t, req.ID, seen)
	assert.Equal(t, req.ID, o.Result.RequestID)
}

func TestController_NilResultIsAFailure(t *testing.T) {
	c := NewController(classifierFunc(func(ctx context.Context, text string) (*AnalysisResult, error) {
		return nil, nil
	}), nil)
	c.SetText("text")

	require.Error(t, c.Run(context.Background()))
	assert.Equal(t, FallbackErrorMessage, c.State().Error)
}

type classifierFunc func(ctx context.Context, text string) (*AnalysisResult, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (*AnalysisResult, error) {
	return f(ctx, text)
}

func wrap(err error) error {
	return errors.Join(errors.New("classify"), err)
}
