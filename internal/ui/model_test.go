package ui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	mu     sync.Mutex
	texts  []string
	result *core.AnalysisResult
	err    error
}

func (s *stubClassifier) Classify(_ context.Context, text string) (*core.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	if s.err != nil {
		return nil, s.err
	}
	r := *s.result
	return &r, nil
}

func spamResult() *core.AnalysisResult {
	return &core.AnalysisResult{
		Prediction:      core.PredictionSpam,
		Label:           "SPAM",
		Confidence:      97.5,
		HamProbability:  2.5,
		SpamProbability: 97.5,
		CleanedText:     "winner click",
	}
}

func newTestModel(t *testing.T, c core.Classifier) (Model, *core.Controller) {
	t.Helper()
	controller := core.NewController(c, nil)
	return NewModel(context.Background(), controller, samples.NewCatalog(), DefaultTheme, nil), controller
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestTypingForwardsText(t *testing.T) {
	m, controller := newTestModel(t, &stubClassifier{result: spamResult()})

	m = typeText(t, m, "hello")

	assert.Equal(t, "hello", controller.State().EmailText)
	assert.Equal(t, "hello", m.input.Value())
}

func TestAnalyzeEmptyShowsError(t *testing.T) {
	stub := &stubClassifier{result: spamResult()}
	m, controller := newTestModel(t, stub)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Equal(t, core.EmptyTextMessage, controller.State().Error)
	assert.Contains(t, m.View(), core.EmptyTextMessage)
	assert.Empty(t, stub.texts)
}

func TestAnalyzeSuccessFlow(t *testing.T) {
	stub := &stubClassifier{result: spamResult()}
	m, controller := newTestModel(t, stub)
	m = typeText(t, m, "WINNER click")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	require.NotNil(t, cmd)
	assert.True(t, controller.State().Loading)
	assert.Contains(t, m.View(), loadingText)

	req := core.Request{Generation: 1, ID: "req-1", Text: "WINNER click"}
	m, _ = update(t, m, analysisOutcomeMsg{outcome: controller.Dispatch(context.Background(), req)})

	state := controller.State()
	assert.False(t, state.Loading)
	require.NotNil(t, state.Result)
	assert.Equal(t, []string{"WINNER click"}, stub.texts)

	view := m.View()
	assert.Contains(t, view, "SPAM (Spam)")
	assert.Contains(t, view, "97.50% Confident")
	assert.Contains(t, view, "winner click")
}

func TestAnalyzeFailureShowsMessage(t *testing.T) {
	stub := &stubClassifier{err: core.NewServerError(503, "Model unavailable", nil)}
	m, controller := newTestModel(t, stub)
	m = typeText(t, m, "hello")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	req := core.Request{Generation: 1, ID: "req-1", Text: "hello"}
	m, _ = update(t, m, analysisOutcomeMsg{outcome: controller.Dispatch(context.Background(), req)})

	assert.Equal(t, "Model unavailable", controller.State().Error)
	assert.Contains(t, m.View(), "Model unavailable")
}

func TestAnalyzeWhileLoadingIsIgnored(t *testing.T) {
	m, controller := newTestModel(t, &stubClassifier{result: spamResult()})
	m = typeText(t, m, "hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.True(t, controller.State().Loading)
}

func TestClearResetsInputAndState(t *testing.T) {
	m, controller := newTestModel(t, &stubClassifier{result: spamResult()})
	m = typeText(t, m, "hello")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, core.WorkflowState{}, controller.State())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Ready to Analyze")
}

func TestLoadSampleFromList(t *testing.T) {
	m, controller := newTestModel(t, &stubClassifier{result: spamResult()})
	catalog := samples.NewCatalog()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusSamples, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want, ok := catalog.At(2)
	require.True(t, ok)
	assert.Equal(t, want.Text, controller.State().EmailText)
	assert.Equal(t, want.Text, m.input.Value())
	assert.Equal(t, focusInput, m.focus)
}

func TestSampleCursorStaysInRange(t *testing.T) {
	m, _ := newTestModel(t, &stubClassifier{result: spamResult()})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, samples.NewCatalog().Len()-1, m.cursor)
}

func TestSupersededOutcomeIsDropped(t *testing.T) {
	m, controller := newTestModel(t, &stubClassifier{result: spamResult()})
	m = typeText(t, m, "hello")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	loaded := controller.State()

	req := core.Request{Generation: 1, ID: "req-1", Text: "hello"}
	_, _ = update(t, m, analysisOutcomeMsg{outcome: controller.Dispatch(context.Background(), req)})

	assert.Equal(t, loaded, controller.State())
	assert.Nil(t, controller.State().Result)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, &stubClassifier{result: spamResult()})

	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := update(t, m, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestGetTheme(t *testing.T) {
	theme, ok := GetTheme("High-Contrast")
	assert.True(t, ok)
	assert.Equal(t, "high-contrast", theme.Name)

	theme, ok = GetTheme("neon")
	assert.False(t, ok)
	assert.Equal(t, DefaultTheme.Name, theme.Name)

	assert.Equal(t, []string{"default", "high-contrast", "minimal"}, ThemeNames())
}
