// Package ui is the interactive terminal front end. It forwards keystrokes and intents to
// the analysis controller and renders the controller's state.
package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/samples"
	"go.uber.org/zap"
)

type focus int

const (
	focusInput focus = iota
	focusSamples
)

const (
	defaultWidth  = 80
	inputHeight   = 8
	inputPrompt   = "Paste your email or message here..."
	minInputWidth = 20
)

// Model is the root Bubble Tea model. It never writes workflow state itself: every change
// goes through the controller.
type Model struct {
	ctx        context.Context
	controller *core.Controller
	catalog    *samples.Catalog
	logger     *zap.Logger

	keys    KeyMap
	help    help.Model
	input   textarea.Model
	spinner spinner.Model
	styles  styles

	focus  focus
	cursor int
	width  int
	height int
}

// NewModel creates the analyzer screen
func NewModel(ctx context.Context, controller *core.Controller, catalog *samples.Catalog, theme Theme, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = inputPrompt
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.SetWidth(defaultWidth - 4)
	ta.SetValue(controller.State().EmailText)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = newStyles(theme).heading

	return Model{
		ctx:        ctx,
		controller: controller,
		catalog:    catalog,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      ta,
		spinner:    sp,
		styles:     newStyles(theme),
		width:      defaultWidth,
	}
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and returns the updated model and any commands
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(max(msg.Width-4, minInputWidth))
		return m, nil

	case analysisOutcomeMsg:
		if !m.controller.Resolve(msg.outcome) {
			m.logger.Debug("Ignoring superseded analysis", zap.String("request_id", msg.outcome.Request.ID))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.controller.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Analyze):
		return m.analyze()

	case key.Matches(msg, m.keys.Clear):
		m.controller.ClearAll()
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		return m.toggleFocus()
	}

	if m.focus == focusSamples {
		return m.handleSampleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.controller.SetText(m.input.Value())
	return m, cmd
}

func (m Model) handleSampleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.LoadSample):
		sample, ok := m.catalog.At(m.cursor)
		if !ok {
			return m, nil
		}
		m.controller.LoadSample(sample.Text)
		m.input.SetValue(sample.Text)
		m.logger.Debug("Loaded sample", zap.Int("sample_id", sample.ID), zap.String("title", sample.Title))
		return m.toggleFocus()
	}
	return m, nil
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusSamples
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m Model) analyze() (tea.Model, tea.Cmd) {
	req, err := m.controller.Analyze()
	if err != nil {
		if errors.Is(err, core.ErrBusy) {
			m.logger.Debug("Analysis already running")
		}
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, dispatchCommand(m.ctx, m.controller, req))
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, controller *core.Controller, catalog *samples.Catalog, theme Theme, logger *zap.Logger) error {
	model := NewModel(ctx, controller, catalog, theme, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
