package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/spam-detector/internal/core"
)

// analysisOutcomeMsg carries a finished classification back to the update loop
type analysisOutcomeMsg struct {
	outcome core.Outcome
}

// dispatchCommand runs the classification off the update loop
func dispatchCommand(ctx context.Context, controller *core.Controller, req core.Request) tea.Cmd {
	return func() tea.Msg {
		return analysisOutcomeMsg{outcome: controller.Dispatch(ctx, req)}
	}
}
