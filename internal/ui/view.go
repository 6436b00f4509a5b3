package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/presenter"
	"github.com/mikey/spam-detector/internal/samples"
)

const (
	barWidth    = 30
	loadingText = "Analyzing Email..."
)

// View renders the screen
func (m Model) View() string {
	state := m.controller.State()

	sections := []string{
		m.styles.title.Render("📧 Spam Detector"),
		m.styles.subtitle.Render("Detect spam and phishing messages"),
		"",
		m.renderInput(state),
		m.renderSamples(),
		m.renderResult(state),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderInput(state core.WorkflowState) string {
	pane := m.styles.panel
	if m.focus == focusInput {
		pane = m.styles.activePane
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	if state.Error != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errorLine.Render("⚠️ " + state.Error))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("Press alt+enter or ctrl+s to analyze"))
	return pane.Render(b.String())
}

func (m Model) renderSamples() string {
	pane := m.styles.panel
	if m.focus == focusSamples {
		pane = m.styles.activePane
	}

	var b strings.Builder
	b.WriteString(m.styles.heading.Render("Try Sample Messages"))
	for i, s := range m.catalog.All() {
		line := fmt.Sprintf("%d. %s  %s", s.ID, s.Title, samples.BadgeText(s.Type))
		if m.focus == focusSamples && i == m.cursor {
			line = m.styles.selected.Render("› " + line)
			line += "\n    " + m.styles.muted.Render(samples.Preview(s))
		} else {
			line = "  " + line
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return pane.Render(b.String())
}

func (m Model) renderResult(state core.WorkflowState) string {
	switch state.Phase() {
	case core.PhaseLoading:
		return m.styles.panel.Render(m.spinner.View() + " " + loadingText)
	case core.PhaseSuccess:
		return m.renderCard(presenter.Present(*state.Result))
	default:
		return m.styles.panel.Render(
			m.styles.heading.Render("Ready to Analyze") + "\n" +
				m.styles.muted.Render("Enter some text or try one of the samples to get started"))
	}
}

func (m Model) renderCard(v presenter.View) string {
	badge, bar := m.styles.hamBadge, m.styles.hamBar
	if v.IsSpam() {
		badge, bar = m.styles.spamBadge, m.styles.spamBar
	}

	lines := []string{
		badge.Render(fmt.Sprintf("%s (%s)", v.Label, v.Badge)) + "  " + v.Confidence + "% Confident",
		v.Description,
		"",
		m.styles.heading.Render("Probability Analysis"),
		fmt.Sprintf("Legitimate %s %7s%%",
			m.styles.hamBar.Render(presenter.Bar(v.HamPercent, barWidth, "█", "░")), v.HamProbability),
		fmt.Sprintf("Spam/Scam  %s %7s%%",
			m.styles.spamBar.Render(presenter.Bar(v.SpamPercent, barWidth, "█", "░")), v.SpamProbability),
		"",
		m.styles.heading.Render("Processed Text"),
		m.styles.muted.Render(v.CleanedText),
	}

	return m.styles.panel.BorderForeground(bar.GetForeground()).Render(strings.Join(lines, "\n"))
}
