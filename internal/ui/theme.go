package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
}

func buildTheme(name string, primary, secondary, success, warning, errorColor, border, muted, selected [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"})
)

var themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
	MinimalTheme.Name:      MinimalTheme,
}

// GetTheme looks a theme up by name. Unknown names return DefaultTheme and false.
func GetTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultTheme, false
	}
	return t, true
}

// ThemeNames lists the available themes
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// styles are the lipgloss styles derived from a theme
type styles struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	panel      lipgloss.Style
	activePane lipgloss.Style
	errorLine  lipgloss.Style
	muted      lipgloss.Style
	selected   lipgloss.Style
	spamBadge  lipgloss.Style
	hamBadge   lipgloss.Style
	spamBar    lipgloss.Style
	hamBar     lipgloss.Style
	heading    lipgloss.Style
}

func newStyles(t Theme) styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtitle:   lipgloss.NewStyle().Foreground(t.Secondary),
		panel:      panel,
		activePane: panel.BorderForeground(t.Primary),
		errorLine:  lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		muted:      lipgloss.NewStyle().Foreground(t.Muted),
		selected:   lipgloss.NewStyle().Bold(true).Background(t.Selected),
		spamBadge:  lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		hamBadge:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		spamBar:    lipgloss.NewStyle().Foreground(t.Error),
		hamBar:     lipgloss.NewStyle().Foreground(t.Success),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
	}
}
