package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/randrtile/internal/config"
)

type styles struct {
	statusBar lipgloss.Style
	stateTag  lipgloss.Style
	debugTag  lipgloss.Style
	errorText lipgloss.Style
	okText    lipgloss.Style
	helpBar   lipgloss.Style

	canvas      lipgloss.Style
	panel       lipgloss.Style
	panelActive lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	cursorRow   lipgloss.Style
	primary     lipgloss.Style
	disabled    lipgloss.Style
	dim         lipgloss.Style

	popup lipgloss.Style
}

func newStyles(th config.ThemeConfig) styles {
	accent := lipgloss.Color(th.Accent)
	selected := lipgloss.Color(th.Selected)
	return styles{
		statusBar: lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1),
		stateTag: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(accent).
			Padding(0, 1),
		debugTag: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		okText:    lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true),
		helpBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),

		canvas: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		panelActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		cursorRow: lipgloss.NewStyle().Bold(true).Foreground(selected),
		primary:   lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)),
		disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Disabled)),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}
