package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/config"
)

// model is the root bubbletea model. The session owns all layout state;
// the model only decodes keys and renders.
type model struct {
	ctx     context.Context
	session *arrange.Session
	keys    keyMap
	styles  styles
	help    help.Model
	logger  *slog.Logger

	confirmApply bool
	applyOverlay applyOverlay

	// Terminal dimensions
	width  int
	height int
}

func newModel(ctx context.Context, s *arrange.Session, opts Options) (model, error) {
	km, err := buildKeyMap(opts.Keys)
	if err != nil {
		return model{}, err
	}
	theme := opts.Theme
	if theme == (config.ThemeConfig{}) {
		theme = config.DefaultConfig().Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return model{
		ctx:          ctx,
		session:      s,
		keys:         km,
		styles:       newStyles(theme),
		help:         help.New(),
		logger:       logger,
		confirmApply: opts.ConfirmApply,
	}, nil
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Apply overlay captures all input when active
		if m.applyOverlay.Active() {
			m.applyOverlay = m.applyOverlay.Update(m.ctx, msg, m.keys, m.session)
			return m, nil
		}

		action, ok := m.keys.actionFor(msg)
		if !ok {
			return m, nil
		}
		if action == arrange.ActionApply && m.confirmApply && m.session.App().State.IsMain() {
			m.applyOverlay.Show(m.session.Baseline(), m.session.Preview())
			return m, nil
		}
		if err := m.session.Dispatch(m.ctx, action); err != nil {
			m.logger.Debug("dispatch returned error", "action", action, "error", err)
		}
		if m.session.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.styles, m.session, m.width)
	helpBar := renderHelpBar(m.styles, m.help.ShortHelpView(m.keys.forState(m.session.App().State)), m.width)

	contentHeight := max(m.height-lipgloss.Height(statusBar)-lipgloss.Height(helpBar), 1)

	var content string
	switch {
	case m.applyOverlay.Active():
		content = m.applyOverlay.View(m.styles, m.width, contentHeight)
	case m.session.App().State.IsPopup():
		content = renderPopup(m.styles, m.keys, m.session, m.width, contentHeight)
	default:
		content = renderMain(m.styles, m.session, m.width, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}
