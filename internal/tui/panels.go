package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/layout"
)

// renderStatusBar shows the mode, the monitor under the cursor and the last
// status message.
func renderStatusBar(st styles, s *arrange.Session, width int) string {
	app := s.App()
	ms := s.Monitors()

	parts := []string{st.stateTag.Render(strings.ToUpper(app.State.String()))}
	if app.Debug {
		parts = append(parts, st.debugTag.Render("DEBUG"))
	}
	if app.Selected >= 0 && app.Selected < len(ms) {
		parts = append(parts, ms[app.Selected].Name)
	}
	parts = append(parts, fmt.Sprintf("undo:%d", s.UndoDepth()-1))
	if msg := s.Status(); msg != "" {
		if msg == "applied" {
			parts = append(parts, st.okText.Render(msg))
		} else {
			parts = append(parts, st.errorText.Render(msg))
		}
	}
	return st.statusBar.Width(width).Render(strings.Join(parts, "  "))
}

func renderHelpBar(st styles, help string, width int) string {
	return st.helpBar.Width(width).Render(help)
}

// menuValue renders the value column of one info panel row.
func menuValue(ms layout.Monitors, m *layout.Monitor, e arrange.MenuEntry) string {
	neighbor := func(idx int) string {
		if idx == layout.None || idx >= len(ms) {
			return "-"
		}
		return ms[idx].Name
	}
	switch e {
	case arrange.Position:
		return fmt.Sprintf("%d,%d", m.Position.X, m.Position.Y)
	case arrange.Resolution:
		if m.Displayed != m.Resolution {
			return fmt.Sprintf("%s (%s)", m.Resolution, m.Displayed)
		}
		return m.Resolution.String()
	case arrange.Framerate:
		return formatRate(m.Framerate)
	case arrange.Scale:
		return fmt.Sprintf("◂ %.2f ▸", m.Scale)
	case arrange.Primary:
		if m.Primary {
			return "yes"
		}
		return "no"
	case arrange.LeftNeighbor:
		return neighbor(m.Left)
	case arrange.DownNeighbor:
		return neighbor(m.Down)
	case arrange.UpNeighbor:
		return neighbor(m.Up)
	case arrange.RightNeighbor:
		return neighbor(m.Right)
	case arrange.Resolutions:
		return strconv.Itoa(len(m.Modes))
	}
	return ""
}

func formatRate(hz float64) string {
	return strconv.FormatFloat(hz, 'f', 2, 64) + " Hz"
}

// renderInfoPanel lists the attributes of the highlighted monitor. The row
// under the menu cursor is marked while the panel has focus.
func renderInfoPanel(st styles, ms layout.Monitors, app arrange.App, width int) string {
	if app.Selected < 0 || app.Selected >= len(ms) {
		return ""
	}
	m := &ms[app.Selected]
	focused := app.State == arrange.MenuSelect || app.State == arrange.InfoEdit

	labelW := 0
	for _, e := range arrange.MenuEntries {
		labelW = max(labelW, len(e.String()))
	}

	title := m.Name
	if m.Primary {
		title += " " + st.primary.Render("primary")
	}
	lines := []string{st.title.Render(title), ""}
	for _, e := range arrange.MenuEntries {
		label := fmt.Sprintf("%-*s", labelW, e.String())
		val := menuValue(ms, m, e)
		if focused && e == app.Menu {
			lines = append(lines, st.cursorRow.Render("▸ "+label+"  "+val))
			continue
		}
		lines = append(lines, "  "+st.label.Render(label)+"  "+st.value.Render(val))
	}

	panel := st.panel
	if focused {
		panel = st.panelActive
	}
	return panel.Width(width).Render(strings.Join(lines, "\n"))
}

// optionLabels returns the choices InfoEdit offers for the menu entry, in
// the order the dispatcher indexes them.
func optionLabels(m *layout.Monitor, e arrange.MenuEntry) []string {
	var out []string
	switch e {
	case arrange.Resolution:
		for _, res := range m.SortedResolutions() {
			out = append(out, res.String())
		}
	case arrange.Framerate:
		for _, hz := range m.Framerates() {
			out = append(out, formatRate(hz))
		}
	}
	return out
}

// renderOptionList shows the resolution or framerate choices with the
// InfoEdit cursor, scrolled so the cursor stays visible.
func renderOptionList(st styles, ms layout.Monitors, app arrange.App, width, height int) string {
	if app.State != arrange.InfoEdit || app.Selected < 0 || app.Selected >= len(ms) {
		return ""
	}
	m := &ms[app.Selected]
	opts := optionLabels(m, app.Menu)

	visible := max(height-4, 1)
	off := 0
	if app.Extra >= visible {
		off = app.Extra - visible + 1
	}
	end := min(off+visible, len(opts))

	current := m.Resolution.String()
	if app.Menu == arrange.Framerate {
		current = formatRate(m.Framerate)
	}

	lines := []string{st.title.Render(app.Menu.String())}
	for i := off; i < end; i++ {
		marker := "  "
		if opts[i] == current {
			marker = "• "
		}
		if i == app.Extra {
			lines = append(lines, st.cursorRow.Render("▸ "+opts[i]))
			continue
		}
		lines = append(lines, marker+st.value.Render(opts[i]))
	}
	return st.panelActive.Width(width).Render(strings.Join(lines, "\n"))
}

// renderMain lays the canvas out beside the info panel, with the option
// list under the panel while editing.
func renderMain(st styles, s *arrange.Session, width, height int) string {
	ms := s.Monitors()
	app := s.App()

	panelW := min(34, max(width/3, 24))
	canvasW := max(width-panelW-3, 8)

	canvas := st.canvas.Render(strings.Join(renderCanvas(ms, app, canvasW, height), "\n"))

	side := renderInfoPanel(st, ms, app, panelW)
	if list := renderOptionList(st, ms, app, panelW, height-lipgloss.Height(side)); list != "" {
		side = lipgloss.JoinVertical(lipgloss.Left, side, list)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", side)
}
