package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/layout"
)

// renderPopup draws the overlay for the session's popup state centered in
// the content area.
func renderPopup(st styles, km keyMap, s *arrange.Session, width, height int) string {
	boxW := min(max(width-8, 30), 90)

	var title, body, footer string
	switch s.App().State {
	case arrange.PreviewPopup:
		title = "xrandr command"
		body = s.Preview()
		footer = "enter/esc: close"
	case arrange.HelpPopup:
		title = "Keys"
		body = helpTable(st, km)
		footer = "enter/esc: close"
	case arrange.ConnectionPopup:
		title = "Outputs"
		body = connectionList(st, s.Monitors(), s.App().Connected)
		footer = fmt.Sprintf("%s: toggle  enter/esc: close", km.binding(arrange.ActionToggle).Help().Key)
	default:
		return ""
	}

	content := st.title.Render(title) + "\n\n" + body + "\n\n" + st.dim.Render(footer)
	box := st.popup.Width(boxW).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func helpTable(st styles, km keyMap) string {
	keyW := 0
	for _, col := range km.FullHelp() {
		for _, b := range col {
			keyW = max(keyW, lipgloss.Width(b.Help().Key))
		}
	}
	var lines []string
	for _, col := range km.FullHelp() {
		for _, b := range col {
			h := b.Help()
			pad := strings.Repeat(" ", keyW-lipgloss.Width(h.Key))
			lines = append(lines, st.value.Render(h.Key)+pad+"  "+st.label.Render(h.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

func connectionList(st styles, ms layout.Monitors, cursor int) string {
	lines := make([]string, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		mark := "[ ]"
		if m.Enabled {
			mark = "[x]"
		}
		text := mark + " " + m.Name
		switch {
		case i == cursor:
			lines = append(lines, st.cursorRow.Render("▸ "+text))
		case !m.Enabled:
			lines = append(lines, "  "+st.disabled.Render(text))
		default:
			lines = append(lines, "  "+text)
		}
	}
	return strings.Join(lines, "\n")
}
