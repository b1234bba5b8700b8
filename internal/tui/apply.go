package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/randrtile/internal/arrange"
)

var errNoChanges = errors.New("layout matches what is on screen")

type applyPhase int

const (
	applyHidden  applyPhase = iota
	applyPreview            // showing diff, awaiting confirm
	applyResult             // showing outcome message
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// applyOverlay previews the xrandr command change and runs it on confirm.
type applyOverlay struct {
	phase        applyPhase
	diffLines    []diffLine
	err          error
	message      string
	scrollOffset int
}

func (a applyOverlay) Active() bool {
	return a.phase != applyHidden
}

// Show diffs the on-screen command against the pending one and opens the
// preview.
func (a *applyOverlay) Show(baseline, pending string) {
	a.err = nil
	a.message = ""
	a.scrollOffset = 0

	lines := lcsDiff(strings.Split(baseline, "\n"), strings.Split(pending, "\n"))
	if len(lines) == 0 {
		a.phase = applyResult
		a.err = errNoChanges
		return
	}
	a.diffLines = lines
	a.phase = applyPreview
}

// Update handles input while the overlay is active. Confirming dispatches
// the apply action to the session.
func (a applyOverlay) Update(ctx context.Context, msg tea.Msg, km keyMap, s *arrange.Session) applyOverlay {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a
	}
	switch a.phase {
	case applyPreview:
		switch {
		case key.Matches(keyMsg, km.binding(arrange.ActionEscape)):
			a.phase = applyHidden
		case key.Matches(keyMsg, km.binding(arrange.ActionEnter)), keyMsg.String() == "y":
			a.err = s.Dispatch(ctx, arrange.ActionApply)
			a.message = s.Status()
			a.phase = applyResult
		case key.Matches(keyMsg, km.binding(arrange.ActionUp)):
			if a.scrollOffset > 0 {
				a.scrollOffset--
			}
		case key.Matches(keyMsg, km.binding(arrange.ActionDown)):
			a.scrollOffset++
		}
	case applyResult:
		a.phase = applyHidden
	}
	return a
}

func (a applyOverlay) View(st styles, width, height int) string {
	switch a.phase {
	case applyPreview:
		return a.viewPreview(st, width, height)
	case applyResult:
		return a.viewResult(st, width, height)
	}
	return ""
}

func (a applyOverlay) viewPreview(st styles, areaW, areaH int) string {
	boxW := min(max(areaW-8, 30), 100)

	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// title, blank lines, footer, border and padding
	diffH := max(areaH-10, 3)
	maxScroll := max(len(a.diffLines)-diffH, 0)
	off := min(a.scrollOffset, maxScroll)
	end := min(off+diffH, len(a.diffLines))
	innerW := max(boxW-6, 10)

	var lines []string
	for _, dl := range a.diffLines[off:end] {
		t := dl.text
		if len(t) > innerW-2 {
			t = t[:innerW-2]
		}
		switch dl.kind {
		case diffAdded:
			lines = append(lines, addStyle.Render("+ "+t))
		case diffRemoved:
			lines = append(lines, rmStyle.Render("- "+t))
		default:
			lines = append(lines, ctxStyle.Render("  "+t))
		}
	}

	content := st.title.Render("Apply layout: pending changes") + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		st.dim.Render("enter: apply  esc: cancel  j/k: scroll")
	box := st.popup.Width(boxW).Render(content)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func (a applyOverlay) viewResult(st styles, areaW, areaH int) string {
	boxW := min(max(areaW-8, 30), 60)

	var msg string
	switch {
	case a.err != nil:
		msg = st.errorText.Render("Error: " + a.err.Error())
	case a.message == "applied":
		msg = st.okText.Render("Layout applied")
	default:
		msg = st.value.Render(a.message)
	}
	content := msg + "\n\n" + st.dim.Render("press any key to dismiss")
	box := st.popup.Width(boxW).Render(content)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

// lcsDiff computes a line diff using longest common subsequence, trimmed to
// two lines of context around each change.
func lcsDiff(a, b []string) []diffLine {
	m, n := len(a), len(b)

	tbl := make([][]int, m+1)
	for i := range tbl {
		tbl[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				tbl[i][j] = tbl[i+1][j+1] + 1
			case tbl[i+1][j] >= tbl[i][j+1]:
				tbl[i][j] = tbl[i+1][j]
			default:
				tbl[i][j] = tbl[i][j+1]
			}
		}
	}

	var all []diffLine
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			all = append(all, diffLine{kind: diffContext, text: a[i]})
			i++
			j++
		case tbl[i+1][j] >= tbl[i][j+1]:
			all = append(all, diffLine{kind: diffRemoved, text: a[i]})
			i++
		default:
			all = append(all, diffLine{kind: diffAdded, text: b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		all = append(all, diffLine{kind: diffRemoved, text: a[i]})
	}
	for ; j < n; j++ {
		all = append(all, diffLine{kind: diffAdded, text: b[j]})
	}

	return filterDiffContext(all, 2)
}

// filterDiffContext keeps changed lines and ctx surrounding context lines.
// It returns nil when nothing changed.
func filterDiffContext(lines []diffLine, ctx int) []diffLine {
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.kind == diffContext {
			continue
		}
		changed = true
		for j := max(i-ctx, 0); j <= min(i+ctx, len(lines)-1); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return nil
	}

	var result []diffLine
	prevKept := true
	for i, l := range lines {
		if !keep[i] {
			prevKept = false
			continue
		}
		if !prevKept {
			result = append(result, diffLine{kind: diffContext, text: "..."})
		}
		result = append(result, l)
		prevKept = true
	}
	return result
}
