package tui

import (
	"strings"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/layout"
)

// boxRunes are the corners and edges of one monitor outline, in the order
// top-left, top-right, bottom-left, bottom-right, horizontal, vertical.
type boxRunes [6]rune

var (
	plainBox   = boxRunes{'┌', '┐', '└', '┘', '─', '│'}
	cursorBox  = boxRunes{'╔', '╗', '╚', '╝', '═', '║'}
	carriedBox = boxRunes{'┏', '┓', '┗', '┛', '━', '┃'}
)

// renderCanvas draws the enabled monitors scaled into a width x height
// character grid. A cell is about twice as tall as it is wide, so rows
// cover twice the pixels of columns. The cursor monitor gets a double
// outline and the monitor being carried a heavy one.
func renderCanvas(ms layout.Monitors, app arrange.App, width, height int) []string {
	if width < 8 || height < 4 {
		return emptyCanvas(width, height)
	}
	extent := canvasExtent(ms)
	if extent.W == 0 || extent.H == 0 {
		return emptyCanvas(width, height)
	}

	colPx := max(ceilDiv(extent.W, width-1), ceilDiv(extent.H, 2*(height-1)), 1)
	rowPx := 2 * colPx

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Highlighted monitors go last so their outlines win shared cells.
	order := make([]int, 0, len(ms))
	var late []int
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		if i == app.Selected || ms[i].Selected {
			late = append(late, i)
			continue
		}
		order = append(order, i)
	}
	order = append(order, late...)

	for _, i := range order {
		m := &ms[i]
		box := plainBox
		switch {
		case m.Selected && app.State == arrange.MonitorSwap:
			box = carriedBox
		case i == app.Selected:
			box = cursorBox
		}
		x1 := m.Position.X / colPx
		y1 := m.Position.Y / rowPx
		x2 := min((m.Position.X+m.Displayed.W)/colPx-1, width-1)
		y2 := min((m.Position.Y+m.Displayed.H)/rowPx-1, height-1)
		drawMonitor(canvas, x1, y1, x2, y2, box, monitorLabel(m))
	}

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func monitorLabel(m *layout.Monitor) []string {
	name := m.Name
	if m.Primary {
		name += "*"
	}
	return []string{name, m.Resolution.String()}
}

func drawMonitor(canvas [][]rune, x1, y1, x2, y2 int, box boxRunes, label []string) {
	// Need room for an outline around at least one cell
	if x2-x1 < 2 || y2-y1 < 2 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = box[4]
		canvas[y2][x] = box[4]
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = box[5]
		canvas[y][x2] = box[5]
	}
	canvas[y1][x1] = box[0]
	canvas[y1][x2] = box[1]
	canvas[y2][x1] = box[2]
	canvas[y2][x2] = box[3]

	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			canvas[y][x] = ' '
		}
	}

	inner := x2 - x1 - 1
	row := (y1 + y2) / 2
	if len(label) > 1 && row-1 > y1 && y2-y1 > 3 {
		row--
	}
	for _, text := range label {
		if row >= y2 {
			break
		}
		runes := []rune(text)
		if len(runes) > inner {
			runes = runes[:inner]
		}
		start := x1 + 1 + (inner-len(runes))/2
		copy(canvas[row][start:], runes)
		row++
	}
}

// canvasExtent is the size of the bounding box of the enabled monitors,
// measured from the origin.
func canvasExtent(ms layout.Monitors) layout.Size {
	var ext layout.Size
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		r := ms[i].Rect()
		ext.W = max(ext.W, r.X+r.W)
		ext.H = max(ext.H, r.Y+r.H)
	}
	return ext
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, max(height, 0))
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
