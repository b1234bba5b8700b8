package xrandr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/randrtile/internal/layout"
)

// Args returns the xrandr arguments that reproduce ms. Disabled monitors are
// left out. The scale is inverted because xrandr multiplies the mode by it
// while the layout divides.
func Args(ms layout.Monitors) []string {
	var args []string
	for i := range ms {
		args = append(args, outputArgs(&ms[i])...)
	}
	return args
}

// Preview renders the command one output per line, as shown in the preview
// popup.
func Preview(ms layout.Monitors) string {
	var b strings.Builder
	b.WriteString("xrandr")
	for i := range ms {
		if a := outputArgs(&ms[i]); len(a) > 0 {
			b.WriteString("\n> ")
			b.WriteString(strings.Join(a, " "))
		}
	}
	return b.String()
}

// CommandLine returns the command as a single shell line.
func CommandLine(command string, ms layout.Monitors) string {
	return strings.Join(append([]string{command}, Args(ms)...), " ")
}

func outputArgs(m *layout.Monitor) []string {
	if !m.Enabled {
		return nil
	}
	args := []string{"--output", m.Name}
	if m.Primary {
		args = append(args, "--primary")
	}
	scale := m.Scale
	if scale <= 0 {
		scale = 1
	}
	return append(args,
		"--mode", m.Resolution.String(),
		"--rate", strconv.FormatFloat(m.Framerate, 'f', -1, 64),
		"--pos", fmt.Sprintf("%dx%d", m.Position.X, m.Position.Y),
		"--scale", fmt.Sprintf("%.2f", 1/scale),
	)
}
