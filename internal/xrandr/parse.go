// Package xrandr reads `xrandr --query` output into a layout and turns a
// layout back into xrandr arguments.
package xrandr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/1broseidon/randrtile/internal/layout"
)

// ErrNoOutputs is returned when the query lists no active output.
var ErrNoOutputs = errors.New("xrandr: no active outputs")

var (
	// An active output ends its header with the physical size in mm.
	headerRe = regexp.MustCompile(`^(\S+) connected (primary )?(\d+)x(\d+)\+(-?\d+)\+(-?\d+)\b.*mm$`)
	modeRe   = regexp.MustCompile(`^\s+(\d+)x(\d+)\S*((?:\s+\S+)*)\s*$`)
)

type record struct {
	mon    layout.Monitor
	active bool
}

// Parse reads xrandr query output and returns the active outputs in the
// order they were listed, with neighbor links derived from positions.
// Lines that do not fit the format are skipped.
func Parse(r io.Reader) (layout.Monitors, error) {
	var (
		ms  layout.Monitors
		cur *record
	)
	flush := func() {
		if cur == nil {
			return
		}
		if cur.active {
			ms = append(ms, cur.mon)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			flush()
			if m := headerRe.FindStringSubmatch(line); m != nil {
				cur = &record{mon: parseHeader(m)}
			}
			continue
		}

		if cur == nil {
			continue
		}
		if m := modeRe.FindStringSubmatch(line); m != nil {
			parseMode(cur, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read xrandr output: %w", err)
	}
	flush()

	if len(ms) == 0 {
		return nil, ErrNoOutputs
	}
	for i := range ms {
		m := &ms[i]
		// The header holds the scaled footprint; derive the scale from it
		// and let the mode table decide the native size.
		if m.Displayed.W > 0 {
			m.Scale = layout.RoundScale(float64(m.Resolution.W) / float64(m.Displayed.W))
		}
		m.UpdateScale()
	}
	ms.Normalize()
	ms.RecomputeProximity()
	return ms, nil
}

func parseHeader(m []string) layout.Monitor {
	mon := layout.NewMonitor(m[1])
	mon.Primary = m[2] != ""
	mon.Displayed = layout.Size{W: atoi(m[3]), H: atoi(m[4])}
	mon.Position = layout.Point{X: atoi(m[5]), Y: atoi(m[6])}
	return mon
}

func parseMode(rec *record, m []string) {
	res := layout.Size{W: atoi(m[1]), H: atoi(m[2])}
	var rates []float64
	for _, tok := range strings.Fields(m[3]) {
		current := strings.Contains(tok, "*")
		tok = strings.TrimRight(tok, "*+")
		if tok == "" {
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		if current && !rec.active {
			rec.active = true
			rec.mon.Resolution = res
			rec.mon.Framerate = f
		}
		rates = append(rates, f)
	}
	if len(rates) == 0 {
		return
	}
	rec.mon.Modes[res] = append(rec.mon.Modes[res], rates...)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
