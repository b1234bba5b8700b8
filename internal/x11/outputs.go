package x11

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/randrtile/internal/layout"
)

// ErrNoOutputs is returned when no connected output drives a CRTC.
var ErrNoOutputs = errors.New("randr: no active outputs")

// output is the part of an output's RandR state the layout needs.
type output struct {
	name    string
	primary bool
	// crtc geometry; zero size means the output is not driving a CRTC
	x, y          int
	width, height int
	mode          uint32
	modes         []uint32
}

// Outputs reads every connected output that drives a CRTC, in the order
// the server lists them, with neighbor links derived from positions.
func (c *Connection) Outputs() (layout.Monitors, error) {
	conn := c.XUtil.Conn()
	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}
	primary, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary output: %w", err)
	}

	var outs []output
	for _, id := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, id, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil || crtc.Width == 0 || crtc.Height == 0 {
			continue
		}
		out := output{
			name:    string(info.Name),
			primary: primary.Output == id,
			x:       int(crtc.X),
			y:       int(crtc.Y),
			width:   int(crtc.Width),
			height:  int(crtc.Height),
			mode:    uint32(crtc.Mode),
		}
		for _, m := range info.Modes {
			out.modes = append(out.modes, uint32(m))
		}
		outs = append(outs, out)
	}
	return buildMonitors(outs, resources.Modes)
}

// buildMonitors turns RandR outputs and the screen's mode table into a
// layout, the same shape the xrandr parser produces.
func buildMonitors(outs []output, modeInfos []randr.ModeInfo) (layout.Monitors, error) {
	byID := make(map[uint32]randr.ModeInfo, len(modeInfos))
	for _, mi := range modeInfos {
		byID[mi.Id] = mi
	}

	var ms layout.Monitors
	for _, out := range outs {
		active, ok := byID[out.mode]
		if !ok {
			continue
		}
		m := layout.NewMonitor(out.name)
		m.Primary = out.primary
		m.Position = layout.Point{X: out.x, Y: out.y}
		m.Resolution = layout.Size{W: int(active.Width), H: int(active.Height)}
		m.Framerate = Refresh(active)
		for _, id := range out.modes {
			mi, ok := byID[id]
			if !ok {
				continue
			}
			res := layout.Size{W: int(mi.Width), H: int(mi.Height)}
			rate := Refresh(mi)
			if !containsRate(m.Modes[res], rate) {
				m.Modes[res] = append(m.Modes[res], rate)
			}
		}
		if !containsRate(m.Modes[m.Resolution], m.Framerate) {
			m.Modes[m.Resolution] = append(m.Modes[m.Resolution], m.Framerate)
		}
		if out.width > 0 {
			m.Scale = layout.RoundScale(float64(m.Resolution.W) / float64(out.width))
		}
		m.UpdateScale()
		ms = append(ms, m)
	}
	if len(ms) == 0 {
		return nil, ErrNoOutputs
	}
	ms.Normalize()
	ms.RecomputeProximity()
	return ms, nil
}

// Refresh computes a mode's vertical refresh rate in Hz, rounded to two
// decimals as xrandr prints it.
func Refresh(mi randr.ModeInfo) float64 {
	vtotal := float64(mi.Vtotal)
	if mi.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		vtotal *= 2
	}
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		vtotal /= 2
	}
	if mi.Htotal == 0 || vtotal == 0 {
		return 0
	}
	hz := float64(mi.DotClock) / (float64(mi.Htotal) * vtotal)
	return math.Round(hz*100) / 100
}

func containsRate(rates []float64, rate float64) bool {
	for _, r := range rates {
		if r == rate {
			return true
		}
	}
	return false
}
