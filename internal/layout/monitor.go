package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// None marks an absent neighbor link.
const None = -1

const (
	// ScaleStep is the increment applied by one scale adjustment.
	ScaleStep = 0.05
	MinScale  = 0.25
	MaxScale  = 4.0
)

var (
	ErrNoModes        = errors.New("monitor has no modes")
	ErrUnknownMode    = errors.New("resolution is not an available mode")
	ErrLastMonitor    = errors.New("cannot disable the last enabled monitor")
	ErrAlreadyEnabled = errors.New("monitor is already enabled")
	ErrNotEnabled     = errors.New("monitor is not enabled")
)

// Monitor is one X11 output and its footprint on the virtual canvas.
type Monitor struct {
	Name     string
	Enabled  bool
	Primary  bool
	Selected bool

	// Resolution is the native mode sent to xrandr; Displayed is the
	// footprint after scale and is what all geometry uses.
	Resolution Size
	Displayed  Size
	Scale      float64
	Framerate  float64

	// Modes maps each supported resolution to its refresh rates, in the
	// order xrandr listed them.
	Modes map[Size][]float64

	Position Point

	Left  int
	Right int
	Up    int
	Down  int
}

// NewMonitor returns an enabled monitor with no links and scale 1.
func NewMonitor(name string) Monitor {
	return Monitor{
		Name:    name,
		Enabled: true,
		Scale:   1,
		Modes:   make(map[Size][]float64),
		Left:    None,
		Right:   None,
		Up:      None,
		Down:    None,
	}
}

// Neighbor returns the index linked in direction d, or None.
func (m *Monitor) Neighbor(d Direction) int {
	switch d {
	case Left:
		return m.Left
	case Right:
		return m.Right
	case Up:
		return m.Up
	default:
		return m.Down
	}
}

// SetNeighbor sets the link in direction d.
func (m *Monitor) SetNeighbor(d Direction, idx int) {
	switch d {
	case Left:
		m.Left = idx
	case Right:
		m.Right = idx
	case Up:
		m.Up = idx
	default:
		m.Down = idx
	}
}

func (m *Monitor) clearLinks() {
	m.Left, m.Right, m.Up, m.Down = None, None, None, None
}

// Rect returns the monitor's displayed rectangle.
func (m *Monitor) Rect() Rect {
	return Rect{X: m.Position.X, Y: m.Position.Y, W: m.Displayed.W, H: m.Displayed.H}
}

// SetFramerate sets the framerate to the i-th rate of the current resolution.
func (m *Monitor) SetFramerate(i int) error {
	rates, ok := m.Modes[m.Resolution]
	if !ok || len(rates) == 0 {
		return fmt.Errorf("%s %s: %w", m.Name, m.Resolution, ErrUnknownMode)
	}
	if i < 0 || i >= len(rates) {
		return fmt.Errorf("%s: framerate index %d out of range", m.Name, i)
	}
	m.Framerate = rates[i]
	return nil
}

// Framerates returns the rates available at the current resolution.
func (m *Monitor) Framerates() []float64 {
	return m.Modes[m.Resolution]
}

// SortedResolutions returns the available resolutions ordered by width, then
// height, both descending.
func (m *Monitor) SortedResolutions() []Size {
	out := make([]Size, 0, len(m.Modes))
	for s := range m.Modes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].W != out[j].W {
			return out[i].W > out[j].W
		}
		return out[i].H > out[j].H
	})
	return out
}

// UpdateScale recomputes Displayed from Resolution and Scale.
func (m *Monitor) UpdateScale() {
	m.Displayed = scaled(m.Resolution, m.Scale)
}

// ResDifference returns how much Displayed would change if the monitor were
// rescaled to scale.
func (m *Monitor) ResDifference(scale float64) Size {
	next := scaled(m.Resolution, scale)
	return Size{W: next.W - m.Displayed.W, H: next.H - m.Displayed.H}
}

// Clone returns a deep copy of m.
func (m Monitor) Clone() Monitor {
	modes := make(map[Size][]float64, len(m.Modes))
	for s, rates := range m.Modes {
		modes[s] = append([]float64(nil), rates...)
	}
	m.Modes = modes
	return m
}

// RoundScale rounds s to two decimals and clamps it to [MinScale, MaxScale].
func RoundScale(s float64) float64 {
	s = math.Round(s*100) / 100
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// scaled floors res/scale per component. The epsilon keeps exact decimal
// ratios such as 2560/0.8 from truncating to one pixel short.
func scaled(res Size, scale float64) Size {
	if scale <= 0 {
		scale = 1
	}
	return Size{
		W: int(math.Floor(float64(res.W)/scale + 1e-6)),
		H: int(math.Floor(float64(res.H)/scale + 1e-6)),
	}
}
