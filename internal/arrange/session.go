// Package arrange is the interactive dispatcher: it owns the monitor layout
// and maps user actions onto layout operations, with undo.
package arrange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/randrtile/internal/layout"
	"github.com/1broseidon/randrtile/internal/xrandr"
)

var (
	ErrUnknownMonitor = errors.New("unknown monitor")
	ErrNoMove         = errors.New("monitor cannot move that way")
	ErrNoApplier      = errors.New("no xrandr runner configured")
)

// Action is a decoded user input.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionEnter
	ActionEscape
	ActionSwap
	ActionApply
	ActionUndo
	ActionPrimary
	ActionPreview
	ActionHelp
	ActionConnections
	ActionToggle
	ActionQuit
)

var actionNames = map[Action]string{
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionEnter:       "enter",
	ActionEscape:      "escape",
	ActionSwap:        "swap",
	ActionApply:       "apply",
	ActionUndo:        "undo",
	ActionPrimary:     "primary",
	ActionPreview:     "preview",
	ActionHelp:        "help",
	ActionConnections: "connections",
	ActionToggle:      "toggle",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// direction maps the four movement actions onto layout directions.
func (a Action) direction() (layout.Direction, bool) {
	switch a {
	case ActionLeft:
		return layout.Left, true
	case ActionRight:
		return layout.Right, true
	case ActionUp:
		return layout.Up, true
	case ActionDown:
		return layout.Down, true
	}
	return 0, false
}

// Applier pushes a layout to the display server.
type Applier interface {
	Apply(ctx context.Context, ms layout.Monitors) error
}

// Options configures a Session.
type Options struct {
	// Debug suppresses Apply.
	Debug   bool
	Applier Applier
	Logger  *slog.Logger
}

// Session owns the layout for one interactive run. It is not safe for
// concurrent use.
type Session struct {
	ms      layout.Monitors
	app     App
	history History
	applied layout.Monitors
	applier Applier
	logger  *slog.Logger
	status  string
}

// NewSession starts a session on ms. The initial layout is the root of the
// undo history.
func NewSession(ms layout.Monitors, opts Options) (*Session, error) {
	first := ms.FirstEnabled()
	if first == layout.None {
		return nil, fmt.Errorf("arrange: no enabled monitors")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		ms:      ms,
		app:     NewApp(first, opts.Debug),
		applied: ms.Clone(),
		applier: opts.Applier,
		logger:  logger,
	}
	s.ms.ClearSelection()
	s.history.Push(s.ms)
	return s, nil
}

// Monitors returns the live layout. Callers must not modify it.
func (s *Session) Monitors() layout.Monitors { return s.ms }

// App returns a copy of the cursor and mode state.
func (s *Session) App() App { return s.app }

// Status returns the message left by the last rejected action or apply.
func (s *Session) Status() string { return s.status }

// Done reports whether the session has quit.
func (s *Session) Done() bool { return s.app.State == Quit }

// UndoDepth returns the number of snapshots in the history.
func (s *Session) UndoDepth() int { return s.history.Len() }

// Preview returns the popup rendering of the xrandr command.
func (s *Session) Preview() string { return xrandr.Preview(s.ms) }

// Baseline returns the preview of the layout last known to be on screen:
// the initial one, or the last one applied successfully.
func (s *Session) Baseline() string { return xrandr.Preview(s.applied) }

// Dispatch applies one action. Rejected actions leave the layout and the
// history untouched and are reported through Status. Only a failed apply is
// returned as an error.
func (s *Session) Dispatch(ctx context.Context, a Action) error {
	defer s.check()
	s.status = ""
	st := s.app.State
	s.logger.Debug("dispatch", "action", a, "state", st, "current", s.app.Current, "selected", s.app.Selected)

	switch a {
	case ActionQuit:
		s.app.enter(Quit)
	case ActionPreview, ActionHelp, ActionConnections:
		if st.IsMain() {
			s.app.enter(popupFor(a))
		}
	case ActionUndo:
		if st.IsMain() {
			s.Undo()
		}
	case ActionApply:
		if st.IsMain() {
			return s.Apply(ctx)
		}
	case ActionPrimary:
		if st.IsMain() {
			s.reject(s.setPrimary(s.app.Selected))
		}
	case ActionSwap:
		if st == MonitorEdit {
			s.history.Push(s.ms)
			s.app.Current = s.app.Selected
			s.ms.ClearSelection()
			s.ms[s.app.Current].Selected = true
			s.app.enter(MonitorSwap)
		}
	case ActionEnter:
		s.enter()
	case ActionEscape:
		s.escape()
	case ActionToggle:
		if st == ConnectionPopup {
			s.toggle()
		}
	default:
		if dir, ok := a.direction(); ok {
			s.move(dir)
		}
	}
	return nil
}

func popupFor(a Action) State {
	switch a {
	case ActionPreview:
		return PreviewPopup
	case ActionHelp:
		return HelpPopup
	default:
		return ConnectionPopup
	}
}

func (s *Session) enter() {
	switch st := s.app.State; {
	case st == MonitorEdit:
		s.app.Current = s.app.Selected
		s.ms.ClearSelection()
		s.ms[s.app.Current].Selected = true
		s.app.enter(MenuSelect)
	case st == MonitorSwap:
		s.ms.ClearSelection()
		s.app.enter(MonitorEdit)
	case st == MenuSelect:
		if s.app.Menu.Editable() {
			s.app.enter(InfoEdit)
		}
	case st == InfoEdit:
		s.commit()
	case st.IsPopup():
		s.app.State = s.app.Previous
	}
}

func (s *Session) escape() {
	switch st := s.app.State; {
	case st == MonitorSwap:
		s.ms.ClearSelection()
		s.app.enter(MonitorEdit)
		s.history.Push(s.ms)
	case st == MenuSelect:
		s.ms.ClearSelection()
		s.app.enter(MonitorEdit)
	case st == InfoEdit:
		s.app.enter(MenuSelect)
	case st.IsPopup():
		s.app.State = s.app.Previous
	}
}

func (s *Session) move(dir layout.Direction) {
	switch s.app.State {
	case MonitorEdit:
		if n := s.ms[s.app.Selected].Neighbor(dir); n != layout.None {
			s.app.Selected = n
			s.app.Menu = Position
			s.app.Extra = 0
		}
	case MonitorSwap:
		idx, ok := s.carry(s.app.Current, dir)
		if !ok {
			s.reject(fmt.Errorf("%s: %w", s.ms[s.app.Current].Name, ErrNoMove))
			return
		}
		s.app.Current, s.app.Selected = idx, idx
		s.app.Extra = 0
	case MenuSelect:
		switch {
		case dir == layout.Down:
			s.app.Menu = s.app.Menu.Next()
			s.app.Extra = 0
		case dir == layout.Up:
			s.app.Menu = s.app.Menu.Prev()
			s.app.Extra = 0
		case s.app.Menu == Scale:
			delta := layout.ScaleStep
			if dir == layout.Left {
				delta = -delta
			}
			s.reject(s.stepScale(s.app.Selected, delta))
		}
	case InfoEdit:
		if !dir.Vertical() {
			return
		}
		n := optionCount(&s.ms[s.app.Selected], s.app.Menu)
		s.app.Extra = saturate(s.app.Extra, dir == layout.Down, n)
	case ConnectionPopup:
		if dir.Vertical() {
			s.app.Connected = saturate(s.app.Connected, dir == layout.Down, len(s.ms))
		}
	}
}

// saturate steps i by one within [0, n-1].
func saturate(i int, forward bool, n int) int {
	if forward {
		if i < n-1 {
			return i + 1
		}
		return i
	}
	if i > 0 {
		return i - 1
	}
	return i
}

func optionCount(m *layout.Monitor, e MenuEntry) int {
	switch e {
	case Framerate:
		return len(m.Framerates())
	case Resolution:
		return len(m.Modes)
	}
	return 0
}

// carry moves the monitor at idx one step in dir: a swap with the neighbor
// there, else a corner traversal, else a push around an orthogonal pivot.
// It returns the monitor's index afterwards.
func (s *Session) carry(idx int, dir layout.Direction) (int, bool) {
	ms := s.ms
	if n := ms[idx].Neighbor(dir); n != layout.None {
		if err := ms.Swap(idx, n, dir); err != nil {
			return idx, false
		}
		return n, true
	}
	if ms.Traverse(idx, dir) {
		return idx, true
	}
	if dir.Vertical() {
		if pivot, side, ok := ms.FindHorizontalPivot(idx, dir); ok {
			return idx, ms.VertPush(idx, pivot, side, dir) == nil
		}
		return idx, false
	}
	if pivot, side, ok := ms.FindVerticalPivot(idx, dir); ok {
		return idx, ms.HorizontalPush(idx, pivot, side, dir) == nil
	}
	return idx, false
}

// commit applies the option under the InfoEdit cursor.
func (s *Session) commit() {
	idx := s.app.Selected
	m := &s.ms[idx]
	switch s.app.Menu {
	case Resolution:
		sorted := m.SortedResolutions()
		if s.app.Extra >= len(sorted) {
			return
		}
		res := sorted[s.app.Extra]
		s.reject(s.mutate(func() error { return s.resize(idx, res) }))
	case Framerate:
		i := s.app.Extra
		s.reject(s.mutate(func() error { return s.ms[idx].SetFramerate(i) }))
	}
}

// mutate runs fn and records the layout it started from. A failing fn
// leaves both the layout and the history as they were.
func (s *Session) mutate(fn func() error) error {
	before := s.ms.Clone()
	if err := fn(); err != nil {
		s.ms = before
		return err
	}
	s.history.Push(before)
	return nil
}

// resize switches idx to the native mode res at scale 1 and its first rate,
// moving everything beyond it by the change in footprint.
func (s *Session) resize(idx int, res layout.Size) error {
	m := &s.ms[idx]
	if _, ok := m.Modes[res]; !ok {
		return fmt.Errorf("%s %s: %w", m.Name, res, layout.ErrUnknownMode)
	}
	s.ms.ShiftRes(idx, layout.Size{W: res.W - m.Displayed.W, H: res.H - m.Displayed.H})
	m.Resolution = res
	m.Scale = 1
	m.UpdateScale()
	if err := m.SetFramerate(0); err != nil {
		return err
	}
	s.ms.UpdateNeighborPositions()
	return nil
}

func (s *Session) stepScale(idx int, delta float64) error {
	next := layout.RoundScale(s.ms[idx].Scale + delta)
	if next == s.ms[idx].Scale {
		return nil
	}
	return s.mutate(func() error { return s.rescale(idx, next) })
}

func (s *Session) rescale(idx int, scale float64) error {
	s.ms.ShiftRes(idx, s.ms[idx].ResDifference(scale))
	s.ms[idx].Scale = scale
	s.ms[idx].UpdateScale()
	s.ms.UpdateNeighborPositions()
	return nil
}

func (s *Session) setPrimary(idx int) error {
	if s.ms[idx].Primary {
		return nil
	}
	return s.mutate(func() error { return s.ms.SetPrimary(idx) })
}

// toggle enables or disables the output under the connection cursor.
func (s *Session) toggle() {
	i := s.app.Connected
	if i < 0 || i >= len(s.ms) {
		return
	}
	err := s.mutate(func() error {
		if s.ms[i].Enabled {
			return s.ms.Disconnect(i)
		}
		return s.ms.Connect(i)
	})
	if err != nil {
		s.reject(err)
		return
	}
	s.logger.Info("toggled output", "output", s.ms[i].Name, "enabled", s.ms[i].Enabled)
	s.repairCursor(s.ms[s.app.Current].Name, s.ms[s.app.Selected].Name)
}

// Undo restores the previous snapshot. The root snapshot is never consumed,
// so undoing at the root is a no-op.
func (s *Session) Undo() {
	prev, ok := s.history.Pop()
	if !ok {
		return
	}
	current, selected := s.ms[s.app.Current].Name, s.ms[s.app.Selected].Name
	s.ms = prev
	if s.history.Len() == 0 {
		s.history.Push(prev)
	}
	s.repairCursor(current, selected)
}

// repairCursor points Current and Selected back at the named monitors after
// the list was replaced or reordered, falling back to the first enabled
// monitor. The Selected flag is then re-derived from the mode.
func (s *Session) repairCursor(current, selected string) {
	locate := func(name string) int {
		i := s.ms.Index(name)
		if i == layout.None || !s.ms[i].Enabled {
			return s.ms.FirstEnabled()
		}
		return i
	}
	s.app.Current = locate(current)
	s.app.Selected = locate(selected)
	s.app.Connected = min(max(s.app.Connected, 0), len(s.ms)-1)

	mode := s.app.State
	if mode.IsPopup() {
		mode = s.app.Previous
	}
	s.ms.ClearSelection()
	if mode != MonitorEdit && s.app.Current != layout.None {
		s.ms[s.app.Current].Selected = true
	}
}

// Apply sends the layout to xrandr. In debug mode nothing is run.
func (s *Session) Apply(ctx context.Context) error {
	if s.app.Debug {
		s.status = "debug mode: apply suppressed"
		s.logger.Info("apply suppressed", "args", xrandr.Args(s.ms))
		return nil
	}
	if s.applier == nil {
		s.status = ErrNoApplier.Error()
		return ErrNoApplier
	}
	if err := s.applier.Apply(ctx, s.ms); err != nil {
		s.status = "apply failed: " + err.Error()
		s.logger.Error("apply failed", "error", err)
		return err
	}
	s.applied = s.ms.Clone()
	s.status = "applied"
	return nil
}

func (s *Session) reject(err error) {
	if err == nil {
		return
	}
	s.status = err.Error()
	s.logger.Warn("action rejected", "error", err, "state", s.app.State)
}

// check enforces link symmetry after every dispatch. A broken link table
// means an operation is wrong and the layout can no longer be trusted.
func (s *Session) check() {
	if err := s.ms.CheckLinks(); err != nil {
		panic(fmt.Sprintf("arrange: layout invariant violated: %v", err))
	}
}
