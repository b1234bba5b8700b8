package arrange

import (
	"fmt"

	"github.com/1broseidon/randrtile/internal/layout"
)

// The methods below address monitors by output name and bypass the key
// state machine. Each successful call is one undo step.

func (s *Session) lookup(name string) (int, error) {
	idx := s.ms.Index(name)
	if idx == layout.None {
		return layout.None, fmt.Errorf("%q: %w", name, ErrUnknownMonitor)
	}
	return idx, nil
}

func (s *Session) lookupEnabled(name string) (int, error) {
	idx, err := s.lookup(name)
	if err != nil {
		return idx, err
	}
	if !s.ms[idx].Enabled {
		return layout.None, fmt.Errorf("%s: %w", name, layout.ErrNotEnabled)
	}
	return idx, nil
}

// cursorNames remembers which monitors the cursors point at so they can be
// found again after an operation reorders the list.
func (s *Session) cursorNames() (string, string) {
	return s.ms[s.app.Current].Name, s.ms[s.app.Selected].Name
}

// MoveMonitor carries the named monitor one step in dir, as swap mode does.
func (s *Session) MoveMonitor(name string, dir layout.Direction) error {
	defer s.check()
	idx, err := s.lookupEnabled(name)
	if err != nil {
		return err
	}
	current, selected := s.cursorNames()
	err = s.mutate(func() error {
		if _, ok := s.carry(idx, dir); !ok {
			return fmt.Errorf("%s %s: %w", name, dir, ErrNoMove)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.repairCursor(current, selected)
	return nil
}

// SetResolution switches the named monitor to res at scale 1.
func (s *Session) SetResolution(name string, res layout.Size) error {
	defer s.check()
	idx, err := s.lookupEnabled(name)
	if err != nil {
		return err
	}
	return s.mutate(func() error { return s.resize(idx, res) })
}

// SetFramerate picks rate from the named monitor's current mode.
func (s *Session) SetFramerate(name string, rate float64) error {
	defer s.check()
	idx, err := s.lookupEnabled(name)
	if err != nil {
		return err
	}
	m := &s.ms[idx]
	for i, r := range m.Framerates() {
		if r == rate {
			return s.mutate(func() error { return s.ms[idx].SetFramerate(i) })
		}
	}
	return fmt.Errorf("%s: %v Hz at %s: %w", name, rate, m.Resolution, layout.ErrUnknownMode)
}

// SetScale rescales the named monitor. scale is rounded to two decimals and
// must lie within [layout.MinScale, layout.MaxScale].
func (s *Session) SetScale(name string, scale float64) error {
	defer s.check()
	idx, err := s.lookupEnabled(name)
	if err != nil {
		return err
	}
	if scale < layout.MinScale || scale > layout.MaxScale {
		return fmt.Errorf("%s: scale %v outside [%v, %v]", name, scale, layout.MinScale, layout.MaxScale)
	}
	next := layout.RoundScale(scale)
	if next == s.ms[idx].Scale {
		return nil
	}
	return s.mutate(func() error { return s.rescale(idx, next) })
}

// SetPrimary makes the named monitor the only primary.
func (s *Session) SetPrimary(name string) error {
	defer s.check()
	idx, err := s.lookup(name)
	if err != nil {
		return err
	}
	return s.setPrimary(idx)
}

// SetConnected enables or disables the named output. Asking for the state
// it is already in does nothing.
func (s *Session) SetConnected(name string, enabled bool) error {
	defer s.check()
	idx, err := s.lookup(name)
	if err != nil {
		return err
	}
	if s.ms[idx].Enabled == enabled {
		return nil
	}
	current, selected := s.cursorNames()
	err = s.mutate(func() error {
		if enabled {
			return s.ms.Connect(idx)
		}
		return s.ms.Disconnect(idx)
	})
	if err != nil {
		return err
	}
	s.repairCursor(current, selected)
	return nil
}
