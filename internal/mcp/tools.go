package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/randrtile/internal/layout"
	"github.com/1broseidon/randrtile/internal/xrandr"
)

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, s.layoutOutput(), nil
}

func (s *Server) handleMoveMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveMonitorInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	dir, err := layout.ParseDirection(strings.ToLower(strings.TrimSpace(args.Direction)))
	if err != nil {
		return nil, LayoutOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.MoveMonitor(args.Name, dir); err != nil {
		s.logger.Warn("move_monitor rejected", "output", args.Name, "direction", dir, "error", err)
		return nil, LayoutOutput{}, err
	}
	s.logger.Info("move_monitor", "output", args.Name, "direction", dir)
	return nil, s.layoutOutput(), nil
}

func (s *Server) handleSetMode(_ context.Context, _ *mcpsdk.CallToolRequest, args SetModeInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	if args.Mode == "" && args.Rate == nil {
		return nil, LayoutOutput{}, fmt.Errorf("set_mode needs mode, rate or both")
	}
	var res layout.Size
	if args.Mode != "" {
		var err error
		if res, err = layout.ParseSize(strings.TrimSpace(args.Mode)); err != nil {
			return nil, LayoutOutput{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A rate the new mode lacks rolls the resolution change back.
	before := s.session.UndoDepth()
	if args.Mode != "" {
		if err := s.session.SetResolution(args.Name, res); err != nil {
			return nil, LayoutOutput{}, err
		}
	}
	if args.Rate != nil {
		if err := s.session.SetFramerate(args.Name, *args.Rate); err != nil {
			if s.session.UndoDepth() > before {
				s.session.Undo()
			}
			return nil, LayoutOutput{}, err
		}
	}
	s.logger.Info("set_mode", "output", args.Name, "mode", args.Mode, "rate", args.Rate)
	return nil, s.layoutOutput(), nil
}

func (s *Server) handleSetScale(_ context.Context, _ *mcpsdk.CallToolRequest, args SetScaleInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.SetScale(args.Name, args.Scale); err != nil {
		return nil, LayoutOutput{}, err
	}
	s.logger.Info("set_scale", "output", args.Name, "scale", args.Scale)
	return nil, s.layoutOutput(), nil
}

func (s *Server) handleSetPrimary(_ context.Context, _ *mcpsdk.CallToolRequest, args SetPrimaryInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.SetPrimary(args.Name); err != nil {
		return nil, LayoutOutput{}, err
	}
	s.logger.Info("set_primary", "output", args.Name)
	return nil, s.layoutOutput(), nil
}

func (s *Server) handleSetConnected(_ context.Context, _ *mcpsdk.CallToolRequest, args SetConnectedInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.SetConnected(args.Name, args.Enabled); err != nil {
		return nil, LayoutOutput{}, err
	}
	s.logger.Info("set_connected", "output", args.Name, "enabled", args.Enabled)
	return nil, s.layoutOutput(), nil
}

func (s *Server) handleUndo(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndoInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Undo()
	s.logger.Info("undo", "depth", s.session.UndoDepth())
	return nil, s.layoutOutput(), nil
}

func (s *Server) handlePreviewCommand(_ context.Context, _ *mcpsdk.CallToolRequest, _ PreviewCommandInput) (*mcpsdk.CallToolResult, PreviewCommandOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.session.Monitors()
	return nil, PreviewCommandOutput{
		Command: xrandr.CommandLine(s.command, ms),
		Args:    xrandr.Args(ms),
	}, nil
}

func (s *Server) handleValidate(_ context.Context, _ *mcpsdk.CallToolRequest, _ ValidateInput) (*mcpsdk.CallToolResult, ValidateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Monitors().Validate(); err != nil {
		return nil, ValidateOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateOutput{Valid: true}, nil
}

func (s *Server) handleApply(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ApplyInput) (*mcpsdk.CallToolResult, ApplyOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := ApplyOutput{Command: xrandr.CommandLine(s.command, s.session.Monitors())}
	if err := s.session.Apply(ctx); err != nil {
		return nil, ApplyOutput{}, err
	}
	out.Applied = !s.session.App().Debug
	out.Status = s.session.Status()
	return nil, out, nil
}

// layoutOutput snapshots the session. Callers hold mu.
func (s *Server) layoutOutput() LayoutOutput {
	ms := s.session.Monitors()
	out := LayoutOutput{
		Monitors:  make([]MonitorInfo, 0, len(ms)),
		Command:   xrandr.CommandLine(s.command, ms),
		UndoDepth: s.session.UndoDepth() - 1,
	}
	for i := range ms {
		out.Monitors = append(out.Monitors, monitorInfo(ms, &ms[i]))
	}
	return out
}

func monitorInfo(ms layout.Monitors, m *layout.Monitor) MonitorInfo {
	name := func(idx int) string {
		if idx == layout.None || idx >= len(ms) {
			return ""
		}
		return ms[idx].Name
	}
	info := MonitorInfo{
		Name:    m.Name,
		Enabled: m.Enabled,
		Primary: m.Primary,
		Mode:    m.Resolution.String(),
		Rate:    m.Framerate,
		Scale:   m.Scale,
		X:       m.Position.X,
		Y:       m.Position.Y,
		Width:   m.Displayed.W,
		Height:  m.Displayed.H,
		Left:    name(m.Left),
		Right:   name(m.Right),
		Up:      name(m.Up),
		Down:    name(m.Down),
		Rates:   m.Framerates(),
	}
	for _, res := range m.SortedResolutions() {
		info.Modes = append(info.Modes, res.String())
	}
	return info
}
