// Package mcp serves the layout engine as Model Context Protocol tools over
// stdio, so an agent can inspect and rearrange monitors without the TUI.
package mcp

import (
	"context"
	"io"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/randrtile/internal/arrange"
)

const (
	ServerName    = "randrtile"
	ServerVersion = "0.1.0"
)

// Options configures a Server.
type Options struct {
	// Command is the xrandr binary named in command previews.
	Command string
	Logger  *slog.Logger
}

// Server is the MCP server. A session is not safe for concurrent use, so
// every tool call holds mu for its whole duration.
type Server struct {
	mcpServer *mcpsdk.Server
	session   *arrange.Session
	command   string
	logger    *slog.Logger

	mu sync.Mutex
}

// NewServer wraps s and registers the layout tools.
func NewServer(s *arrange.Session, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	command := opts.Command
	if command == "" {
		command = "xrandr"
	}

	srv := &Server{
		session: s,
		command: command,
		logger:  logger,
	}
	srv.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	srv.registerTools()
	return srv
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "debug", s.session.App().Debug)
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List every output with its mode, rate, scale, position, neighbors and available modes. Disabled outputs are included with enabled=false.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_monitor",
		Description: "Move a monitor one step left, right, up or down. It swaps with the neighbor on that side, or slides around a corner, or is pushed past a monitor above or below. Fails when the monitor cannot move that way.",
	}, s.handleMoveMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_mode",
		Description: "Change a monitor's resolution (e.g. \"1920x1080\") and/or refresh rate. A new resolution resets the scale to 1 and picks the mode's first rate unless rate is given. Monitors beyond it move to keep the layout gap-free.",
	}, s.handleSetMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_scale",
		Description: "Set a monitor's scale between 0.25 and 4 (rounded to two decimals). The displayed size is the mode divided by the scale.",
	}, s.handleSetScale)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_primary",
		Description: "Make a monitor the primary output. Exactly one monitor is primary.",
	}, s.handleSetPrimary)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_connected",
		Description: "Enable or disable an output. Disabling closes the gap it leaves; enabling appends it to the right of the first row. The last enabled output cannot be disabled.",
	}, s.handleSetConnected)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo",
		Description: "Revert the last layout change. Undoing past the initial layout does nothing.",
	}, s.handleUndo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_command",
		Description: "Return the xrandr command that would apply the current layout, without running it.",
	}, s.handlePreviewCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "validate",
		Description: "Check the layout invariants: symmetric neighbor links, no overlaps, a single primary, every enabled monitor reachable.",
	}, s.handleValidate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply",
		Description: "Run xrandr to put the current layout on screen. In debug mode nothing is run and applied is false.",
	}, s.handleApply)
}
