package mcp

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a single output.
type MonitorInfo struct {
	Name    string    `json:"name"`
	Enabled bool      `json:"enabled"`
	Primary bool      `json:"primary"`
	Mode    string    `json:"mode"`
	Rate    float64   `json:"rate"`
	Scale   float64   `json:"scale"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Left    string    `json:"left,omitempty"`
	Right   string    `json:"right,omitempty"`
	Up      string    `json:"up,omitempty"`
	Down    string    `json:"down,omitempty"`
	Modes   []string  `json:"modes"`
	Rates   []float64 `json:"rates"`
}

// LayoutOutput is returned by list_monitors and every tool that changes the
// layout.
type LayoutOutput struct {
	Monitors  []MonitorInfo `json:"monitors"`
	Command   string        `json:"command"`
	UndoDepth int           `json:"undo_depth"`
}

// MoveMonitorInput is the input for the move_monitor tool.
type MoveMonitorInput struct {
	Name      string `json:"name" jsonschema:"Output name, e.g. HDMI-1"`
	Direction string `json:"direction" jsonschema:"One of left, right, up, down"`
}

// SetModeInput is the input for the set_mode tool.
type SetModeInput struct {
	Name string   `json:"name" jsonschema:"Output name, e.g. HDMI-1"`
	Mode string   `json:"mode,omitempty" jsonschema:"Resolution as WIDTHxHEIGHT; must be one of the output's modes"`
	Rate *float64 `json:"rate,omitempty" jsonschema:"Refresh rate in Hz; must be offered by the (new) resolution"`
}

// SetScaleInput is the input for the set_scale tool.
type SetScaleInput struct {
	Name  string  `json:"name" jsonschema:"Output name, e.g. HDMI-1"`
	Scale float64 `json:"scale" jsonschema:"Scale factor between 0.25 and 4"`
}

// SetPrimaryInput is the input for the set_primary tool.
type SetPrimaryInput struct {
	Name string `json:"name" jsonschema:"Output name, e.g. HDMI-1"`
}

// SetConnectedInput is the input for the set_connected tool.
type SetConnectedInput struct {
	Name    string `json:"name" jsonschema:"Output name, e.g. HDMI-1"`
	Enabled bool   `json:"enabled" jsonschema:"true to enable the output, false to disable it"`
}

// UndoInput is the input for the undo tool.
type UndoInput struct{}

// PreviewCommandInput is the input for the preview_command tool.
type PreviewCommandInput struct{}

// PreviewCommandOutput is the output for the preview_command tool.
type PreviewCommandOutput struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// ValidateInput is the input for the validate tool.
type ValidateInput struct{}

// ValidateOutput is the output for the validate tool.
type ValidateOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ApplyInput is the input for the apply tool.
type ApplyInput struct{}

// ApplyOutput is the output for the apply tool.
type ApplyOutput struct {
	Applied bool   `json:"applied"`
	Command string `json:"command"`
	Status  string `json:"status"`
}
