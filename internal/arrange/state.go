package arrange

// State is the dispatcher's current mode.
type State int

const (
	// MonitorEdit moves the cursor between monitors
	MonitorEdit State = iota
	// MonitorSwap carries the current monitor around the arrangement
	MonitorSwap
	// MenuSelect focuses the info panel of the selected monitor
	MenuSelect
	// InfoEdit picks a resolution or framerate from the option list
	InfoEdit
	// PreviewPopup shows the serialized xrandr command
	PreviewPopup
	// HelpPopup shows the key table
	HelpPopup
	// ConnectionPopup lists outputs with an enable toggle
	ConnectionPopup
	// Quit ends the session
	Quit
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case MonitorEdit:
		return "edit"
	case MonitorSwap:
		return "swap"
	case MenuSelect:
		return "menu"
	case InfoEdit:
		return "info"
	case PreviewPopup:
		return "preview"
	case HelpPopup:
		return "help"
	case ConnectionPopup:
		return "connections"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// IsPopup reports whether s is an overlay state.
func (s State) IsPopup() bool {
	return s == PreviewPopup || s == HelpPopup || s == ConnectionPopup
}

// IsMain reports whether s is one of the four editing states.
func (s State) IsMain() bool {
	return s == MonitorEdit || s == MonitorSwap || s == MenuSelect || s == InfoEdit
}

// MenuEntry is a row of the info panel.
type MenuEntry int

const (
	Position MenuEntry = iota
	Resolution
	Framerate
	Scale
	Primary
	LeftNeighbor
	DownNeighbor
	UpNeighbor
	RightNeighbor
	Resolutions
)

// MenuEntries lists the info panel rows in display order.
var MenuEntries = []MenuEntry{
	Position, Resolution, Framerate, Scale, Primary,
	LeftNeighbor, DownNeighbor, UpNeighbor, RightNeighbor, Resolutions,
}

func (e MenuEntry) String() string {
	switch e {
	case Position:
		return "Position"
	case Resolution:
		return "Resolution"
	case Framerate:
		return "Framerate"
	case Scale:
		return "Scale"
	case Primary:
		return "Primary"
	case LeftNeighbor:
		return "Left"
	case DownNeighbor:
		return "Down"
	case UpNeighbor:
		return "Up"
	case RightNeighbor:
		return "Right"
	case Resolutions:
		return "Resolutions"
	default:
		return "Unknown"
	}
}

// Next returns the following entry, staying on the last one.
func (e MenuEntry) Next() MenuEntry {
	if int(e) >= len(MenuEntries)-1 {
		return MenuEntries[len(MenuEntries)-1]
	}
	return e + 1
}

// Prev returns the preceding entry, staying on the first one.
func (e MenuEntry) Prev() MenuEntry {
	if e <= 0 {
		return MenuEntries[0]
	}
	return e - 1
}

// Editable reports whether Enter opens an option list for e.
func (e MenuEntry) Editable() bool {
	return e == Resolution || e == Framerate
}

// App is the dispatcher's cursor and mode state. It holds indices into the
// session's monitor list and never the monitors themselves.
type App struct {
	State    State
	Previous State

	// Current is the monitor being carried in swap mode; Selected is the
	// highlighted one.
	Current  int
	Selected int

	Menu  MenuEntry
	Extra int // cursor within the resolution or framerate list

	Connected int // cursor within the connection popup
	Debug     bool
}

// NewApp returns an app in MonitorEdit with the cursor on first.
func NewApp(first int, debug bool) App {
	return App{
		State:    MonitorEdit,
		Previous: MonitorEdit,
		Current:  first,
		Selected: first,
		Debug:    debug,
	}
}

// enter switches to next, remembering the state it came from.
func (a *App) enter(next State) {
	a.Previous = a.State
	a.State = next
}
