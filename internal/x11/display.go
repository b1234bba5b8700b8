package x11

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SocketDir is where local X servers listen.
const SocketDir = "/tmp/.X11-unix"

var (
	getenvFn  = os.Getenv
	readDirFn = os.ReadDir
)

// ResolveDisplay picks the X display to talk to: explicit when set, else
// $DISPLAY, else the highest-numbered local socket. It returns "" when none
// is found.
func ResolveDisplay(explicit string) string {
	if d := strings.TrimSpace(explicit); d != "" {
		return d
	}
	if d := strings.TrimSpace(getenvFn("DISPLAY")); d != "" {
		return d
	}
	return displayFromSockets(SocketDir)
}

func displayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		displays = append(displays, n)
	}
	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}

// WithDisplay returns env with DISPLAY set to display, replacing any
// existing entry. An empty display leaves env alone.
func WithDisplay(env []string, display string) []string {
	if display == "" {
		return env
	}
	const prefix = "DISPLAY="
	out := make([]string, 0, len(env)+1)
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return append(out, prefix+display)
}
