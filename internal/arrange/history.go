package arrange

import "github.com/1broseidon/randrtile/internal/layout"

// History is the undo stack of whole-layout snapshots.
type History struct {
	snapshots []layout.Monitors
}

// Push stores a deep copy of ms.
func (h *History) Push(ms layout.Monitors) {
	h.snapshots = append(h.snapshots, ms.Clone())
}

// Pop removes and returns the latest snapshot.
func (h *History) Pop() (layout.Monitors, bool) {
	if len(h.snapshots) == 0 {
		return nil, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots[len(h.snapshots)-1] = nil
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}
