package layout

import "fmt"

// Disconnect disables the monitor at idx. Its right neighbor (or, failing
// that, its down neighbor) slides into the freed corner together with its
// subtree and adopts the remaining neighbors where its own slots are free.
// Without either, the layout settles around the left or up neighbor. Pieces
// left overlapping or cut off are re-attached past the right edge. The last
// enabled monitor cannot be disconnected.
func (ms Monitors) Disconnect(idx int) error {
	if idx < 0 || idx >= len(ms) {
		return fmt.Errorf("disconnect: index %d out of range", idx)
	}
	m := &ms[idx]
	if !m.Enabled {
		return fmt.Errorf("disconnect %s: %w", m.Name, ErrNotEnabled)
	}
	if ms.EnabledCount() <= 1 {
		return fmt.Errorf("disconnect %s: %w", m.Name, ErrLastMonitor)
	}

	head := None
	if r := m.Right; r != None {
		head = r
		ms.ShiftMons(r, ms[r].Position.X-m.Position.X, false, map[int]bool{idx: true})
	} else if d := m.Down; d != None {
		head = d
		ms.ShiftMons(d, ms[d].Position.Y-m.Position.Y, true, map[int]bool{idx: true})
	}

	var orphans [4]int
	for k, d := range Directions {
		orphans[k] = m.Neighbor(d)
		ms.unlink(idx, d)
	}

	m.Enabled = false
	m.Selected = false
	m.Primary = false
	m.Position = Point{}
	m.Resolution = Size{}
	m.Displayed = Size{}
	m.clearLinks()

	anchor := head
	for k, d := range Directions {
		n := orphans[k]
		if n == None || n == head {
			continue
		}
		if head == None {
			if anchor == None || d == Left {
				anchor = n
			}
			continue
		}
		if ms[head].Neighbor(d) == None && ms[n].Neighbor(d.Opposite()) == None {
			ms.link(head, n, d)
		}
	}
	if anchor == None {
		anchor = ms.FirstEnabled()
	}
	ms.settle(anchor)
	return nil
}

// Connect enables the monitor at idx and attaches it to the right of the
// rightmost monitor in the first row, at its largest resolution and scale 1.
// When that spot is taken by a monitor hanging below the first row, it goes
// past the right edge of the whole layout instead.
func (ms Monitors) Connect(idx int) error {
	if idx < 0 || idx >= len(ms) {
		return fmt.Errorf("connect: index %d out of range", idx)
	}
	m := &ms[idx]
	if m.Enabled {
		return fmt.Errorf("connect %s: %w", m.Name, ErrAlreadyEnabled)
	}
	sorted := m.SortedResolutions()
	if len(sorted) == 0 {
		return fmt.Errorf("connect %s: %w", m.Name, ErrNoModes)
	}

	pos := Point{}
	if tail := ms.firstRowTail(); tail != None {
		pos = ms[tail].adjacent(Right, Size{})
	}

	m.Enabled = true
	m.Resolution = sorted[0]
	m.Scale = 1
	m.UpdateScale()
	if err := m.SetFramerate(0); err != nil {
		return err
	}
	m.Position = pos
	if _, _, ok := ms.firstOverlap(); ok {
		ms.reattach([]int{idx})
	}
	ms.Normalize()
	ms.RecomputeProximity()
	return nil
}

// firstRowTail returns the last monitor reached by following right links
// from the top-left monitor.
func (ms Monitors) firstRowTail() int {
	start := None
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		if start == None ||
			ms[i].Position.Y < ms[start].Position.Y ||
			(ms[i].Position.Y == ms[start].Position.Y && ms[i].Position.X < ms[start].Position.X) {
			start = i
		}
	}
	if start == None {
		return None
	}
	return ms.chainEnd(start, Right)
}
