package layout

import (
	"fmt"
	"strings"
)

// Monitors is the ordered monitor list. Indices are the identities that
// neighbor links refer to.
type Monitors []Monitor

// Clone returns a deep copy suitable for the undo history.
func (ms Monitors) Clone() Monitors {
	if ms == nil {
		return nil
	}
	out := make(Monitors, len(ms))
	for i := range ms {
		out[i] = ms[i].Clone()
	}
	return out
}

// Index returns the index of the monitor called name, or None.
func (ms Monitors) Index(name string) int {
	for i := range ms {
		if ms[i].Name == name {
			return i
		}
	}
	return None
}

// EnabledCount returns the number of enabled monitors.
func (ms Monitors) EnabledCount() int {
	n := 0
	for i := range ms {
		if ms[i].Enabled {
			n++
		}
	}
	return n
}

// FirstEnabled returns the lowest enabled index, or None.
func (ms Monitors) FirstEnabled() int {
	for i := range ms {
		if ms[i].Enabled {
			return i
		}
	}
	return None
}

// ClearSelection resets the Selected flag on every monitor.
func (ms Monitors) ClearSelection() {
	for i := range ms {
		ms[i].Selected = false
	}
}

// SetPrimary makes idx the only primary monitor.
func (ms Monitors) SetPrimary(idx int) error {
	if idx < 0 || idx >= len(ms) {
		return fmt.Errorf("monitor index %d out of range", idx)
	}
	if !ms[idx].Enabled {
		return fmt.Errorf("%s: %w", ms[idx].Name, ErrNotEnabled)
	}
	for i := range ms {
		ms[i].Primary = false
	}
	ms[idx].Primary = true
	return nil
}

// RecomputeProximity rederives every neighbor link from positions. Two
// enabled monitors are linked when one's edge touches the other's and their
// top-left corners line up on the perpendicular axis.
func (ms Monitors) RecomputeProximity() {
	for i := range ms {
		ms[i].clearLinks()
	}
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		a := &ms[i]
		for j := range ms {
			if i == j || !ms[j].Enabled {
				continue
			}
			b := &ms[j]
			if b.Position.X == a.Position.X+a.Displayed.W && b.Position.Y == a.Position.Y {
				a.Right = j
				b.Left = i
			}
			if b.Position.Y == a.Position.Y+a.Displayed.H && b.Position.X == a.Position.X {
				a.Down = j
				b.Up = i
			}
		}
	}
}

// UpdateNeighborPositions snaps every right and down neighbor to its
// parent's edge, clears any collision the snapping caused, re-anchors to the
// origin and rederives links.
func (ms Monitors) UpdateNeighborPositions() {
	// Snap until stable so that a child listed before its parent still
	// follows the parent's final position.
	for pass := 0; pass < len(ms); pass++ {
		moved := false
		for i := range ms {
			m := &ms[i]
			if !m.Enabled {
				continue
			}
			if r := m.Right; r != None {
				p := Point{X: m.Position.X + m.Displayed.W, Y: m.Position.Y}
				if ms[r].Position != p {
					ms[r].Position = p
					moved = true
				}
			}
			if d := m.Down; d != None {
				p := Point{X: m.Position.X, Y: m.Position.Y + m.Displayed.H}
				if ms[d].Position != p {
					ms[d].Position = p
					moved = true
				}
			}
		}
		if !moved {
			break
		}
	}
	ms.untangle(nil, nil)
}

// Normalize translates the enabled monitors so that the smallest x and the
// smallest y are both zero.
func (ms Monitors) Normalize() {
	first := ms.FirstEnabled()
	if first == None {
		return
	}
	minX, minY := ms[first].Position.X, ms[first].Position.Y
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		minX = min(minX, ms[i].Position.X)
		minY = min(minY, ms[i].Position.Y)
	}
	if minX == 0 && minY == 0 {
		return
	}
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		ms[i].Position.X -= minX
		ms[i].Position.Y -= minY
	}
}

// adjacent returns where a monitor of size s sits when attached to m on side d.
func (m *Monitor) adjacent(d Direction, s Size) Point {
	p := m.Position
	switch d {
	case Right:
		p.X += m.Displayed.W
	case Left:
		p.X -= s.W
	case Down:
		p.Y += m.Displayed.H
	case Up:
		p.Y -= s.H
	}
	return p
}

// settle walks the link graph breadth-first from anchor and places every
// reachable monitor against the parent it was reached from. The anchor keeps
// its position. Collisions and detached islands are then cleared by
// untangle, which also re-anchors and rederives links.
func (ms Monitors) settle(anchor int) {
	parent := map[int]int{anchor: None}
	order := []int{anchor}
	for k := 0; k < len(order); k++ {
		i := order[k]
		for _, d := range Directions {
			n := ms[i].Neighbor(d)
			if n == None || !ms[n].Enabled {
				continue
			}
			if _, ok := parent[n]; ok {
				continue
			}
			ms[n].Position = ms[i].adjacent(d, ms[n].Displayed)
			parent[n] = i
			order = append(order, n)
		}
	}
	ms.untangle(order, parent)
}

// untangle makes the arrangement overlap-free and connected. Of two
// colliding monitors, the one placed later in order is lifted out together
// with everything placed through it (per parent) and re-attached past the
// right edge of the rest. Monitors unreachable from the first of order are
// re-attached the same way, one island at a time. Monitors missing from
// order rank after it, by index. Each round removes at least one collision
// or one island, so the loop is bounded.
func (ms Monitors) untangle(order []int, parent map[int]int) {
	rank := make([]int, len(ms))
	for i := range rank {
		rank[i] = len(ms) + i
	}
	for r, i := range order {
		rank[i] = r
	}
	start := ms.FirstEnabled()
	if len(order) > 0 && ms[order[0]].Enabled {
		start = order[0]
	}

	for round := 0; round <= len(ms)*len(ms); round++ {
		if a, b, ok := ms.firstOverlap(); ok {
			if rank[a] > rank[b] {
				a, b = b, a
			}
			ms.reattach(ms.placedFrom(b, parent))
			continue
		}
		ms.RecomputeProximity()
		if island := ms.island(start); len(island) > 0 {
			ms.reattach(island)
			continue
		}
		break
	}
	ms.Normalize()
	ms.RecomputeProximity()
}

// firstOverlap returns the first pair of enabled monitors that share area.
func (ms Monitors) firstOverlap() (int, int, bool) {
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		for j := i + 1; j < len(ms); j++ {
			if ms[j].Enabled && ms[i].Rect().Intersects(ms[j].Rect()) {
				return i, j, true
			}
		}
	}
	return None, None, false
}

// placedFrom returns b and every enabled monitor whose parent chain runs
// through b. A monitor without a parent entry stands alone.
func (ms Monitors) placedFrom(b int, parent map[int]int) []int {
	if _, ok := parent[b]; !ok {
		return []int{b}
	}
	var out []int
	for i := range ms {
		if !ms[i].Enabled {
			continue
		}
		for p := i; p != None; {
			if p == b {
				out = append(out, i)
				break
			}
			next, ok := parent[p]
			if !ok {
				break
			}
			p = next
		}
	}
	return out
}

// island returns the first group of linked monitors not reachable from
// start, or nil when everything is connected. Links must be symmetric.
func (ms Monitors) island(start int) []int {
	if start == None {
		return nil
	}
	reach := func(from int, seen map[int]bool) []int {
		group := []int{from}
		seen[from] = true
		for k := 0; k < len(group); k++ {
			for _, d := range Directions {
				if n := ms[group[k]].Neighbor(d); n != None && !seen[n] {
					seen[n] = true
					group = append(group, n)
				}
			}
		}
		return group
	}
	seen := make(map[int]bool)
	reach(start, seen)
	for i := range ms {
		if ms[i].Enabled && !seen[i] {
			return reach(i, seen)
		}
	}
	return nil
}

// reattach translates group so that its leftmost member sits top-aligned
// against the monitor with the rightmost edge outside the group. Every
// member then lies beyond that edge, where nothing else is.
func (ms Monitors) reattach(group []int) {
	in := make(map[int]bool, len(group))
	for _, i := range group {
		in[i] = true
	}
	edge := None
	for i := range ms {
		if !ms[i].Enabled || in[i] {
			continue
		}
		if edge == None || ms[i].Position.X+ms[i].Displayed.W > ms[edge].Position.X+ms[edge].Displayed.W {
			edge = i
		}
	}
	if edge == None || len(group) == 0 {
		return
	}
	lead := group[0]
	for _, i := range group[1:] {
		p, q := ms[i].Position, ms[lead].Position
		if p.X < q.X || (p.X == q.X && p.Y < q.Y) {
			lead = i
		}
	}
	to := ms[edge].adjacent(Right, ms[lead].Displayed)
	dx, dy := to.X-ms[lead].Position.X, to.Y-ms[lead].Position.Y
	for _, i := range group {
		ms[i].Position.X += dx
		ms[i].Position.Y += dy
	}
}

// link connects a to b so that b is a's neighbor in direction d.
func (ms Monitors) link(a, b int, d Direction) {
	ms[a].SetNeighbor(d, b)
	ms[b].SetNeighbor(d.Opposite(), a)
}

// unlink removes the link from a in direction d and its back-pointer.
func (ms Monitors) unlink(a int, d Direction) {
	n := ms[a].Neighbor(d)
	if n == None {
		return
	}
	ms[a].SetNeighbor(d, None)
	if ms[n].Neighbor(d.Opposite()) == a {
		ms[n].SetNeighbor(d.Opposite(), None)
	}
}

// chainEnd follows links in direction d from idx and returns the last
// monitor of the chain.
func (ms Monitors) chainEnd(idx int, d Direction) int {
	seen := map[int]bool{idx: true}
	for {
		n := ms[idx].Neighbor(d)
		if n == None || seen[n] {
			return idx
		}
		seen[n] = true
		idx = n
	}
}

// CheckLinks verifies that every link has a matching back-pointer and only
// refers to enabled monitors.
func (ms Monitors) CheckLinks() error {
	for i := range ms {
		for _, d := range Directions {
			n := ms[i].Neighbor(d)
			if n == None {
				continue
			}
			if !ms[i].Enabled {
				return fmt.Errorf("disabled %s has a %s link", ms[i].Name, d)
			}
			if n < 0 || n >= len(ms) {
				return fmt.Errorf("%s: %s link %d out of range", ms[i].Name, d, n)
			}
			if !ms[n].Enabled {
				return fmt.Errorf("%s: %s link points at disabled %s", ms[i].Name, d, ms[n].Name)
			}
			if back := ms[n].Neighbor(d.Opposite()); back != i {
				return fmt.Errorf("%s.%s = %s but %s.%s = %d", ms[i].Name, d, ms[n].Name, ms[n].Name, d.Opposite(), back)
			}
		}
	}
	return nil
}

// Validate checks every layout invariant and returns the first violation.
func (ms Monitors) Validate() error {
	if err := ms.CheckLinks(); err != nil {
		return fmt.Errorf("link symmetry: %w", err)
	}

	primaries := 0
	minX, minY := 0, 0
	first := true
	for i := range ms {
		m := &ms[i]
		if m.Primary {
			primaries++
		}
		if !m.Enabled {
			continue
		}
		if r := m.Right; r != None {
			if ms[r].Position != m.adjacent(Right, ms[r].Displayed) {
				return fmt.Errorf("position: %s.right = %s at %s", m.Name, ms[r].Name, ms[r].Position)
			}
		}
		if d := m.Down; d != None {
			if ms[d].Position != m.adjacent(Down, ms[d].Displayed) {
				return fmt.Errorf("position: %s.down = %s at %s", m.Name, ms[d].Name, ms[d].Position)
			}
		}
		if m.Position.X < 0 || m.Position.Y < 0 {
			return fmt.Errorf("anchoring: %s at negative position %s", m.Name, m.Position)
		}
		if first {
			minX, minY = m.Position.X, m.Position.Y
			first = false
		}
		minX = min(minX, m.Position.X)
		minY = min(minY, m.Position.Y)

		if want := scaled(m.Resolution, m.Scale); m.Displayed != want {
			return fmt.Errorf("scale: %s displayed %s, want %s", m.Name, m.Displayed, want)
		}
		if !containsRate(m.Modes[m.Resolution], m.Framerate) {
			return fmt.Errorf("framerate: %s has no %v Hz at %s", m.Name, m.Framerate, m.Resolution)
		}
		for j := i + 1; j < len(ms); j++ {
			if ms[j].Enabled && m.Rect().Intersects(ms[j].Rect()) {
				return fmt.Errorf("overlap: %s and %s", m.Name, ms[j].Name)
			}
		}
	}
	if primaries > 1 {
		return fmt.Errorf("primary: %d monitors are primary", primaries)
	}
	if !first && (minX != 0 || minY != 0) {
		return fmt.Errorf("anchoring: arrangement starts at %dx%d", minX, minY)
	}
	if missing := ms.unreachable(); len(missing) > 0 {
		return fmt.Errorf("connectivity: unreachable %s", strings.Join(missing, ", "))
	}
	return nil
}

// unreachable returns the names of enabled monitors not reachable from the
// first enabled monitor.
func (ms Monitors) unreachable() []string {
	start := ms.FirstEnabled()
	if start == None {
		return nil
	}
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Directions {
			if n := ms[i].Neighbor(d); n != None && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	var out []string
	for i := range ms {
		if ms[i].Enabled && !seen[i] {
			out = append(out, ms[i].Name)
		}
	}
	return out
}

func containsRate(rates []float64, r float64) bool {
	for _, v := range rates {
		if v == r {
			return true
		}
	}
	return false
}
