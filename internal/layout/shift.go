package layout

// ShiftRes moves every monitor lying at or beyond the right edge of idx by
// delta.W, and every monitor at or beyond its bottom edge by delta.H. It must
// run before idx's Displayed size is updated.
func (ms Monitors) ShiftRes(idx int, delta Size) {
	m := ms[idx]
	right := m.Position.X + m.Displayed.W
	bottom := m.Position.Y + m.Displayed.H
	for j := range ms {
		if j == idx || !ms[j].Enabled {
			continue
		}
		if ms[j].Position.X >= right {
			ms[j].Position.X += delta.W
		}
		if ms[j].Position.Y >= bottom {
			ms[j].Position.Y += delta.H
		}
	}
}

// ShiftMons translates idx and its downstream cone by -delta along one axis.
// Right and down links are always followed; left links only for vertical
// shifts and up links only for horizontal ones, so the walk never comes back
// through a shared neighbor and undoes itself. Indices already in visited are
// skipped; the grown set is returned.
func (ms Monitors) ShiftMons(idx int, delta int, vertical bool, visited map[int]bool) map[int]bool {
	if visited == nil {
		visited = make(map[int]bool)
	}
	if idx == None || visited[idx] || !ms[idx].Enabled {
		return visited
	}
	visited[idx] = true

	if vertical {
		ms[idx].Position.Y -= delta
	} else {
		ms[idx].Position.X -= delta
	}

	dirs := []Direction{Right, Down, Up}
	if vertical {
		dirs[2] = Left
	}
	for _, d := range dirs {
		ms.ShiftMons(ms[idx].Neighbor(d), delta, vertical, visited)
	}
	return visited
}
