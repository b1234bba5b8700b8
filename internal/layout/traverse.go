package layout

// Traverse moves sel diagonally around a corner when it has no neighbor in
// dir: if an orthogonal neighbor P of sel has a neighbor T in dir, sel is
// detached from P and attached to T on the same side it occupied next to P.
// It reports whether a traversal happened.
func (ms Monitors) Traverse(sel int, dir Direction) bool {
	sides := []Direction{Up, Down}
	if dir.Vertical() {
		sides = []Direction{Left, Right}
	}
	for _, side := range sides {
		p := ms[sel].Neighbor(side)
		if p == None {
			continue
		}
		t := ms[p].Neighbor(dir)
		if t == None || t == sel {
			continue
		}
		slot := side.Opposite()
		if ms[t].Neighbor(slot) != None {
			continue
		}

		ms.unlink(sel, side)
		ms.detach(sel, p)
		ms.link(t, sel, slot)
		ms.settle(t)
		return true
	}
	return false
}
