package layout

import "fmt"

// FindHorizontalPivot returns the left or right neighbor of sel, checked in
// that order, that has no neighbor of its own in dir. side is the direction
// from sel to the pivot.
func (ms Monitors) FindHorizontalPivot(sel int, dir Direction) (pivot int, side Direction, ok bool) {
	return ms.findPivot(sel, dir, Left, Right)
}

// FindVerticalPivot is FindHorizontalPivot across the axes: it checks the up
// neighbor, then the down neighbor.
func (ms Monitors) FindVerticalPivot(sel int, dir Direction) (pivot int, side Direction, ok bool) {
	return ms.findPivot(sel, dir, Up, Down)
}

func (ms Monitors) findPivot(sel int, dir Direction, sides ...Direction) (int, Direction, bool) {
	for _, side := range sides {
		p := ms[sel].Neighbor(side)
		if p != None && ms[p].Neighbor(dir) == None {
			return p, side, true
		}
	}
	return None, 0, false
}

// VertPush breaks the horizontal link between sel and pivot and stacks sel
// directly above or below pivot, per vertDir. side is the direction from sel
// to pivot and must be Left or Right.
func (ms Monitors) VertPush(sel, pivot int, side, vertDir Direction) error {
	if side.Vertical() || !vertDir.Vertical() {
		return fmt.Errorf("vertical push: side %s, direction %s", side, vertDir)
	}
	return ms.push(sel, pivot, side, vertDir)
}

// HorizontalPush mirrors VertPush: it breaks the vertical link between sel
// and pivot and places sel directly left or right of pivot.
func (ms Monitors) HorizontalPush(sel, pivot int, side, horizDir Direction) error {
	if !side.Vertical() || horizDir.Vertical() {
		return fmt.Errorf("horizontal push: side %s, direction %s", side, horizDir)
	}
	return ms.push(sel, pivot, side, horizDir)
}

func (ms Monitors) push(sel, pivot int, side, dir Direction) error {
	if ms[sel].Neighbor(side) != pivot {
		return fmt.Errorf("push: %s is not the %s neighbor of %s", ms[pivot].Name, side, ms[sel].Name)
	}
	if ms[pivot].Neighbor(dir) != None {
		return fmt.Errorf("push: %s already has a %s neighbor", ms[pivot].Name, dir)
	}

	ms.unlink(sel, side)
	ms.detach(sel, pivot)

	// Bring the pivot's cone into line with sel on the axis sel leaves.
	vertical := dir.Vertical()
	skip := func() map[int]bool { return map[int]bool{sel: true} }
	if vertical {
		ms.ShiftMons(pivot, ms[pivot].Position.X-ms[sel].Position.X, false, skip())
	} else {
		ms.ShiftMons(pivot, ms[pivot].Position.Y-ms[sel].Position.Y, true, skip())
	}

	pos := ms[pivot].adjacent(dir, ms[sel].Displayed)
	if vertical && pos.Y < 0 {
		ms.ShiftMons(pivot, pos.Y, true, skip())
	} else if !vertical && pos.X < 0 {
		ms.ShiftMons(pivot, pos.X, false, skip())
	}
	ms[sel].Position = ms[pivot].adjacent(dir, ms[sel].Displayed)

	ms.link(pivot, sel, dir)
	ms.settle(pivot)
	return nil
}

// detach cuts every remaining link of sel and hands the orphaned neighbors
// to parent: each one is attached on the side it used to occupy, at the end
// of parent's chain in that direction.
func (ms Monitors) detach(sel, parent int) {
	for _, d := range Directions {
		n := ms[sel].Neighbor(d)
		if n == None {
			continue
		}
		ms.unlink(sel, d)
		if n == parent {
			continue
		}
		end, hit := ms.chainEndAvoiding(parent, d, n)
		if hit || ms[n].Neighbor(d.Opposite()) != None {
			continue
		}
		ms.link(end, n, d)
	}
}

// chainEndAvoiding is chainEnd that also reports whether the walk met avoid.
func (ms Monitors) chainEndAvoiding(idx int, d Direction, avoid int) (int, bool) {
	if idx == avoid {
		return idx, true
	}
	seen := map[int]bool{idx: true}
	for {
		n := ms[idx].Neighbor(d)
		if n == None || seen[n] {
			return idx, false
		}
		if n == avoid {
			return idx, true
		}
		seen[n] = true
		idx = n
	}
}
