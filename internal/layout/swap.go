package layout

import "fmt"

// Swap exchanges the monitor at a with its neighbor b in direction dir.
//
// Positions are exchanged along the axis of dir using displayed sizes, so
// monitors of different sizes trade places without gaps. The two entries
// then trade places in the list while the link table stays per index, which
// keeps every third-party link pointing at whichever monitor now occupies
// the same spot. Children are re-placed against their parents' new sizes; a
// child that would then collide with another branch is moved aside.
func (ms Monitors) Swap(a, b int, dir Direction) error {
	if a == b {
		return fmt.Errorf("swap: %d with itself", a)
	}
	if ms[a].Neighbor(dir) != b {
		return fmt.Errorf("swap: %s has no %s neighbor %s", ms[a].Name, dir, ms[b].Name)
	}

	A, B := &ms[a], &ms[b]
	anchor := a
	switch dir {
	case Right:
		B.Position.X, A.Position.X = A.Position.X, A.Position.X+B.Displayed.W
	case Down:
		B.Position.Y, A.Position.Y = A.Position.Y, A.Position.Y+B.Displayed.H
	case Left:
		A.Position.X, B.Position.X = B.Position.X, B.Position.X+A.Displayed.W
		anchor = b
	case Up:
		A.Position.Y, B.Position.Y = B.Position.Y, B.Position.Y+A.Displayed.H
		anchor = b
	}

	A.Left, B.Left = B.Left, A.Left
	A.Right, B.Right = B.Right, A.Right
	A.Up, B.Up = B.Up, A.Up
	A.Down, B.Down = B.Down, A.Down
	ms[a], ms[b] = ms[b], ms[a]

	// anchor now holds whichever monitor took over the pair's leading corner.
	ms.settle(anchor)
	return nil
}
