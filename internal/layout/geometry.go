package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a width/height pair in pixels.
type Size struct {
	W int
	H int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// ParseSize reads a mode name like "1920x1080".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Size{}, fmt.Errorf("size %q: bad width", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Size{}, fmt.Errorf("size %q: bad height", s)
	}
	return Size{W: width, H: height}, nil
}

// Point is a position on the virtual canvas.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}

// Rect is an axis-aligned rectangle on the virtual canvas.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Intersects reports whether r and o share any area. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	return x2 > x1 && y2 > y1
}

// Direction is one of the four cardinal directions of the neighbor graph.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in settle order.
var Directions = []Direction{Right, Down, Left, Up}

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Vertical reports whether d moves along the y axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// ParseDirection converts a name like "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left", "h":
		return Left, nil
	case "right", "l":
		return Right, nil
	case "up", "k":
		return Up, nil
	case "down", "j":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
