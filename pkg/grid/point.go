package grid

import "fmt"

// Point identifies a cell position: X is the column, Y is the row.
// Points carry no bounds of their own; validity is relative to a grid.
type Point struct {
	X int
	Y int
}

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p offset by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// NeighborOffsets lists the 8 surrounding offsets in column-major order
// (dx varies in the outer loop). Neighbors and every caller that filters
// them preserve this order.
var NeighborOffsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the 8 points surrounding p. No bounds checking is
// done; callers filter out-of-grid results themselves.
func Neighbors(p Point) [8]Point {
	var out [8]Point
	for i, d := range NeighborOffsets {
		out[i] = p.Add(d)
	}
	return out
}
