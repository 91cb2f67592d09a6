package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"minegrid/pkg/grid"
)

// ErrOutOfBounds reports indexed access outside the grid. Both negative
// coordinates and coordinates at/beyond the dimensions are rejected;
// callers that generate coordinates themselves (neighbor enumeration,
// flood fill) pre-filter with InBounds and never see this error.
var ErrOutOfBounds = errors.New("field: point out of bounds")

// Minefield is a fixed-size rectangular grid of cells plus a target
// mine count. Cells are stored row-major and owned exclusively by the
// field; Get returns copies, Set replaces whole cells.
type Minefield struct {
	w, h  int
	mines int

	cells []Cell
	rng   *grid.RNG
}

// New returns a minefield with the provided dimensions and mine budget
// using the default seed.
func New(w, h, mines int) *Minefield {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Mines = mines
	return NewWithConfig(cfg)
}

// NewWithConfig returns a minefield configured from the provided options.
// All cells start hidden, unflagged and zero-valued; call InitMines to
// lay the mines.
func NewWithConfig(cfg Config) *Minefield {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	return &Minefield{
		w:     cfg.Width,
		h:     cfg.Height,
		mines: cfg.Mines,
		cells: make([]Cell, cfg.Width*cfg.Height),
		rng:   grid.NewRNG(cfg.Seed),
	}
}

// Width returns the number of columns.
func (f *Minefield) Width() int { return f.w }

// Height returns the number of rows.
func (f *Minefield) Height() int { return f.h }

// Mines returns the target mine count fixed at construction.
func (f *Minefield) Mines() int { return f.mines }

// InBounds reports whether p lies inside the grid.
func (f *Minefield) InBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < f.w && p.Y >= 0 && p.Y < f.h
}

func (f *Minefield) index(p grid.Point) int { return p.Y*f.w + p.X }

// Get returns a copy of the cell at p, or ErrOutOfBounds.
func (f *Minefield) Get(p grid.Point) (Cell, error) {
	if !f.InBounds(p) {
		return Cell{}, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return f.cells[f.index(p)], nil
}

// Set replaces the cell at p, or returns ErrOutOfBounds.
func (f *Minefield) Set(p grid.Point, c Cell) error {
	if !f.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	f.cells[f.index(p)] = c
	return nil
}

// Points returns every grid coordinate exactly once in row-major order
// (y outer, x inner).
func (f *Minefield) Points() []grid.Point {
	pts := make([]grid.Point, 0, f.w*f.h)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			pts = append(pts, grid.Point{X: x, Y: y})
		}
	}
	return pts
}

// NeighborPoints returns the in-bounds subset of the 8 points around p,
// preserving the column-major neighbor order.
func (f *Minefield) NeighborPoints(p grid.Point) []grid.Point {
	pts := make([]grid.Point, 0, 8)
	for _, n := range grid.Neighbors(p) {
		if f.InBounds(n) {
			pts = append(pts, n)
		}
	}
	return pts
}

// NeighborCells returns copies of the in-bounds cells around p in the
// same order as NeighborPoints.
func (f *Minefield) NeighborCells(p grid.Point) []Cell {
	pts := f.NeighborPoints(p)
	cells := make([]Cell, len(pts))
	for i, n := range pts {
		cells[i] = f.cells[f.index(n)]
	}
	return cells
}

// MineCountAround returns the number of mine cells around p.
func (f *Minefield) MineCountAround(p grid.Point) int {
	count := 0
	for _, c := range f.NeighborCells(p) {
		if c.IsMine() {
			count++
		}
	}
	return count
}

// FlagCountAround returns the number of flagged cells around p.
func (f *Minefield) FlagCountAround(p grid.Point) int {
	count := 0
	for _, c := range f.NeighborCells(p) {
		if c.Flagged {
			count++
		}
	}
	return count
}

// FlagCount returns the number of flagged cells on the whole grid.
func (f *Minefield) FlagCount() int {
	count := 0
	for i := range f.cells {
		if f.cells[i].Flagged {
			count++
		}
	}
	return count
}

// Reset replaces every cell with a fresh zero-value hidden cell. The
// dimensions and mine budget are untouched.
func (f *Minefield) Reset() {
	for i := range f.cells {
		f.cells[i] = Cell{}
	}
}

// InitMines lays out the mine values. Points in restricted are
// guaranteed not to receive a mine; pass the first click and its
// neighbors to make the opening reveal safe. When reset is true the
// grid is cleared first.
//
// Exactly Mines() coordinates are chosen uniformly without replacement
// from the unrestricted cells. If fewer candidates than mines remain,
// all candidates become mines and the layout simply holds fewer mines
// than requested. Adjacency values are assigned only after every mine
// is in place.
func (f *Minefield) InitMines(restricted mapset.Set[grid.Point], reset bool) {
	if reset {
		f.Reset()
	}

	candidates := make([]grid.Point, 0, f.w*f.h)
	for _, p := range f.Points() {
		if !restricted.Has(p) {
			candidates = append(candidates, p)
		}
	}
	f.rng.ShufflePoints(candidates)

	n := f.mines
	if n > len(candidates) {
		n = len(candidates)
	}
	if n < 0 {
		n = 0
	}
	chosen := mapset.New[grid.Point]()
	for _, p := range candidates[:n] {
		f.cells[f.index(p)] = Cell{Value: ValueMine}
		chosen.Put(p)
	}
	// Every coordinate outside the chosen set gets a fresh count cell,
	// including mines left over from an earlier layout. Counts come
	// from the chosen set itself so stale cells can never skew them.
	for _, p := range f.Points() {
		if chosen.Has(p) {
			continue
		}
		count := 0
		for _, nb := range f.NeighborPoints(p) {
			if chosen.Has(nb) {
				count++
			}
		}
		f.cells[f.index(p)] = Cell{Value: count}
	}
}

// RevealAt attempts to reveal the cell at p. Flagged and already
// visible cells are left alone, as are out-of-bounds coordinates.
// Revealing a zero-count cell with recursive set cascades through its
// neighbors, so whole empty regions open along with their numbered
// border; the cascade terminates because visibility never reverts.
//
// Hitting a mine is not signaled here. Callers derive loss by reading
// the revealed cell and win via FullyRevealed.
func (f *Minefield) RevealAt(p grid.Point, recursive bool) {
	if !f.InBounds(p) {
		return
	}
	cell := &f.cells[f.index(p)]
	if cell.Flagged || cell.Visible {
		return
	}
	cell.Visible = true
	if cell.Value == 0 && recursive {
		for _, n := range grid.Neighbors(p) {
			f.RevealAt(n, true)
		}
	}
}

// ToggleFlag flips the flag on a hidden cell. Revealed cells cannot be
// flagged and out-of-bounds coordinates are ignored.
func (f *Minefield) ToggleFlag(p grid.Point) {
	if !f.InBounds(p) {
		return
	}
	cell := &f.cells[f.index(p)]
	if cell.Visible {
		return
	}
	cell.Flagged = !cell.Flagged
}

// FullyRevealed reports whether every non-mine cell is visible. This is
// the win condition.
func (f *Minefield) FullyRevealed() bool {
	for i := range f.cells {
		if !f.cells[i].IsMine() && !f.cells[i].Visible {
			return false
		}
	}
	return true
}

// String renders the player-facing grid, one row per line, using the
// cell runes (flags, blanks, digits, mines).
func (f *Minefield) String() string {
	var b strings.Builder
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			b.WriteRune(f.cells[y*f.w+x].Rune())
		}
		if y < f.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
