package field

import (
	"errors"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"minegrid/pkg/grid"
)

// layout places mines deterministically and fills in adjacency values
// the same way InitMines does, bypassing the shuffle.
func layout(f *Minefield, mines ...grid.Point) {
	f.Reset()
	for _, p := range mines {
		if err := f.Set(p, Cell{Value: ValueMine}); err != nil {
			panic(err)
		}
	}
	for _, p := range f.Points() {
		c, _ := f.Get(p)
		if !c.IsMine() {
			f.Set(p, Cell{Value: f.MineCountAround(p)})
		}
	}
}

func mustGet(t *testing.T, f *Minefield, p grid.Point) Cell {
	t.Helper()
	c, err := f.Get(p)
	if err != nil {
		t.Fatalf("Get(%v): %v", p, err)
	}
	return c
}

func TestPointsCoverGridExactlyOnce(t *testing.T) {
	f := New(7, 4, 0)
	pts := f.Points()
	if len(pts) != 28 {
		t.Fatalf("Points() returned %d points, want 28", len(pts))
	}
	seen := map[grid.Point]bool{}
	for _, p := range pts {
		if p.X < 0 || p.X >= 7 || p.Y < 0 || p.Y >= 4 {
			t.Fatalf("point %v outside 7x4 grid", p)
		}
		if seen[p] {
			t.Fatalf("point %v yielded twice", p)
		}
		seen[p] = true
	}
}

func TestNeighborPointsFiltered(t *testing.T) {
	f := New(5, 5, 0)

	corner := f.NeighborPoints(grid.Point{X: 0, Y: 0})
	if len(corner) != 3 {
		t.Fatalf("corner has %d in-bounds neighbors, want 3", len(corner))
	}
	center := f.NeighborPoints(grid.Point{X: 2, Y: 2})
	if len(center) != 8 {
		t.Fatalf("center has %d in-bounds neighbors, want 8", len(center))
	}

	// Order is the column-major neighbor order with misses dropped.
	raw := grid.Neighbors(grid.Point{X: 2, Y: 2})
	for i := range center {
		if center[i] != raw[i] {
			t.Fatalf("neighbor order changed: got %v at %d, want %v", center[i], i, raw[i])
		}
	}

	seen := map[grid.Point]bool{}
	for _, p := range center {
		if seen[p] {
			t.Fatalf("duplicate neighbor %v", p)
		}
		seen[p] = true
	}
}

func TestGetOutOfBounds(t *testing.T) {
	f := New(5, 5, 0)
	for _, p := range []grid.Point{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 5, Y: 0},
		{X: 0, Y: 5},
	} {
		if _, err := f.Get(p); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%v) error = %v, want ErrOutOfBounds", p, err)
		}
		if err := f.Set(p, Cell{}); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
}

func TestInitMinesCountAndValues(t *testing.T) {
	cfg := Config{Width: 9, Height: 9, Mines: 10, Seed: 99}
	f := NewWithConfig(cfg)
	f.InitMines(mapset.New[grid.Point](), true)

	mines := 0
	for _, p := range f.Points() {
		c := mustGet(t, f, p)
		if c.IsMine() {
			mines++
			continue
		}
		if want := f.MineCountAround(p); c.Value != want {
			t.Fatalf("cell %v value = %d, want recomputed count %d", p, c.Value, want)
		}
	}
	if mines != 10 {
		t.Fatalf("placed %d mines, want 10", mines)
	}
}

func TestInitMinesRespectsRestricted(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cfg := Config{Width: 4, Height: 4, Mines: 15, Seed: seed}
		f := NewWithConfig(cfg)
		p := grid.Point{X: 1, Y: 2}
		restricted := mapset.New[grid.Point]()
		restricted.Put(p)
		f.InitMines(restricted, true)

		if mustGet(t, f, p).IsMine() {
			t.Fatalf("seed %d: restricted point %v received a mine", seed, p)
		}
	}
}

func TestInitMinesMoreMinesThanCandidates(t *testing.T) {
	// 2x2 grid, 9 mines requested, one cell restricted: the three
	// remaining cells all become mines and nothing fails.
	cfg := Config{Width: 2, Height: 2, Mines: 9, Seed: 1}
	f := NewWithConfig(cfg)
	safe := grid.Point{X: 0, Y: 0}
	restricted := mapset.New[grid.Point]()
	restricted.Put(safe)
	f.InitMines(restricted, true)

	mines := 0
	for _, p := range f.Points() {
		if mustGet(t, f, p).IsMine() {
			mines++
		}
	}
	if mines != 3 {
		t.Fatalf("placed %d mines, want all 3 candidates", mines)
	}
	if c := mustGet(t, f, safe); c.IsMine() {
		t.Fatal("restricted cell became a mine")
	} else if c.Value != 3 {
		t.Fatalf("restricted cell value = %d, want 3", c.Value)
	}
}

func TestInitMinesWithoutResetReplacesOldLayout(t *testing.T) {
	// Laying mines twice without a reset in between must still end
	// with exactly the budgeted number of mines: cells holding mines
	// from the first layout become count cells in the second.
	cfg := Config{Width: 5, Height: 5, Mines: 3, Seed: 21}
	f := NewWithConfig(cfg)
	f.InitMines(mapset.New[grid.Point](), true)
	f.InitMines(mapset.New[grid.Point](), false)

	mines := 0
	for _, p := range f.Points() {
		c := mustGet(t, f, p)
		if c.IsMine() {
			mines++
			continue
		}
		if want := f.MineCountAround(p); c.Value != want {
			t.Fatalf("cell %v value = %d, want %d after relayout", p, c.Value, want)
		}
	}
	if mines != 3 {
		t.Fatalf("relayout left %d mines, want exactly 3", mines)
	}
}

func TestInitMinesDeterministicPerSeed(t *testing.T) {
	mineSet := func(seed int64) map[grid.Point]bool {
		f := NewWithConfig(Config{Width: 8, Height: 8, Mines: 12, Seed: seed})
		f.InitMines(mapset.New[grid.Point](), true)
		out := map[grid.Point]bool{}
		for _, p := range f.Points() {
			c, _ := f.Get(p)
			if c.IsMine() {
				out[p] = true
			}
		}
		return out
	}

	a, b := mineSet(5), mineSet(5)
	if len(a) != len(b) {
		t.Fatalf("same seed produced %d vs %d mines", len(a), len(b))
	}
	for p := range a {
		if !b[p] {
			t.Fatalf("same seed layouts differ at %v", p)
		}
	}
}

func TestThreeByThreeScenario(t *testing.T) {
	f := New(3, 3, 1)
	layout(f, grid.Point{X: 2, Y: 2})

	if c := mustGet(t, f, grid.Point{X: 2, Y: 2}); !c.IsMine() {
		t.Fatalf("cell (2,2) value = %d, want mine", c.Value)
	}
	if c := mustGet(t, f, grid.Point{X: 1, Y: 1}); c.Value != 1 {
		t.Fatalf("cell (1,1) value = %d, want 1", c.Value)
	}
	if c := mustGet(t, f, grid.Point{X: 0, Y: 0}); c.Value != 0 {
		t.Fatalf("cell (0,0) value = %d, want 0", c.Value)
	}
	if got := f.MineCountAround(grid.Point{X: 1, Y: 1}); got != 1 {
		t.Fatalf("MineCountAround((1,1)) = %d, want 1", got)
	}
}

func TestOneByOneScenario(t *testing.T) {
	f := New(1, 1, 0)
	f.InitMines(mapset.New[grid.Point](), true)

	if c := mustGet(t, f, grid.Point{}); c.Value != 0 {
		t.Fatalf("sole cell value = %d, want 0", c.Value)
	}
	f.RevealAt(grid.Point{}, true)
	if !mustGet(t, f, grid.Point{}).Visible {
		t.Fatal("sole cell not visible after reveal")
	}
	if !f.FullyRevealed() {
		t.Fatal("1x1 grid with no mines must be fully revealed")
	}
}

func TestRevealIdempotent(t *testing.T) {
	f := New(4, 4, 0)
	layout(f, grid.Point{X: 0, Y: 0})

	p := grid.Point{X: 3, Y: 3}
	f.RevealAt(p, true)
	snapshot := f.String()
	f.RevealAt(p, true)
	if got := f.String(); got != snapshot {
		t.Fatalf("second reveal changed state:\n%s\nvs\n%s", got, snapshot)
	}
}

func TestFlagBlocksReveal(t *testing.T) {
	f := New(3, 3, 0)
	layout(f, grid.Point{X: 0, Y: 0})

	p := grid.Point{X: 2, Y: 2}
	f.ToggleFlag(p)
	f.RevealAt(p, true)
	if mustGet(t, f, p).Visible {
		t.Fatal("flagged cell became visible through RevealAt")
	}

	f.ToggleFlag(p)
	f.RevealAt(p, true)
	if !mustGet(t, f, p).Visible {
		t.Fatal("unflagged cell must reveal")
	}
}

func TestFlagRejectedOnRevealedCell(t *testing.T) {
	f := New(3, 3, 0)
	layout(f, grid.Point{X: 0, Y: 0})

	p := grid.Point{X: 2, Y: 0}
	f.RevealAt(p, false)
	f.ToggleFlag(p)
	if mustGet(t, f, p).Flagged {
		t.Fatal("revealed cell accepted a flag")
	}
}

func TestFloodFillCoverage(t *testing.T) {
	// 5x3 grid with a mine column at x=4. The whole zero-region on the
	// left plus the numbered border at x=3 opens from one click; the
	// mines stay hidden.
	f := New(5, 3, 3)
	layout(f,
		grid.Point{X: 4, Y: 0},
		grid.Point{X: 4, Y: 1},
		grid.Point{X: 4, Y: 2},
	)

	f.RevealAt(grid.Point{X: 0, Y: 1}, true)

	for _, p := range f.Points() {
		c := mustGet(t, f, p)
		wantVisible := p.X <= 3
		if c.Visible != wantVisible {
			t.Fatalf("cell %v visible = %v, want %v", p, c.Visible, wantVisible)
		}
	}
	if !f.FullyRevealed() {
		t.Fatal("all non-mine cells revealed, FullyRevealed must hold")
	}
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	// A center mine on 5x5 surrounds itself with a numbered ring.
	// Revealing a corner floods the outer zero ring and the numbers,
	// but never the mine.
	f := New(5, 5, 1)
	layout(f, grid.Point{X: 2, Y: 2})

	f.RevealAt(grid.Point{X: 0, Y: 0}, true)

	mine := mustGet(t, f, grid.Point{X: 2, Y: 2})
	if mine.Visible {
		t.Fatal("flood fill revealed the mine")
	}
	for _, p := range f.Points() {
		if (p == grid.Point{X: 2, Y: 2}) {
			continue
		}
		if !mustGet(t, f, p).Visible {
			t.Fatalf("cell %v not reached by flood fill", p)
		}
	}
}

func TestNonRecursiveReveal(t *testing.T) {
	f := New(3, 3, 0)
	layout(f)

	f.RevealAt(grid.Point{X: 1, Y: 1}, false)
	visible := 0
	for _, p := range f.Points() {
		if mustGet(t, f, p).Visible {
			visible++
		}
	}
	if visible != 1 {
		t.Fatalf("non-recursive reveal opened %d cells, want 1", visible)
	}
}

func TestResetClearsCells(t *testing.T) {
	f := New(3, 3, 2)
	layout(f, grid.Point{X: 1, Y: 1})
	f.ToggleFlag(grid.Point{X: 0, Y: 0})
	f.RevealAt(grid.Point{X: 2, Y: 0}, false)

	f.Reset()
	for _, p := range f.Points() {
		c := mustGet(t, f, p)
		if c != (Cell{}) {
			t.Fatalf("cell %v = %+v after Reset, want zero cell", p, c)
		}
	}
	if f.Width() != 3 || f.Height() != 3 || f.Mines() != 2 {
		t.Fatal("Reset must not touch dimensions or mine budget")
	}
}

func TestFlagCounters(t *testing.T) {
	f := New(3, 3, 0)
	layout(f)

	f.ToggleFlag(grid.Point{X: 0, Y: 0})
	f.ToggleFlag(grid.Point{X: 1, Y: 0})
	if got := f.FlagCount(); got != 2 {
		t.Fatalf("FlagCount = %d, want 2", got)
	}
	if got := f.FlagCountAround(grid.Point{X: 1, Y: 1}); got != 2 {
		t.Fatalf("FlagCountAround((1,1)) = %d, want 2", got)
	}
	if got := f.FlagCountAround(grid.Point{X: 0, Y: 0}); got != 1 {
		t.Fatalf("FlagCountAround((0,0)) = %d, want 1", got)
	}
}

func TestStringDump(t *testing.T) {
	f := New(2, 2, 1)
	layout(f, grid.Point{X: 1, Y: 1})

	f.ToggleFlag(grid.Point{X: 0, Y: 0})
	f.RevealAt(grid.Point{X: 1, Y: 0}, false)
	if got, want := f.String(), "f1\n  "; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestConfigFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "30", "h": "16", "mines": "99", "seed": "7"})
	if c.Width != 30 || c.Height != 16 || c.Mines != 99 || c.Seed != 7 {
		t.Fatalf("FromMap produced %+v", c)
	}
	d := FromMap(map[string]string{"w": "bogus", "mines": "-3"})
	if d.Width != DefaultConfig().Width || d.Mines != DefaultConfig().Mines {
		t.Fatalf("invalid values must keep defaults, got %+v", d)
	}
}
