// Package view builds presentation snapshots of a round. A front end
// (or any other consumer) reads the snapshot instead of poking at
// field internals: every cell carries a display state plus the count,
// and end-of-round adjustments (exposing mines on a loss, flagging
// them on a win) are applied here, never inside the rules core.
package view

import (
	"minegrid/internal/field"
	"minegrid/internal/session"
)

// Cell display states.
const (
	StateHidden  = "hidden"
	StateFlagged = "flagged"
	StateOpened  = "opened"
)

// CellView is the display form of one cell.
type CellView struct {
	State  string `json:"state"`
	Count  int    `json:"count"`
	IsMine bool   `json:"is_mine"`
}

// GameView is the display form of a whole round. Cells is indexed
// [y][x] to match row-major rendering loops.
type GameView struct {
	Cells          [][]CellView `json:"cells"`
	MinesRemaining int          `json:"mines_remaining"`
	IsGameOver     bool         `json:"is_game_over"`
	IsGameClear    bool         `json:"is_game_clear"`
}

// Snapshot captures the current state of a round.
func Snapshot(s *session.Session) GameView {
	f := s.Field()
	lost := s.Status() == session.StatusLost
	won := s.Status() == session.StatusWon

	cells := make([][]CellView, f.Height())
	for y := range cells {
		cells[y] = make([]CellView, f.Width())
	}
	for _, p := range f.Points() {
		c, err := f.Get(p)
		if err != nil {
			continue
		}
		cells[p.Y][p.X] = cellView(c, lost, won)
	}

	return GameView{
		Cells:          cells,
		MinesRemaining: s.MinesRemaining(),
		IsGameOver:     lost,
		IsGameClear:    won,
	}
}

func cellView(c field.Cell, lost, won bool) CellView {
	v := CellView{}
	switch {
	case c.Visible:
		v.State = StateOpened
		v.IsMine = c.IsMine()
		if !c.IsMine() {
			v.Count = c.Value
		}
	case c.Flagged:
		v.State = StateFlagged
	default:
		v.State = StateHidden
	}

	// A lost round shows every mine; a won round marks them flagged
	// whether or not the player got around to it.
	if c.IsMine() {
		if lost {
			v.State = StateOpened
			v.IsMine = true
		} else if won {
			v.State = StateFlagged
		}
	}
	return v
}
