// Package session drives one round of minesweeper over a minefield.
// The field itself never signals wins or losses; the session derives
// both by inspecting revealed cells, and guarantees a safe first click
// by deferring mine layout until the opening reveal.
package session

import (
	"github.com/zyedidia/generic/mapset"

	"minegrid/internal/field"
	"minegrid/pkg/grid"
)

// Status enumerates the round states.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// String returns the status identifier.
func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "in-progress"
	}
}

// Session owns a minefield for the lifetime of one round.
type Session struct {
	f       *field.Minefield
	status  Status
	started bool
}

// New returns a fresh round over a field built from cfg. Mines are not
// laid until the first reveal.
func New(cfg field.Config) *Session {
	return &Session{f: field.NewWithConfig(cfg)}
}

// Resume wraps a field whose layout is already in place, skipping the
// first-click mine placement. Revealed and flagged cells carry over.
func Resume(f *field.Minefield) *Session {
	return &Session{f: f, started: true}
}

// Field exposes the underlying minefield for queries and rendering.
func (s *Session) Field() *field.Minefield { return s.f }

// Status returns the current round state.
func (s *Session) Status() Status { return s.status }

// Started reports whether the opening reveal has happened yet.
func (s *Session) Started() bool { return s.started }

// Reveal performs the primary click action at p. The first reveal lays
// the mines with p and its neighbors restricted, so the opening click
// always lands on a zero or numbered cell. Afterwards the round status
// is rederived: a visible mine means a loss, a fully revealed field a
// win. Reveals after the round has ended are ignored.
func (s *Session) Reveal(p grid.Point) Status {
	if s.status != StatusInProgress || !s.f.InBounds(p) {
		return s.status
	}
	if !s.started {
		restricted := mapset.New[grid.Point]()
		restricted.Put(p)
		for _, n := range s.f.NeighborPoints(p) {
			restricted.Put(n)
		}
		s.f.InitMines(restricted, true)
		s.started = true
	}

	s.f.RevealAt(p, true)

	if c, err := s.f.Get(p); err == nil && c.Visible && c.IsMine() {
		s.status = StatusLost
		return s.status
	}
	if s.f.FullyRevealed() {
		s.status = StatusWon
	}
	return s.status
}

// ToggleFlag performs the secondary click action at p. Flags placed
// before the first reveal are allowed; flags on finished rounds are not.
func (s *Session) ToggleFlag(p grid.Point) {
	if s.status != StatusInProgress {
		return
	}
	s.f.ToggleFlag(p)
}

// MinesRemaining returns the mine budget minus placed flags, the
// counter a presentation layer shows next to the board. It can go
// negative when the player overflags.
func (s *Session) MinesRemaining() int {
	return s.f.Mines() - s.f.FlagCount()
}
