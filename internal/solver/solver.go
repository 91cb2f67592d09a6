// Package solver plays minesweeper from the player's side of the
// board: it only ever reads visible counts and flags, never the hidden
// mine layout. Deductions come in three tiers (single-point safety,
// single-point flagging, subset elimination between overlapping number
// constraints), with a uniformly random guess as the fallback.
package solver

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"minegrid/internal/session"
	"minegrid/pkg/grid"
)

// MoveType distinguishes the two click actions.
type MoveType int

const (
	MoveReveal MoveType = iota
	MoveFlag
)

// Move is one action the solver wants to take.
type Move struct {
	P    grid.Point
	Type MoveType

	// Guess is set when no deduction applied and the move is a gamble.
	Guess bool
	// Strategy names the rule that produced the move.
	Strategy string
	// Confidence is the solver's safety estimate in [0,1].
	Confidence float64
}

// Solver picks moves for one session.
type Solver struct {
	sess *session.Session
	rng  *grid.RNG
	log  *logrus.Logger

	guesses int
}

// New returns a solver over the given session. The seed drives only
// the guessing fallback. A nil logger falls back to the standard one.
func New(s *session.Session, seed int64, log *logrus.Logger) *Solver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Solver{sess: s, rng: grid.NewRNG(seed), log: log}
}

// Guesses returns how many fallback moves the solver has made so far.
func (sv *Solver) Guesses() int { return sv.guesses }

// NextMove returns the next action, or ok=false when nothing remains
// to play (every hidden cell is flagged or the board is exhausted).
func (sv *Solver) NextMove() (Move, bool) {
	if m, ok := sv.findSafeMove(); ok {
		sv.log.WithFields(logrus.Fields{"at": m.P, "rule": m.Strategy}).Debug("deduce reveal")
		return m, true
	}
	if m, ok := sv.findFlagMove(); ok {
		sv.log.WithFields(logrus.Fields{"at": m.P, "rule": m.Strategy}).Debug("deduce flag")
		return m, true
	}
	if m, ok := sv.findSubsetMove(); ok {
		sv.log.WithFields(logrus.Fields{"at": m.P, "rule": m.Strategy}).Debug("deduce subset")
		return m, true
	}
	m, ok := sv.randomMove()
	if ok {
		sv.guesses++
		sv.log.WithField("at", m.P).Debug("guess")
	}
	return m, ok
}

func pointSet(pts []grid.Point) mapset.Set[grid.Point] {
	s := mapset.New[grid.Point]()
	for _, p := range pts {
		s.Put(p)
	}
	return s
}

// constraint is one revealed number cell viewed as "mines among these
// hidden cells".
type constraint struct {
	hidden []grid.Point // hidden and unflagged neighbors
	mines  int          // value minus surrounding flags
}

func (sv *Solver) constraints() []constraint {
	f := sv.sess.Field()
	var out []constraint
	for _, p := range f.Points() {
		c, err := f.Get(p)
		if err != nil || !c.Visible || c.Value <= 0 {
			continue
		}
		var hidden []grid.Point
		flags := 0
		for _, n := range f.NeighborPoints(p) {
			nc, _ := f.Get(n)
			if nc.Visible {
				continue
			}
			if nc.Flagged {
				flags++
			} else {
				hidden = append(hidden, n)
			}
		}
		if len(hidden) == 0 {
			continue
		}
		out = append(out, constraint{hidden: hidden, mines: c.Value - flags})
	}
	return out
}

// findSafeMove looks for a number whose mines are all flagged already;
// any other hidden neighbor is certainly safe.
func (sv *Solver) findSafeMove() (Move, bool) {
	for _, c := range sv.constraints() {
		if c.mines == 0 {
			return Move{P: c.hidden[0], Type: MoveReveal, Strategy: "single-point", Confidence: 1}, true
		}
	}
	return Move{}, false
}

// findFlagMove looks for a number whose hidden neighbors are all
// mines; the first unflagged one gets the flag.
func (sv *Solver) findFlagMove() (Move, bool) {
	for _, c := range sv.constraints() {
		if c.mines > 0 && c.mines == len(c.hidden) {
			return Move{P: c.hidden[0], Type: MoveFlag, Strategy: "single-point", Confidence: 1}, true
		}
	}
	return Move{}, false
}

// findSubsetMove applies subset elimination: when one constraint's
// hidden cells are contained in another's, the difference carries
// exactly the difference in mine counts. Zero means the difference is
// safe; a full difference means it is all mines.
func (sv *Solver) findSubsetMove() (Move, bool) {
	cons := sv.constraints()
	for i, a := range cons {
		for j, b := range cons {
			if i == j || len(a.hidden) >= len(b.hidden) {
				continue
			}
			bset := pointSet(b.hidden)
			subset := true
			for _, p := range a.hidden {
				if !bset.Has(p) {
					subset = false
					break
				}
			}
			if !subset {
				continue
			}
			aset := pointSet(a.hidden)
			diff := make([]grid.Point, 0, len(b.hidden))
			for _, p := range b.hidden {
				if !aset.Has(p) {
					diff = append(diff, p)
				}
			}
			if len(diff) == 0 {
				continue
			}
			switch b.mines - a.mines {
			case 0:
				return Move{P: diff[0], Type: MoveReveal, Strategy: "subset", Confidence: 1}, true
			case len(diff):
				return Move{P: diff[0], Type: MoveFlag, Strategy: "subset", Confidence: 1}, true
			}
		}
	}
	return Move{}, false
}

// randomMove reveals a uniformly chosen hidden unflagged cell.
func (sv *Solver) randomMove() (Move, bool) {
	f := sv.sess.Field()
	var candidates []grid.Point
	for _, p := range f.Points() {
		c, err := f.Get(p)
		if err != nil || c.Visible || c.Flagged {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return Move{}, false
	}
	p := candidates[sv.rng.IntN(len(candidates))]
	return Move{P: p, Type: MoveReveal, Guess: true, Strategy: "random"}, true
}

// Apply plays the move against the session and returns the resulting
// round status.
func (sv *Solver) Apply(m Move) session.Status {
	switch m.Type {
	case MoveFlag:
		sv.sess.ToggleFlag(m.P)
		return sv.sess.Status()
	default:
		return sv.sess.Reveal(m.P)
	}
}

// Play runs moves until the round ends or no move remains, returning
// the final status. maxMoves bounds runaway loops; pass 0 for the
// board-size default.
func (sv *Solver) Play(maxMoves int) session.Status {
	f := sv.sess.Field()
	if maxMoves <= 0 {
		// Every cell can be revealed at most once and flagged at most
		// a handful of times; this bound is generous.
		maxMoves = 4 * f.Width() * f.Height()
	}
	for i := 0; i < maxMoves; i++ {
		if sv.sess.Status() != session.StatusInProgress {
			break
		}
		m, ok := sv.NextMove()
		if !ok {
			break
		}
		sv.Apply(m)
	}
	return sv.sess.Status()
}
