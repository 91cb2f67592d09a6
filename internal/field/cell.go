package field

// ValueMine is the distinguished cell value marking a mine, as opposed
// to a non-negative adjacency count.
const ValueMine = -1

// Cell is one grid position. Value is immutable once layout generation
// has run; changing it means replacing the whole cell. Flagged and
// Visible track the player-facing state.
type Cell struct {
	Value   int
	Flagged bool
	Visible bool
}

// IsMine reports whether the cell holds the mine value.
func (c Cell) IsMine() bool { return c.Value == ValueMine }

// Rune returns the single-character display form: 'f' for a flag, a
// space while hidden, 'X' for a revealed mine, otherwise the count digit.
func (c Cell) Rune() rune {
	if c.Flagged {
		return 'f'
	}
	if !c.Visible {
		return ' '
	}
	if c.IsMine() {
		return 'X'
	}
	return rune('0' + c.Value)
}
