package board

// Visibility is where a card is in its lifecycle. Solved is terminal.
type Visibility int

const (
	Hidden Visibility = iota
	Selected
	Solved
)

// String returns the string representation of a Visibility.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Selected:
		return "selected"
	case Solved:
		return "solved"
	default:
		return "unknown"
	}
}

// Face is one entry of a face catalog.
type Face struct {
	Identity string // shared by every card of a group
	Display  string // what the view shows when the card is face up
}

// Card is a single position on the board.
type Card struct {
	Identity   string
	Face       string
	Visibility Visibility
}

// Board is the ordered sequence of cards in play.
type Board []Card

// Clone returns a copy that shares nothing with b.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// AllSolved reports whether every card has been cleared.
func (b Board) AllSolved() bool {
	for _, c := range b {
		if c.Visibility != Solved {
			return false
		}
	}
	return len(b) > 0
}

// Count returns how many cards are in visibility v.
func (b Board) Count(v Visibility) int {
	n := 0
	for _, c := range b {
		if c.Visibility == v {
			n++
		}
	}
	return n
}

// InRange reports whether i addresses a card of b.
func (b Board) InRange(i int) bool {
	return i >= 0 && i < len(b)
}
