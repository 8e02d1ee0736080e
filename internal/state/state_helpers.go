package state

import (
	"fmt"
	"slices"
	"time"

	"go-pexeso/internal/board"
)

// OutcomeKind classifies the result of a Select call.
type OutcomeKind int

const (
	Ignored OutcomeKind = iota
	Flipped
	Matched
	Mismatched
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Flipped:
		return "flipped"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// SelectOutcome is what a Select call did. For Matched and Mismatched,
// Indices is the completed group in selection order; otherwise it holds the
// selected index. Action is set only for Mismatched.
type SelectOutcome struct {
	Kind    OutcomeKind
	Indices []int
	Action  *DelayedAction
}

// DelayedAction asks the host to call ResolveTimeout with this value once
// Delay has elapsed.
type DelayedAction struct {
	Indices []int
	Delay   time.Duration
	Round   uint64 // deal the action belongs to
}

// DelayMS is Delay in whole milliseconds.
func (a DelayedAction) DelayMS() int64 {
	return a.Delay.Milliseconds()
}

// IndexError is returned by Select for an index outside the board.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("card index %d out of range [0, %d)", e.Index, e.Len)
}

// Snapshot returns a copy of the board for the view.
func (s *State) Snapshot() board.Board {
	return s.cards.Clone()
}

// Selection returns the indices of the group being built.
func (s *State) Selection() []int {
	return slices.Clone(s.selection)
}

// Len is the number of cards on the board.
func (s *State) Len() int {
	return len(s.cards)
}

// IsComplete reports whether every group has been solved.
func (s *State) IsComplete() bool {
	return s.cards.AllSolved()
}

func (s *State) selectionMatches() bool {
	first := s.cards[s.selection[0]].Identity
	for _, i := range s.selection[1:] {
		if s.cards[i].Identity != first {
			return false
		}
	}
	return true
}

func (s *State) canHide(i int) bool {
	return s.cards.InRange(i) &&
		s.cards[i].Visibility == board.Selected &&
		!slices.Contains(s.selection, i)
}
