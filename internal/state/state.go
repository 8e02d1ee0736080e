package state

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go-pexeso/internal/board"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// DefaultFlipBackDelay is how long a mismatched group stays face up.
const DefaultFlipBackDelay = 800 * time.Millisecond

type GameOptions struct {
	FlipBackDelay time.Duration // 0 uses DefaultFlipBackDelay
	FixedFaces    bool          // take catalog faces in order instead of shuffling them first
	Logger        *zap.Logger
}

// State owns the board and the in-progress selection. It is not safe for
// concurrent use; the host calls it from a single event loop.
type State struct {
	Level   board.Level
	Round   uint64 // bumped by every deal
	FSM     *fsm.FSM
	Options GameOptions

	cards     board.Board
	selection []int
	catalog   []board.Face
	shuffler  board.Shuffler
	log       *zap.Logger

	// result of the call in flight
	outcome SelectOutcome
	err     error
}

// NewState validates the level against the catalog and deals the first board.
func NewState(level board.Level, catalog []board.Face, sh board.Shuffler, opts GameOptions) (*State, error) {
	if opts.FlipBackDelay <= 0 {
		opts.FlipBackDelay = DefaultFlipBackDelay
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &State{
		Level:    level,
		Options:  opts,
		catalog:  slices.Clone(catalog),
		shuffler: sh,
		log:      log.With(zap.String("level", level.Name)),
	}

	s.FSM = fsm.NewFSM(
		"start",
		getStateTransitions(),
		getStateCallbacks(s),
	)

	if err := s.Deal(); err != nil {
		return nil, err
	}
	return s, nil
}

// Deal builds a new board for the same level and drops any selection in
// progress. Delayed actions issued before the deal become stale.
func (s *State) Deal() error {
	cards, err := board.Build(s.Level, s.catalog, s.shuffler, !s.Options.FixedFaces)
	if err != nil {
		return err
	}
	if err := s.fire("deal", cards); err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	return nil
}

// Select flips the card at index. Selecting a card that is not hidden is a
// no-op reported as Ignored. Only an out-of-range index is an error.
func (s *State) Select(index int) (SelectOutcome, error) {
	if !s.cards.InRange(index) {
		return SelectOutcome{}, &IndexError{Index: index, Len: len(s.cards)}
	}
	s.outcome = SelectOutcome{}
	if err := s.fire("select", index); err != nil {
		return SelectOutcome{}, fmt.Errorf("select %d: %w", index, err)
	}
	return s.outcome, nil
}

// ResolveTimeout hides the cards of a mismatch whose delay has elapsed. Cards
// that are no longer Selected, indices that joined a new selection, and
// actions from an earlier deal are left alone, so calling it late or twice is
// harmless.
func (s *State) ResolveTimeout(action DelayedAction) error {
	if err := s.fire("timeout", action); err != nil {
		return fmt.Errorf("resolve timeout: %w", err)
	}
	return nil
}

func (s *State) fire(event string, args ...interface{}) error {
	s.err = nil
	if err := s.FSM.Event(context.Background(), event, args...); err != nil {
		return err
	}
	return s.err
}

// next chains into the following event from inside a callback.
func (s *State) next(ctx context.Context, e *fsm.Event, event string, args ...interface{}) {
	if err := e.FSM.Event(ctx, event, args...); err != nil && s.err == nil {
		s.err = err
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "deal", Src: []string{"start", "idle"}, Dst: "dealing"},
		{Name: "dealt", Src: []string{"dealing"}, Dst: "idle"},

		// Selection
		{Name: "select", Src: []string{"idle"}, Dst: "checkingCard"},
		{Name: "ignore", Src: []string{"checkingCard"}, Dst: "idle"},
		{Name: "flip", Src: []string{"checkingCard"}, Dst: "flipped"},
		{Name: "wait", Src: []string{"flipped"}, Dst: "idle"},
		{Name: "evaluate", Src: []string{"flipped"}, Dst: "evaluating"},

		// Group resolution
		{Name: "match", Src: []string{"evaluating"}, Dst: "matched"},
		{Name: "mismatch", Src: []string{"evaluating"}, Dst: "mismatched"},
		{Name: "settle", Src: []string{"matched", "mismatched"}, Dst: "idle"},

		// Delayed flip-back
		{Name: "timeout", Src: []string{"idle"}, Dst: "hiding"},
		{Name: "hidden", Src: []string{"hiding"}, Dst: "idle"},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_dealing": func(ctx context.Context, e *fsm.Event) {
			s.cards = e.Args[0].(board.Board)
			s.selection = nil
			s.Round++
			s.log.Info("board dealt",
				zap.Uint64("round", s.Round),
				zap.Int("cards", len(s.cards)),
				zap.Int("group_size", s.Level.GroupSize))
			s.next(ctx, e, "dealt")
		},
		"enter_checkingCard": func(ctx context.Context, e *fsm.Event) {
			index := e.Args[0].(int)
			if s.cards[index].Visibility != board.Hidden {
				s.outcome = SelectOutcome{Kind: Ignored, Indices: []int{index}}
				s.log.Debug("selection ignored",
					zap.Int("index", index),
					zap.Stringer("visibility", s.cards[index].Visibility))
				s.next(ctx, e, "ignore")
				return
			}
			s.next(ctx, e, "flip", index)
		},
		"enter_flipped": func(ctx context.Context, e *fsm.Event) {
			index := e.Args[0].(int)
			s.cards[index].Visibility = board.Selected
			s.selection = append(s.selection, index)

			if len(s.selection) < s.Level.GroupSize {
				s.outcome = SelectOutcome{Kind: Flipped, Indices: []int{index}}
				s.log.Debug("card flipped", zap.Int("index", index), zap.Ints("selection", s.selection))
				s.next(ctx, e, "wait")
				return
			}
			s.next(ctx, e, "evaluate")
		},
		"enter_evaluating": func(ctx context.Context, e *fsm.Event) {
			if s.selectionMatches() {
				s.next(ctx, e, "match")
				return
			}
			s.next(ctx, e, "mismatch")
		},
		"enter_matched": func(ctx context.Context, e *fsm.Event) {
			indices := s.selection
			s.selection = nil
			for _, i := range indices {
				s.cards[i].Visibility = board.Solved
			}
			s.outcome = SelectOutcome{Kind: Matched, Indices: indices}
			s.log.Debug("group matched",
				zap.Ints("indices", indices),
				zap.String("identity", s.cards[indices[0]].Identity))
			s.next(ctx, e, "settle")
		},
		"enter_mismatched": func(ctx context.Context, e *fsm.Event) {
			// The cards stay Selected until the delayed action fires, but
			// tracking resets so the player can keep going.
			indices := s.selection
			s.selection = nil
			s.outcome = SelectOutcome{
				Kind:    Mismatched,
				Indices: indices,
				Action: &DelayedAction{
					Indices: slices.Clone(indices),
					Delay:   s.Options.FlipBackDelay,
					Round:   s.Round,
				},
			}
			s.log.Debug("group mismatched",
				zap.Ints("indices", indices),
				zap.Duration("flip_back", s.Options.FlipBackDelay))
			s.next(ctx, e, "settle")
		},
		"enter_hiding": func(ctx context.Context, e *fsm.Event) {
			action := e.Args[0].(DelayedAction)
			if action.Round != s.Round {
				s.log.Debug("stale timeout dropped",
					zap.Uint64("action_round", action.Round),
					zap.Uint64("round", s.Round))
				s.next(ctx, e, "hidden")
				return
			}
			var hidden []int
			for _, i := range action.Indices {
				if s.canHide(i) {
					s.cards[i].Visibility = board.Hidden
					hidden = append(hidden, i)
				}
			}
			s.log.Debug("timeout resolved", zap.Ints("requested", action.Indices), zap.Ints("hidden", hidden))
			s.next(ctx, e, "hidden")
		},
	}
}
