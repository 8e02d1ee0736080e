package game

import (
	"go-pexeso/internal/scoring"
	"go-pexeso/internal/state"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler is the host's timer. It must call Game.HandleTimeout with the
// action, on the same goroutine that calls HandleSelect, once action.Delay
// has passed.
type Scheduler interface {
	Schedule(action state.DelayedAction)
}

// Game ties one dealt board to its score and the host's timer.
type Game struct {
	ID    uuid.UUID
	State *state.State
	Score scoring.Scoring
	Win   bool

	scheduler Scheduler
	log       *zap.Logger
}

// NewGame wraps an already dealt board.
func NewGame(id uuid.UUID, st *state.State, sc scoring.Scoring, scheduler Scheduler, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		ID:        id,
		State:     st,
		Score:     sc,
		scheduler: scheduler,
		log:       log.With(zap.String("game_id", id.String())),
	}
}

// HandleSelect processes a card pick from the player.
func (g *Game) HandleSelect(index int) (state.SelectOutcome, error) {
	out, err := g.State.Select(index)
	if err != nil {
		return out, err
	}

	switch out.Kind {
	case state.Matched:
		g.Score.ScoreEvent("match")
		if g.State.IsComplete() {
			g.finish()
		}
	case state.Mismatched:
		g.Score.ScoreEvent("mismatch")
		g.scheduler.Schedule(*out.Action)
	}
	return out, nil
}

// HandleTimeout is the callback for an action handed to the Scheduler.
func (g *Game) HandleTimeout(action state.DelayedAction) error {
	return g.State.ResolveTimeout(action)
}

func (g *Game) finish() {
	g.Win = true
	g.Score.ScoreEvent("boardBonus")
	g.log.Info("board cleared",
		zap.Int("score", g.Score.CurrentScore),
		zap.Int("moves", g.Score.Moves()))

	if err := g.Score.SaveEntries(); err != nil {
		g.log.Warn("could not save score", zap.Error(err))
	}
}
