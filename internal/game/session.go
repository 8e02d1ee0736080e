package game

import (
	"go-pexeso/internal/board"
	"go-pexeso/internal/scoring"
	"go-pexeso/internal/state"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session plays consecutive boards of one level. Each round is a new deal
// with its own score; the session keeps the totals.
type Session struct {
	Level        board.Level
	CurrentGame  *Game
	ScoreStorage scoring.ScoreStorage
	Scheduler    Scheduler

	// Aggregate State
	Round      int
	RoundsWon  int
	TotalScore int

	state   *state.State
	counted bool
	log     *zap.Logger
}

func NewSession(level board.Level, catalog []board.Face, sh board.Shuffler, opts state.GameOptions, storage scoring.ScoreStorage, scheduler Scheduler) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	st, err := state.NewState(level, catalog, sh, opts)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Level:        level,
		ScoreStorage: storage,
		Scheduler:    scheduler,
		state:        st,
		log:          log,
	}
	if err := s.startGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextRound deals a new board. Flip-backs still pending from the previous
// board are ignored when they fire.
func (s *Session) NextRound() error {
	s.Update()
	if err := s.state.Deal(); err != nil {
		return err
	}
	return s.startGame()
}

func (s *Session) startGame() error {
	id := uuid.New()
	sc, err := scoring.InitScoring(s.Level.Key(), s.Level.GroupCount(), id, s.Level.Name, s.ScoreStorage)
	if err != nil {
		return err
	}

	s.CurrentGame = NewGame(id, s.state, *sc, s.Scheduler, s.log)
	s.Round++
	s.counted = false

	s.log.Info("round started",
		zap.Int("round", s.Round),
		zap.String("game_id", id.String()),
		zap.String("level", s.Level.Name))
	return nil
}

// Update folds a finished board into the session totals, once.
func (s *Session) Update() {
	if s.CurrentGame == nil || !s.CurrentGame.Win || s.counted {
		return
	}
	s.TotalScore += s.CurrentGame.Score.CurrentScore
	s.RoundsWon++
	s.counted = true
}

// IsFinished reports whether the current board is cleared.
func (s *Session) IsFinished() bool {
	return s.CurrentGame != nil && s.CurrentGame.Win
}
