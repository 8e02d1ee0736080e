package scoring

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Scoring manages the game's scoring logic, including event handling,
// bonuses, and history management.
type Scoring struct {
	// public
	CurrentScore   int
	Matches        int
	Mismatches     int
	PotentialScore int
	// private
	storage    ScoreStorage // The interface for loading/saving scores.
	history    ScoreHistory
	scoreTable map[string]int
	levelHash  string
	saved      bool
}

// InitScoring creates and initializes a new Scoring object for one game.
// It loads the score history for the level key using the provided storage interface.
func InitScoring(levelKey string, groups int, gameID uuid.UUID, title string, storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		scoreTable: getScoreTable(),
		storage:    storage,
		levelHash:  calculateHash(levelKey),
	}
	s.PotentialScore = s.scoreTable["match"]*groups + s.scoreTable["boardBonus"]

	// Load all historical entries from storage.
	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	// Filter entries for the current level.
	filteredEntries := []ScoreHistoryEntry{}
	for _, entry := range allEntries {
		if entry.Hash == s.levelHash {
			filteredEntries = append(filteredEntries, entry)
		}
	}

	sort.Slice(filteredEntries, func(i, j int) bool {
		return filteredEntries[i].Score > filteredEntries[j].Score
	})

	s.history.Entries = filteredEntries
	s.history.Attempts = len(filteredEntries)
	if len(filteredEntries) > 0 {
		s.history.HighScoreEntry = &filteredEntries[0]
	}

	s.history.CurrentScore = &ScoreHistoryEntry{
		GameID:    gameID.String(),
		Hash:      s.levelHash,
		Timestamp: time.Now().Format(time.RFC3339),
		Title:     title,
	}

	return s, nil
}

// ScoreEvent updates the score based on a given game event.
func (s *Scoring) ScoreEvent(event string) {
	switch event {
	case "match":
		s.Matches++
	case "mismatch":
		s.Mismatches++
	}
	s.CurrentScore += s.scoreTable[event]

	if s.history.CurrentScore != nil {
		s.history.CurrentScore.Score = s.CurrentScore
		s.history.CurrentScore.Moves = s.Moves()
	}
}

// Moves is the number of completed groups attempted so far.
func (s *Scoring) Moves() int {
	return s.Matches + s.Mismatches
}

// SaveEntries persists the score for the completed game. A second call for
// the same game is a no-op.
func (s *Scoring) SaveEntries() error {
	if s.history.CurrentScore == nil || s.saved {
		return nil
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load scores for saving: %w", err)
	}

	updatedEntries := make([]ScoreHistoryEntry, 0, len(allEntries)+1)
	for _, entry := range allEntries {
		if entry.GameID != s.history.CurrentScore.GameID {
			updatedEntries = append(updatedEntries, entry)
		}
	}
	updatedEntries = append(updatedEntries, *s.history.CurrentScore)

	if err := s.storage.SaveAll(updatedEntries); err != nil {
		return err
	}
	s.saved = true
	return nil
}

// Accessor methods for score history, delegating to the history object.
func (s *Scoring) GetHighScore() *ScoreHistoryEntry {
	return s.history.GetHighScoreEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

// GetNumPrevious is the number of stored games for this level, not counting the current one.
func (s *Scoring) GetNumPrevious() int {
	return len(s.history.Entries)
}

func (s *Scoring) GotHighScore() bool {
	return s.history.GotHighScore()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}

// calculateHash generates a SHA256 hash for the given level key.
func calculateHash(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// getScoreTable returns the predefined values for different scoring events.
func getScoreTable() map[string]int {
	return map[string]int{
		"match":      100,
		"mismatch":   -20,
		"boardBonus": 500,
	}
}
