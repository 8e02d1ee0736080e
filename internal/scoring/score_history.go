package scoring

import (
	"sort"
)

// ScoreHistory holds the stored games for one level plus the game in progress.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
	CurrentScore   *ScoreHistoryEntry
	Attempts       int
}

// ScoreHistoryEntry represents a single finished game.
type ScoreHistoryEntry struct {
	GameID    string `json:"game_id"`
	Hash      string `json:"hash"`
	Score     int    `json:"score"`
	Moves     int    `json:"moves"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// GetHighScoreEntry returns the highest score entry from the loaded history.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns the top N entries, the current game included,
// sorted by score and then by fewer moves.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	entries := make([]ScoreHistoryEntry, 0, len(sh.Entries)+1)
	entries = append(entries, sh.Entries...)
	if sh.CurrentScore != nil {
		entries = append(entries, *sh.CurrentScore)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Moves < entries[j].Moves
	})

	if len(entries) < n {
		return entries
	}
	return entries[:n]
}

// GotHighScore checks if the current score is greater than or equal to the
// previously recorded high score.
func (sh ScoreHistory) GotHighScore() bool {
	if sh.HighScoreEntry == nil || sh.CurrentScore == nil {
		return true
	}
	return sh.CurrentScore.Score >= sh.HighScoreEntry.Score
}
