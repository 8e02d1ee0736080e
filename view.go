package main

import (
	"errors"
	"fmt"
	"strings"

	"go-pexeso/internal/board"
	"go-pexeso/internal/state"

	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	titleStyle = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(6).
			Align(lipgloss.Center)
	hiddenStyle   = cardStyle.BorderForeground(lipgloss.Color("8")).Foreground(lipgloss.Color("8"))
	selectedStyle = cardStyle.BorderForeground(lipgloss.Color("11"))
	solvedStyle   = cardStyle.BorderForeground(lipgloss.Color("10")).Faint(true)
)

// renderCard draws one card. Hidden cards never show their face.
func renderCard(c board.Card, focused bool) string {
	var style lipgloss.Style
	content := c.Face
	switch c.Visibility {
	case board.Selected:
		style = selectedStyle
	case board.Solved:
		style = solvedStyle
	default:
		style = hiddenStyle
		content = "?"
	}
	if focused {
		style = style.BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("12"))
	}
	return style.Render(content)
}

func (s *LocalState) RenderBoard() string {
	snap := s.Session.CurrentGame.State.Snapshot()

	var rows []string
	for start := 0; start < len(snap); start += s.Columns {
		end := min(start+s.Columns, len(snap))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, renderCard(snap[i], i == s.Cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *LocalState) View() string {
	g := s.Session.CurrentGame
	level := s.Session.Level

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("PEXESO | %s | groups of %d | round %d",
		level.Name, level.GroupSize, s.Session.Round)))
	b.WriteString("\n")
	b.WriteString(s.RenderBoard())
	b.WriteString("\n")

	solved := g.State.Snapshot().Count(board.Solved) / level.GroupSize
	status := fmt.Sprintf("SCORE: %d | MOVES: %d | GROUPS: %d/%d | TOTAL: %d",
		g.Score.CurrentScore, g.Score.Moves(), solved, level.GroupCount(), s.Session.TotalScore)
	b.WriteString(scoreStyle.Render(status))
	b.WriteString("\n")

	switch s.Last.Kind {
	case state.Matched:
		b.WriteString(greenStyle.Render("Match!"))
	case state.Mismatched:
		b.WriteString(redStyle.Render("No match."))
	}
	b.WriteString("\n")

	if g.Win {
		b.WriteString(greenStyle.Render(fmt.Sprintf("Board cleared! Score: %d", g.Score.CurrentScore)))
		if g.Score.GotHighScore() {
			b.WriteString("\nNew high score for this level! Top 5:")
			for _, entry := range g.Score.GetNScoreEntries(5) {
				b.WriteString(fmt.Sprintf("\n  * %d in %d moves on %s", entry.Score, entry.Moves, entry.Timestamp))
			}
		}
		b.WriteString("\nPress n for a new board.\n")
	} else if g.Score.GetAttempts() > 0 {
		b.WriteString(fmt.Sprintf("Attempt: %d | High score (this level): %d\n",
			g.Score.GetAttempts()+1, g.Score.GetHighScore().Score))
	} else {
		b.WriteString("This is your first try with this level! Good luck!\n")
	}

	if s.Err != nil {
		var idxErr *state.IndexError
		if errors.As(s.Err, &idxErr) {
			b.WriteString(redStyle.Render(fmt.Sprintf("No card at %d", idxErr.Index)))
		} else {
			b.WriteString(redStyle.Render(s.Err.Error()))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.help.View(s.keys))
	return b.String()
}
