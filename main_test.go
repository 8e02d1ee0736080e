package main

import (
	"testing"
	"time"

	"go-pexeso/internal/board"
	"go-pexeso/internal/shuffle"
	"go-pexeso/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestColumnsFor(t *testing.T) {
	assert.Equal(t, 2, columnsFor(4))
	assert.Equal(t, 4, columnsFor(12))
	assert.Equal(t, 5, columnsFor(18))
	assert.Equal(t, 5, columnsFor(20))
}

func TestDelayFlag(t *testing.T) {
	var d delayFlag
	require.NoError(t, d.Set("1000"))
	assert.Equal(t, time.Second, time.Duration(d))
	require.NoError(t, d.Set("800ms"))
	assert.Equal(t, 800*time.Millisecond, time.Duration(d))
	assert.Error(t, d.Set("soon"))
}

func TestSeedFlag(t *testing.T) {
	var f seedFlag
	assert.Equal(t, "random", f.String())

	require.NoError(t, f.Set("demo"))
	seed, err := f.source()()
	require.NoError(t, err)
	assert.Equal(t, shuffle.DemoSeed, seed)

	assert.Error(t, f.Set("xyz"))
}

func TestConfigLevel(t *testing.T) {
	l, err := config{preset: "2"}.level()
	require.NoError(t, err)
	assert.Equal(t, "Level 2", l.Name)

	l, err = config{preset: "1", groupSize: 3, totalCards: 9}.level()
	require.NoError(t, err)
	assert.Equal(t, board.Level{Name: "Custom", GroupSize: 3, TotalCards: 9}, l)

	_, err = config{preset: "nope"}.level()
	assert.ErrorIs(t, err, board.ErrConfig)
}

func TestUpdate_MismatchSchedulesTick(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config{preset: "1", delay: delayFlag(10 * time.Millisecond)}
	require.NoError(t, cfg.seed.Set("demo"))
	model, err := initialModel(cfg, zap.NewNop())
	require.NoError(t, err)

	// Find two cards that do not match.
	snap := model.Session.CurrentGame.State.Snapshot()
	other := 1
	for snap[other].Identity == snap[0].Identity {
		other++
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := model.Update(enter)
	assert.Nil(t, cmd)

	model.Cursor = other
	_, cmd = model.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, state.Mismatched, model.Last.Kind)

	msg := cmd()
	flip, ok := msg.(flipBackMsg)
	require.True(t, ok, "got %T", msg)
	assert.ElementsMatch(t, []int{0, other}, flip.action.Indices)

	model.Update(flip)
	require.NoError(t, model.Err)
	for i, c := range model.Session.CurrentGame.State.Snapshot() {
		assert.Equal(t, board.Hidden, c.Visibility, "card %d", i)
	}
	assert.Contains(t, model.View(), "PEXESO")
}

func TestUpdate_CursorStaysOnBoard(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config{preset: "1"}
	require.NoError(t, cfg.seed.Set("demo"))
	model, err := initialModel(cfg, nil)
	require.NoError(t, err)

	model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, model.Cursor)
	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, model.Cursor)
	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, model.Cursor)
	model.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, model.Cursor)
}
