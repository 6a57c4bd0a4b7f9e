// Package tui provides the Bubble Tea integration for tilematch.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilematch/internal/games/tilematch"
	tmcore "github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

// TickMsg is sent to trigger a UI tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SnapshotMsg carries a state change the game made on its own, such as a
// timer tick.
type SnapshotMsg struct {
	Snapshot tmcore.Snapshot
}

// waitForSnapshot waits for the game's next update. It yields nil once the
// game is closed, which ends the wait loop.
func waitForSnapshot(game *tilematch.Game) tea.Cmd {
	updates, done := game.Updates(), game.Done()
	return func() tea.Msg {
		select {
		case snap := <-updates:
			return SnapshotMsg{Snapshot: snap}
		case <-done:
			return nil
		}
	}
}
