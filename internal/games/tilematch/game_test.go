package tilematch

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newTestGame(t *testing.T, lvl core.Level) *Game {
	t.Helper()
	d := newTestDispatcher(t, []core.Level{lvl}, 0)
	d.Start()
	campaign := levels.Campaign{ID: "test", Name: "Test", Levels: []core.Level{lvl}}
	return NewGame(d, campaign)
}

var bigLevel = core.Level{TargetScore: 10000, MaxMoves: 100, TimeLimit: 1000}

func TestGameCursorClamped(t *testing.T) {
	g := newTestGame(t, bigLevel)

	for i := 0; i < 20; i++ {
		g.Step(frame(platformcore.ActionUp, platformcore.ActionLeft))
	}
	if g.Cursor() != core.At(0, 0) {
		t.Errorf("Cursor() = %v, want (0,0)", g.Cursor())
	}
	for i := 0; i < 20; i++ {
		g.Step(frame(platformcore.ActionDown, platformcore.ActionRight))
	}
	if g.Cursor() != core.At(7, 7) {
		t.Errorf("Cursor() = %v, want (7,7)", g.Cursor())
	}
}

func TestGameSwapWithCursor(t *testing.T) {
	g := newTestGame(t, bigLevel)
	start := g.Cursor()

	g.Step(frame(platformcore.ActionSelect))
	if sel := g.Snapshot().Selected; sel == nil || *sel != start {
		t.Fatalf("Selected = %v, want %v", sel, start)
	}

	res := g.Step(frame(platformcore.ActionRight, platformcore.ActionSelect))
	if g.Snapshot().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.Snapshot().Moves)
	}
	if res.State.Level != 1 || res.State.GameOver {
		t.Errorf("unexpected state %+v", res.State)
	}
}

func TestGameIllegalSelectionMessage(t *testing.T) {
	g := newTestGame(t, bigLevel)

	g.Step(frame(platformcore.ActionSelect))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight, platformcore.ActionSelect))

	if g.message == "" || g.messageColor != platformcore.ColorWarning {
		t.Errorf("expected a warning, got %q", g.message)
	}
}

func TestGameQuit(t *testing.T) {
	g := newTestGame(t, bigLevel)
	if res := g.Step(frame(platformcore.ActionQuit)); !res.Quit {
		t.Error("Quit action should end the session")
	}
}

func TestGamePauseState(t *testing.T) {
	g := newTestGame(t, bigLevel)

	res := g.Step(frame(platformcore.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, bigLevel)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Tilematch", "Score", "Moves", "Time", "Stars", "Booster"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.Contains(out, "[") || !strings.Contains(out, "]") {
		t.Error("cursor brackets missing")
	}

	// Every board glyph is drawn in its symbol color.
	snap := g.Snapshot()
	board := g.boardRect(screen)
	cell := screen.GetCell(board.X+2, board.Y+1)
	sym, _ := snap.Cell(core.At(0, 0)).Symbol()
	if cell.Rune != sym.Glyph() || cell.Color != platformcore.SymbolColor(int(sym)) {
		t.Errorf("cell (0,0) drawn as %+v, want %c", cell, sym.Glyph())
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(t, bigLevel)
	screen := platformcore.NewScreen(20, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected a too-small notice")
	}
}

func TestGameLevelCompleteOverlay(t *testing.T) {
	lvl := core.Level{TargetScore: 10000, MaxMoves: 1, TimeLimit: 1000}
	g := newTestGame(t, lvl)

	g.Step(frame(platformcore.ActionSelect))
	res := g.Step(frame(platformcore.ActionDown, platformcore.ActionSelect))
	if !res.State.LevelComplete {
		t.Fatalf("expected level complete, got %+v", res.State)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level failed") {
		t.Error("level failed overlay missing")
	}

	res = g.Step(frame(platformcore.ActionNext))
	if !res.State.GameOver {
		t.Fatal("advancing past the only level should finish the game")
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "All levels played") {
		t.Error("results overlay missing")
	}

	res = g.Step(frame(platformcore.ActionRestart))
	if res.State.GameOver || res.State.LevelComplete || res.State.Level != 1 {
		t.Errorf("restart should return to level 1, got %+v", res.State)
	}
}
