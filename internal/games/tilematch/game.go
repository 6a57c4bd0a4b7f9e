// Package tilematch provides the tile-matching puzzle game: a Dispatcher that
// serializes intents for one session and a Game that turns platform input
// into intents and draws snapshots into a screen buffer.
package tilematch

import (
	"context"
	"errors"
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

// submitTimeout bounds how long one key press may wait for the session.
const submitTimeout = 2 * time.Second

// Board cells are drawn three columns wide: bracket, glyph, bracket.
const cellW = 3

// Game drives one Dispatcher from platform input.
type Game struct {
	dispatcher *Dispatcher
	campaign   levels.Campaign

	snap   core.Snapshot
	cursor core.Coord

	message      string
	messageColor platformcore.Color

	screenW int
	screenH int
}

// NewGame creates a game around a started or unstarted dispatcher.
func NewGame(d *Dispatcher, campaign levels.Campaign) *Game {
	g := &Game{
		dispatcher: d,
		campaign:   campaign,
		snap:       d.Snapshot(),
		screenW:    platformcore.DefaultConfig().ScreenW,
		screenH:    platformcore.DefaultConfig().ScreenH,
	}
	g.cursor = core.At(g.snap.Rows()/2, g.snap.Cols()/2)
	return g
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "tilematch"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tilematch"
}

// Campaign returns the campaign being played.
func (g *Game) Campaign() levels.Campaign {
	return g.campaign
}

// Resize updates the screen dimensions used for layout.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Cursor returns the board position under the cursor.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Snapshot returns the last snapshot seen by the game.
func (g *Game) Snapshot() core.Snapshot {
	return g.snap
}

// Refresh picks up state changes made outside Step, such as timer ticks.
func (g *Game) Refresh() {
	g.snap = g.dispatcher.Snapshot()
}

// Updates delivers a snapshot after every change the dispatcher applies,
// timer ticks included. Call Refresh to pick the latest one up.
func (g *Game) Updates() <-chan core.Snapshot {
	return g.dispatcher.Updates()
}

// Done is closed once the game has been closed.
func (g *Game) Done() <-chan struct{} {
	return g.dispatcher.Done()
}

// Step applies one frame of input.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	if input.Has(platformcore.ActionQuit) {
		return platformcore.StepResult{State: g.State(), Quit: true}
	}

	g.moveCursor(input)

	for _, in := range g.intents(input) {
		g.submit(in)
	}

	g.Refresh()
	return platformcore.StepResult{State: g.State()}
}

func (g *Game) moveCursor(input platformcore.InputFrame) {
	if g.snap.Rows() == 0 {
		return
	}
	row, col := g.cursor.Row, g.cursor.Col
	if input.Has(platformcore.ActionUp) {
		row--
	}
	if input.Has(platformcore.ActionDown) {
		row++
	}
	if input.Has(platformcore.ActionLeft) {
		col--
	}
	if input.Has(platformcore.ActionRight) {
		col++
	}
	g.cursor = core.At(
		platformcore.Clamp(row, 0, g.snap.Rows()-1),
		platformcore.Clamp(col, 0, g.snap.Cols()-1),
	)
}

// intents maps the frame's actions to session intents in a fixed order.
func (g *Game) intents(input platformcore.InputFrame) []core.Intent {
	var out []core.Intent
	if input.Has(platformcore.ActionRestart) {
		out = append(out, core.ResetGame())
	}
	if input.Has(platformcore.ActionNext) {
		out = append(out, core.AdvanceLevel())
	}
	if input.Has(platformcore.ActionPause) {
		out = append(out, core.TogglePause())
	}
	if input.Has(platformcore.ActionSelect) {
		out = append(out, core.SelectCell(g.cursor.Row, g.cursor.Col))
	}
	if input.Has(platformcore.ActionActivate) {
		out = append(out, core.ActivatePowerTile(g.cursor.Row, g.cursor.Col))
	}
	if input.Has(platformcore.ActionBooster) {
		out = append(out, core.UseBooster())
	}
	if input.Has(platformcore.ActionHint) {
		out = append(out, core.RequestHint())
	}
	return out
}

func (g *Game) submit(in core.Intent) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	snap, err := g.dispatcher.Submit(ctx, in)
	g.snap = snap
	g.setMessage(in, snap, err)
}

func (g *Game) setMessage(in core.Intent, snap core.Snapshot, err error) {
	switch {
	case errors.Is(err, core.ErrIllegalSelection):
		g.message, g.messageColor = "Pick a neighbouring tile to swap", platformcore.ColorWarning
	case errors.Is(err, core.ErrCascadeOverflow):
		g.message, g.messageColor = "The board stopped settling", platformcore.ColorWarning
	case errors.Is(err, core.ErrNoOp):
		switch in.Kind {
		case core.IntentActivatePowerTile:
			g.message = "No power tile here"
		case core.IntentUseBooster:
			g.message = fmt.Sprintf("Booster needs %d stars", snap.StarThreshold)
		case core.IntentHint:
			g.message = "No moves left"
		default:
			g.message = ""
		}
		g.messageColor = platformcore.ColorMuted
	case err != nil:
		g.message, g.messageColor = err.Error(), platformcore.ColorWarning
	case snap.LastScore > 0:
		g.message = fmt.Sprintf("+%d", snap.LastScore)
		if len(snap.LastSpawns) > 0 {
			g.message += fmt.Sprintf("  %d power tile(s)!", len(snap.LastSpawns))
		}
		g.messageColor = platformcore.ColorSuccess
	case in.Kind == core.IntentHint && snap.Hint != nil:
		g.message = fmt.Sprintf("Try swapping %v and %v", snap.Hint.A, snap.Hint.B)
		g.messageColor = platformcore.ColorHint
	default:
		g.message = ""
	}
}

// State returns the platform summary of the current snapshot.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:         g.snap.Score,
		Level:         g.snap.LevelIndex + 1,
		LevelComplete: g.snap.State == core.StateLevelComplete,
		GameOver:      g.snap.State == core.StateAllLevelsComplete,
		Paused:        g.snap.Paused,
	}
}
