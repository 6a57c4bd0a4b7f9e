package tilematch

import (
	"fmt"

	platformcore "github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

const hudHeight = 4

// Glyphs for power tiles.
const (
	glyphBomb         = '✹'
	glyphRocketRow    = '⇔'
	glyphRocketColumn = '⇕'
	glyphEmpty        = '·'
)

// MinScreenSize returns the smallest screen that fits the board and HUD.
func (g *Game) MinScreenSize() (w, h int) {
	return g.snap.Cols()*cellW + 2, g.snap.Rows() + 2 + hudHeight + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", platformcore.ColorWarning)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", minW, minH), platformcore.ColorMuted)
		return
	}

	g.renderHUD(dst)
	board := g.boardRect(dst)
	g.renderBoard(dst, board)

	if g.message != "" {
		dst.DrawTextCentered(board.Bottom(), g.message, g.messageColor)
	}

	switch g.snap.State {
	case core.StateAllLevelsComplete:
		g.renderResults(dst)
	case core.StateLevelComplete:
		g.renderLevelComplete(dst)
	default:
		if g.snap.Paused {
			renderOverlay(dst, platformcore.ColorAccent, "Paused", "Press P to continue")
		}
	}
}

func (g *Game) boardRect(dst *platformcore.Screen) platformcore.Rect {
	w := g.snap.Cols()*cellW + 2
	h := g.snap.Rows() + 2
	r := platformcore.CenteredRect(dst.Width(), dst.Height()-hudHeight-1, w, h)
	r.Y += hudHeight
	return r
}

// renderHUD draws the status lines above the board.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	s := g.snap

	title := fmt.Sprintf(" %s | %s | Level %d/%d: %s",
		g.Title(), g.campaign.Name, s.LevelIndex+1, s.LevelCount, g.campaign.LevelName(s.LevelIndex))
	dst.DrawTextWithColor(0, 0, title, platformcore.ColorAccent)

	x := 1
	x = drawStat(dst, x, 1, "Score", fmt.Sprintf("%d/%d", s.Score, s.TargetScore), platformcore.ColorText)
	x = drawStat(dst, x, 1, "Moves", fmt.Sprintf("%d/%d", s.Moves, s.MaxMoves), platformcore.ColorText)
	timeColor := platformcore.ColorText
	if s.TimeRemaining <= 10 {
		timeColor = platformcore.ColorWarning
	}
	drawStat(dst, x, 1, "Time", fmt.Sprintf("%ds", s.TimeRemaining), timeColor)

	stars := fmt.Sprintf("%c %d/%d", core.StarSymbol.Glyph(), s.StarCount, s.StarThreshold)
	x = drawStat(dst, 1, 2, "Stars", stars, platformcore.SymbolColor(int(core.StarSymbol)))
	if s.BoosterEnabled {
		dst.DrawTextWithColor(x, 2, "Booster ready (B)", platformcore.ColorSuccess)
	} else {
		dst.DrawTextWithColor(x, 2, "Booster charging", platformcore.ColorMuted)
	}

	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorMuted)
}

// drawStat writes "label value" and returns the x position after it.
func drawStat(dst *platformcore.Screen, x, y int, label, value string, c platformcore.Color) int {
	dst.DrawTextWithColor(x, y, label+" ", platformcore.ColorMuted)
	x += len(label) + 1
	dst.DrawTextWithColor(x, y, value, c)
	return x + len([]rune(value)) + 3
}

// renderBoard draws the framed grid with cursor, selection and hint marks.
func (g *Game) renderBoard(dst *platformcore.Screen, r platformcore.Rect) {
	dst.DrawBox(r, platformcore.ColorMuted)

	hinted := map[core.Coord]bool{}
	if g.snap.Hint != nil {
		hinted[g.snap.Hint.A] = true
		hinted[g.snap.Hint.B] = true
	}

	for row := 0; row < g.snap.Rows(); row++ {
		for col := 0; col < g.snap.Cols(); col++ {
			at := core.At(row, col)
			x := r.X + 1 + col*cellW
			y := r.Y + 1 + row

			glyph, color := cellGlyph(g.snap.Cell(at))
			dst.SetWithColor(x+1, y, glyph, color)

			switch {
			case at == g.cursor:
				dst.SetWithColor(x, y, '[', platformcore.ColorCursor)
				dst.SetWithColor(x+2, y, ']', platformcore.ColorCursor)
			case g.snap.Selected != nil && at == *g.snap.Selected:
				dst.SetWithColor(x, y, '(', platformcore.ColorSelected)
				dst.SetWithColor(x+2, y, ')', platformcore.ColorSelected)
			case hinted[at]:
				dst.SetWithColor(x, y, '›', platformcore.ColorHint)
				dst.SetWithColor(x+2, y, '‹', platformcore.ColorHint)
			}
		}
	}

	// A selected cell under the cursor still shows as selected.
	if sel := g.snap.Selected; sel != nil && *sel == g.cursor {
		x := r.X + 1 + sel.Col*cellW
		y := r.Y + 1 + sel.Row
		dst.SetWithColor(x, y, '(', platformcore.ColorSelected)
	}
}

func cellGlyph(c core.Cell) (rune, platformcore.Color) {
	switch c.Kind() {
	case core.KindPlain:
		sym, _ := c.Symbol()
		return sym.Glyph(), platformcore.SymbolColor(int(sym))
	case core.KindBomb:
		return glyphBomb, platformcore.ColorPower
	case core.KindRocket:
		if axis, _ := c.Axis(); axis == core.AxisColumn {
			return glyphRocketColumn, platformcore.ColorPower
		}
		return glyphRocketRow, platformcore.ColorPower
	default:
		return glyphEmpty, platformcore.ColorMuted
	}
}

func (g *Game) renderLevelComplete(dst *platformcore.Screen) {
	s := g.snap
	title := "Level failed"
	color := platformcore.ColorWarning
	if s.Outcome == core.OutcomeWon {
		title = "Level complete!"
		color = platformcore.ColorSuccess
	}
	next := "N: next level   R: restart"
	if s.IsLastLevel() {
		next = "N: see results   R: restart"
	}
	renderOverlay(dst, color, title,
		fmt.Sprintf("Score %d of %d in %d moves", s.Score, s.TargetScore, s.Moves),
		next,
	)
}

func (g *Game) renderResults(dst *platformcore.Screen) {
	lines := []string{"All levels played", ""}
	total := 0
	for _, r := range g.snap.Results {
		lines = append(lines, fmt.Sprintf("%-14s %5d  %s", g.campaign.LevelName(r.Level), r.Score, r.Outcome))
		total += r.Score
	}
	lines = append(lines, "", fmt.Sprintf("Total %d", total), "R: play again   Q: quit")
	renderOverlay(dst, platformcore.ColorAccent, lines[0], lines[1:]...)
}

// renderOverlay draws a centered box with a colored title and text lines.
func renderOverlay(dst *platformcore.Screen, titleColor platformcore.Color, title string, lines ...string) {
	maxLen := len([]rune(title))
	for _, l := range lines {
		maxLen = platformcore.Max(maxLen, len([]rune(l)))
	}
	box := platformcore.CenteredRect(dst.Width(), dst.Height(), maxLen+4, len(lines)+4)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorText)
	drawCentered(dst, box, box.Y+1, title, titleColor)
	for i, l := range lines {
		drawCentered(dst, box, box.Y+3+i, l, platformcore.ColorText)
	}
}

func drawCentered(dst *platformcore.Screen, box platformcore.Rect, y int, text string, c platformcore.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextWithColor(x, y, text, c)
}
