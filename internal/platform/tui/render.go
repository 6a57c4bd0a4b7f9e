package tui

import (
	"strings"

	"github.com/vovakirdan/tilematch/internal/core"
)

// RenderScreen turns a screen buffer into styled terminal text. Each row is
// split into same-color spans so a span costs one escape sequence.
func RenderScreen(s *core.Screen, theme Theme) string {
	var out, span strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		span.Reset()
		spanColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != spanColor {
				out.WriteString(theme.Style(spanColor).Render(span.String()))
				span.Reset()
				spanColor = cell.Color
			}
			span.WriteRune(cell.Rune)
		}
		if span.Len() > 0 {
			out.WriteString(theme.Style(spanColor).Render(span.String()))
		}
	}
	return out.String()
}
