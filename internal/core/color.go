package core

// Color is a semantic foreground color for a screen cell. The platform maps
// each value to a concrete terminal color through the active theme, so games
// say what a cell is rather than how it looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorText          // Regular HUD text
	ColorMuted         // Separators, help text, board frame
	ColorAccent        // Titles and highlighted values
	ColorCursor        // Board cursor brackets
	ColorSelected      // Pending selection brackets
	ColorHint          // Hinted swap
	ColorWarning       // Low timer, rejected moves
	ColorSuccess       // Level won
	ColorPower         // Bombs and rockets

	// One color per tile symbol, in symbol order.
	ColorSymbol0
	ColorSymbol1
	ColorSymbol2
	ColorSymbol3
	ColorSymbol4
	ColorSymbol5
	ColorSymbol6
	ColorSymbol7

	ColorCount // Sentinel value for iteration
)

// SymbolColor returns the color for tile symbol i, wrapping past the last one.
func SymbolColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return ColorSymbol0 + Color(i%int(ColorCount-ColorSymbol0))
}
