package core

import (
	"fmt"
	"strings"
)

// Text format, one rune per cell, spaces ignored:
//
//	0-7  plain symbol by index (0 is star)
//	B    bomb
//	-    rocket clearing its row
//	|    rocket clearing its column
//	.    empty

// ParseGrid builds a grid from text rows in the format above.
func ParseGrid(lines ...string) (*Grid, error) {
	rows := make([][]Cell, 0, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, " ", "")
		row := make([]Cell, 0, len(line))
		for _, r := range line {
			cell, ok := parseCellRune(r)
			if !ok {
				return nil, fmt.Errorf("tilematch: row %d: unknown cell %q", i, r)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return NewGridFromRows(rows)
}

// MustParseGrid is ParseGrid for fixtures known to be valid.
func MustParseGrid(lines ...string) *Grid {
	g, err := ParseGrid(lines...)
	if err != nil {
		panic(err)
	}
	return g
}

func parseCellRune(r rune) (Cell, bool) {
	switch {
	case r >= '0' && r < '0'+rune(SymbolCount):
		return Plain(Symbol(r - '0')), true
	case r == 'B':
		return Bomb(), true
	case r == '-':
		return Rocket(AxisRow), true
	case r == '|':
		return Rocket(AxisColumn), true
	case r == '.':
		return Empty(), true
	default:
		return Cell{}, false
	}
}

// Rune returns the text-format character for a cell.
func (c Cell) Rune() rune {
	switch c.kind {
	case KindPlain:
		return '0' + rune(c.symbol)
	case KindBomb:
		return 'B'
	case KindRocket:
		if c.axis == AxisColumn {
			return '|'
		}
		return '-'
	default:
		return '.'
	}
}

// String renders the grid in the text format, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.cells[r*g.cols+c].Rune())
		}
	}
	return sb.String()
}
