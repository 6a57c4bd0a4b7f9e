// Package core provides the core game logic for the tilematch puzzle game.
// This package is UI-agnostic and deterministic given its random source.
package core

import "fmt"

// Coord addresses a cell by row and column. Row 0 is the top of the board.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacent reports whether two coordinates are orthogonal neighbours.
func IsAdjacent(a, b Coord) bool {
	return a.Manhattan(b) == 1
}

// Axis is the orientation of a run or a rocket.
type Axis uint8

const (
	AxisRow Axis = iota
	AxisColumn
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisColumn:
		return "column"
	default:
		return "unknown"
	}
}

// Kind tags the variant held by a Cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPlain
	KindBomb
	KindRocket
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPlain:
		return "plain"
	case KindBomb:
		return "bomb"
	case KindRocket:
		return "rocket"
	default:
		return "unknown"
	}
}

// Cell is one board position: Plain(symbol), Bomb, Rocket(axis) or Empty.
// Fields are unexported so a cell can only be built through the constructors,
// which keeps bomb and rocket mutually exclusive. The zero value is Empty.
type Cell struct {
	kind   Kind
	symbol Symbol
	axis   Axis
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{kind: KindEmpty}
}

// Plain returns an ordinary symbol tile.
func Plain(s Symbol) Cell {
	return Cell{kind: KindPlain, symbol: s}
}

// Bomb returns a bomb power tile.
func Bomb() Cell {
	return Cell{kind: KindBomb}
}

// Rocket returns a rocket power tile aligned with the given axis.
func Rocket(axis Axis) Cell {
	return Cell{kind: KindRocket, axis: axis}
}

// Kind returns the variant tag.
func (c Cell) Kind() Kind {
	return c.kind
}

// Symbol returns the symbol of a plain tile. ok is false for any other kind.
func (c Cell) Symbol() (s Symbol, ok bool) {
	if c.kind != KindPlain {
		return 0, false
	}
	return c.symbol, true
}

// Axis returns the axis of a rocket. ok is false for any other kind.
func (c Cell) Axis() (a Axis, ok bool) {
	if c.kind != KindRocket {
		return 0, false
	}
	return c.axis, true
}

// IsEmpty reports whether the cell is empty.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// IsPlain reports whether the cell is an ordinary symbol tile.
func (c Cell) IsPlain() bool { return c.kind == KindPlain }

// IsPower reports whether the cell is a bomb or a rocket.
func (c Cell) IsPower() bool { return c.kind == KindBomb || c.kind == KindRocket }

// Is reports whether the cell is a plain tile showing symbol s.
func (c Cell) Is(s Symbol) bool {
	return c.kind == KindPlain && c.symbol == s
}

// Matches reports whether two cells take part in the same run.
// Only plain tiles with equal symbols match; power tiles never do.
func (c Cell) Matches(other Cell) bool {
	return c.kind == KindPlain && other.kind == KindPlain && c.symbol == other.symbol
}

// String returns a short description, e.g. "plain:star" or "rocket:row".
func (c Cell) String() string {
	switch c.kind {
	case KindPlain:
		return "plain:" + c.symbol.String()
	case KindRocket:
		return "rocket:" + c.axis.String()
	default:
		return c.kind.String()
	}
}
