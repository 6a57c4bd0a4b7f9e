package core

import "fmt"

// Activation describes a power tile that went off.
type Activation struct {
	At      Coord
	Tile    Cell
	Cleared []Cell // Pre-activation contents of the blast, excluding the tile itself
}

// BlastArea returns the cells cleared by the power tile at c.
// A bomb covers its row and column, a rocket its aligned line.
// Returns nil when c does not hold a power tile.
func BlastArea(g *Grid, c Coord) []Coord {
	tile := g.Get(c)
	var area []Coord

	row := func() {
		for col := 0; col < g.cols; col++ {
			area = append(area, At(c.Row, col))
		}
	}
	column := func(skipOwn bool) {
		for r := 0; r < g.rows; r++ {
			if skipOwn && r == c.Row {
				continue
			}
			area = append(area, At(r, c.Col))
		}
	}

	switch tile.Kind() {
	case KindBomb:
		row()
		column(true)
	case KindRocket:
		if axis, _ := tile.Axis(); axis == AxisRow {
			row()
		} else {
			column(false)
		}
	}
	return area
}

// Activate sets off the power tile at c. Every cell in the blast, the tile
// included, is replaced with a fresh symbol. Power tiles caught in the blast
// are replaced without going off. No score is awarded here.
func Activate(g *Grid, c Coord, rng Source, alpha Alphabet) (Activation, error) {
	if !g.InBounds(c) {
		return Activation{}, fmt.Errorf("activate %v: %w", c, ErrInvalidCoordinate)
	}
	tile := g.Get(c)
	if !tile.IsPower() {
		return Activation{}, fmt.Errorf("activate %v holds %v: %w", c, tile, ErrNoOp)
	}

	act := Activation{At: c, Tile: tile}
	for _, bc := range BlastArea(g, c) {
		if bc != c {
			act.Cleared = append(act.Cleared, g.Get(bc))
		}
		g.Set(bc, Plain(alpha.Roll(rng)))
	}
	return act, nil
}
