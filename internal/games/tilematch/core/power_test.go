package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

func TestActivateBomb(t *testing.T) {
	g := background()
	at := core.At(3, 4)
	g.Set(at, core.Bomb())
	before := g.Clone()

	act, err := core.Activate(g, at, cycle(6, 7), core.DefaultAlphabet)
	if err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}
	if act.Tile.Kind() != core.KindBomb {
		t.Errorf("Tile = %v, want bomb", act.Tile)
	}
	if len(act.Cleared) != 14 {
		t.Errorf("len(Cleared) = %d, want 14", len(act.Cleared))
	}

	g.ForEach(func(c core.Coord, cell core.Cell) {
		inBlast := c.Row == at.Row || c.Col == at.Col
		if inBlast {
			sym, ok := cell.Symbol()
			if !ok || sym < core.SymbolUmbrella {
				t.Errorf("cell %v = %v, want a fresh roll", c, cell)
			}
			return
		}
		if cell != before.Get(c) {
			t.Errorf("cell %v outside the blast changed", c)
		}
	})
}

func TestActivateRocket(t *testing.T) {
	tests := []struct {
		name string
		axis core.Axis
		hit  func(c, at core.Coord) bool
	}{
		{"row", core.AxisRow, func(c, at core.Coord) bool { return c.Row == at.Row }},
		{"column", core.AxisColumn, func(c, at core.Coord) bool { return c.Col == at.Col }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := background()
			at := core.At(5, 2)
			g.Set(at, core.Rocket(tt.axis))
			before := g.Clone()

			act, err := core.Activate(g, at, cycle(7), core.DefaultAlphabet)
			if err != nil {
				t.Fatalf("Activate() failed: %v", err)
			}
			if len(act.Cleared) != 7 {
				t.Errorf("len(Cleared) = %d, want 7", len(act.Cleared))
			}
			g.ForEach(func(c core.Coord, cell core.Cell) {
				if tt.hit(c, at) {
					if !cell.Is(core.SymbolNote) {
						t.Errorf("cell %v = %v, want note", c, cell)
					}
				} else if cell != before.Get(c) {
					t.Errorf("cell %v outside the blast changed", c)
				}
			})
		})
	}
}

func TestActivateCaughtPowerTileDoesNotChain(t *testing.T) {
	g := background()
	g.Set(core.At(0, 0), core.Rocket(core.AxisRow))
	g.Set(core.At(0, 5), core.Bomb())

	if _, err := core.Activate(g, core.At(0, 0), cycle(6), core.DefaultAlphabet); err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}
	if n := g.Count(func(c core.Cell) bool { return c.IsPower() }); n != 0 {
		t.Errorf("%d power tiles left", n)
	}
	// Row 1 is outside the rocket's line and untouched by the caught bomb.
	if got := g.Get(core.At(1, 5)); got != background().Get(core.At(1, 5)) {
		t.Errorf("cell (1,5) = %v, bomb should not have gone off", got)
	}
}

func TestActivateErrors(t *testing.T) {
	g := background()
	before := g.Clone()

	if _, err := core.Activate(g, core.At(8, 0), cycle(6), core.DefaultAlphabet); !errors.Is(err, core.ErrInvalidCoordinate) {
		t.Errorf("off-board error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := core.Activate(g, core.At(2, 2), cycle(6), core.DefaultAlphabet); !errors.Is(err, core.ErrNoOp) {
		t.Errorf("plain tile error = %v, want ErrNoOp", err)
	}
	if !g.Equal(before) {
		t.Error("rejected Activate() changed the grid")
	}
}
