package core_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

func TestCellVariants(t *testing.T) {
	star := core.Plain(core.SymbolStar)
	if !star.Matches(core.Plain(core.SymbolStar)) {
		t.Error("equal plain tiles should match")
	}
	if star.Matches(core.Plain(core.SymbolClub)) {
		t.Error("different plain tiles should not match")
	}
	if core.Bomb().Matches(core.Bomb()) {
		t.Error("bombs should never match")
	}
	if core.Rocket(core.AxisRow).Matches(core.Rocket(core.AxisRow)) {
		t.Error("rockets should never match")
	}
	if _, ok := core.Bomb().Symbol(); ok {
		t.Error("bomb should not report a symbol")
	}
	if _, ok := core.Bomb().Axis(); ok {
		t.Error("bomb should not report an axis")
	}
	if axis, ok := core.Rocket(core.AxisColumn).Axis(); !ok || axis != core.AxisColumn {
		t.Errorf("Rocket(AxisColumn).Axis() = %v, %v", axis, ok)
	}
	var zero core.Cell
	if !zero.IsEmpty() {
		t.Error("zero cell should be empty")
	}
}

func TestGridGetOutOfBounds(t *testing.T) {
	g := background()

	for _, c := range []core.Coord{core.At(-1, 0), core.At(0, -1), core.At(8, 0), core.At(0, 8)} {
		if g.InBounds(c) {
			t.Errorf("InBounds(%v) = true", c)
		}
		if !g.Get(c).IsEmpty() {
			t.Errorf("Get(%v) should be empty off the board", c)
		}
	}
}

func TestGridSwap(t *testing.T) {
	g := background()
	a, b := core.At(3, 3), core.At(3, 4)
	ca, cb := g.Get(a), g.Get(b)

	if err := g.Swap(a, b); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	if g.Get(a) != cb || g.Get(b) != ca {
		t.Error("Swap() did not exchange cells")
	}

	tests := []struct {
		name string
		a, b core.Coord
	}{
		{"same cell", core.At(1, 1), core.At(1, 1)},
		{"first off board", core.At(-1, 0), core.At(0, 0)},
		{"second off board", core.At(7, 7), core.At(8, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.Clone()
			err := g.Swap(tt.a, tt.b)
			if !errors.Is(err, core.ErrInvalidCoordinate) {
				t.Errorf("Swap(%v, %v) error = %v, want ErrInvalidCoordinate", tt.a, tt.b, err)
			}
			if !g.Equal(before) {
				t.Error("failed Swap() changed the grid")
			}
		})
	}
}

func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		a, b     core.Coord
		expected bool
	}{
		{core.At(0, 0), core.At(0, 1), true},
		{core.At(0, 0), core.At(1, 0), true},
		{core.At(4, 4), core.At(3, 4), true},
		{core.At(0, 0), core.At(1, 1), false},
		{core.At(0, 0), core.At(0, 2), false},
		{core.At(2, 2), core.At(2, 2), false},
	}

	for _, tt := range tests {
		if got := core.IsAdjacent(tt.a, tt.b); got != tt.expected {
			t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestGridFillDeterministic(t *testing.T) {
	g1 := core.NewGrid(8, 8)
	g2 := core.NewGrid(8, 8)
	g1.Fill(rand.New(rand.NewPCG(42, 7)), core.DefaultAlphabet)
	g2.Fill(rand.New(rand.NewPCG(42, 7)), core.DefaultAlphabet)

	if !g1.Equal(g2) {
		t.Error("same seed should produce the same board")
	}
	if n := g1.Count(func(c core.Cell) bool { return !c.IsPlain() }); n != 0 {
		t.Errorf("Fill() left %d non-plain cells", n)
	}
}

func TestParseGrid(t *testing.T) {
	g, err := core.ParseGrid(
		"01B",
		"-|.",
	)
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if !g.Get(core.At(0, 0)).Is(core.SymbolStar) {
		t.Error("expected star at (0,0)")
	}
	if g.Get(core.At(0, 2)).Kind() != core.KindBomb {
		t.Error("expected bomb at (0,2)")
	}
	if axis, _ := g.Get(core.At(1, 1)).Axis(); axis != core.AxisColumn {
		t.Error("expected column rocket at (1,1)")
	}
	if !g.Get(core.At(1, 2)).IsEmpty() {
		t.Error("expected empty at (1,2)")
	}
	if g.String() != "01B\n-|." {
		t.Errorf("String() = %q", g.String())
	}

	if _, err := core.ParseGrid("01", "012"); err == nil {
		t.Error("ragged rows should fail")
	}
	if _, err := core.ParseGrid("0x"); err == nil {
		t.Error("unknown rune should fail")
	}
}
