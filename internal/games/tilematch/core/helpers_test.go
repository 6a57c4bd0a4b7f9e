package core_test

import (
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

// cycleSource returns its values in order, forever.
type cycleSource struct {
	vals []int
	n    int
}

func cycle(vals ...int) *cycleSource {
	return &cycleSource{vals: vals}
}

func (s *cycleSource) IntN(n int) int {
	v := s.vals[s.n%len(s.vals)]
	s.n++
	return v % n
}

// background returns an 8x8 board with no two equal neighbours, using
// symbols 1-5 only. Refills of 6 and 7 can never line up with it.
func background() *core.Grid {
	g := core.NewGrid(8, 8)
	g.ForEach(func(c core.Coord, _ core.Cell) {
		g.Set(c, core.Plain(core.Symbol(1+(2*c.Row+c.Col)%5)))
	})
	return g
}

// testConfig is an 8x8 board that keeps the initial fill as rolled.
func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.SettleOnLoad = false
	return cfg
}

func newTestSession(t *testing.T, levels []core.Level, rng core.Source, g *core.Grid) *core.Session {
	t.Helper()
	s, err := core.NewSession(levels, rng, testConfig())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if g != nil {
		if err := s.SetGrid(g); err != nil {
			t.Fatalf("SetGrid() failed: %v", err)
		}
	}
	return s
}

func countKind(snap core.Snapshot, kind core.Kind) int {
	n := 0
	for _, row := range snap.Board {
		for _, cell := range row {
			if cell.Kind() == kind {
				n++
			}
		}
	}
	return n
}
