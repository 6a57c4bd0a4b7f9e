package core_test

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

func TestCompact(t *testing.T) {
	g := core.MustParseGrid(
		"12",
		".3",
		"4.",
		"..",
	)
	if !core.Compact(g) {
		t.Fatal("Compact() reported no movement")
	}
	want := "..\n..\n12\n43"
	if got := g.String(); got != want {
		t.Errorf("after Compact():\n%s\nwant:\n%s", got, want)
	}
	if core.Compact(g) {
		t.Error("second Compact() should not move anything")
	}
}

func TestRefill(t *testing.T) {
	g := core.MustParseGrid(
		"..",
		"12",
	)
	if n := core.Refill(g, cycle(6, 7), core.DefaultAlphabet); n != 2 {
		t.Errorf("Refill() = %d, want 2", n)
	}
	if got := g.String(); got != "67\n12" {
		t.Errorf("after Refill():\n%s", got)
	}
}

func TestResolveReachesFixedPoint(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		g := core.NewGrid(8, 8)
		rng := rand.New(rand.NewPCG(seed, seed*31+1))
		g.Fill(rng, core.DefaultAlphabet)

		res := core.Resolve(g, rng, core.DefaultAlphabet, 0)
		if res.Overflow {
			continue
		}
		if core.HasMatches(g) {
			t.Fatalf("seed %d: board still has matches after Resolve():\n%s", seed, g)
		}
		if n := g.Count(func(c core.Cell) bool { return c.IsEmpty() }); n != 0 {
			t.Fatalf("seed %d: %d empty cells after Resolve()", seed, n)
		}
	}
}

func TestResolveFourRun(t *testing.T) {
	g := background()
	for col := 1; col <= 4; col++ {
		g.Set(core.At(2, col), core.Plain(core.SymbolUmbrella))
	}

	res := core.Resolve(g, cycle(6, 7), core.DefaultAlphabet, 0)

	if res.ScoreDelta != 4 {
		t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
	}
	if res.Passes != 1 || res.Overflow {
		t.Errorf("Passes = %d, Overflow = %v", res.Passes, res.Overflow)
	}
	if got := g.Get(core.At(2, 1)); got.Kind() != core.KindBomb {
		t.Errorf("cell (2,1) = %v, want bomb", got)
	}
	if core.HasMatches(g) {
		t.Errorf("board still has matches:\n%s", g)
	}
}

func TestResolveOverflow(t *testing.T) {
	g := background()
	for col := 1; col <= 4; col++ {
		g.Set(core.At(2, col), core.Plain(core.SymbolUmbrella))
	}

	// Every refill rolls the same symbol, so the run keeps coming back.
	res := core.Resolve(g, cycle(6), core.DefaultAlphabet, 3)

	if !res.Overflow {
		t.Fatal("expected overflow")
	}
	if res.Passes != 3 {
		t.Errorf("Passes = %d, want 3", res.Passes)
	}
	if n := g.Count(func(c core.Cell) bool { return c.IsEmpty() }); n != 0 {
		t.Errorf("%d empty cells after overflow", n)
	}
}
