package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		board    []string
		score    int
		cleared  int
		expected []core.Spawn
	}{
		{
			name:    "three in a row",
			board:   []string{"00012", "34534", "45345"},
			score:   3,
			cleared: 3,
		},
		{
			name:     "four in a row spawns a bomb at the start",
			board:    []string{"11112", "34534", "45345"},
			score:    4,
			cleared:  4,
			expected: []core.Spawn{{At: core.At(0, 0), Tile: core.Bomb()}},
		},
		{
			name:     "five in a row spawns a row rocket",
			board:    []string{"22222", "34534", "45345"},
			score:    5,
			cleared:  5,
			expected: []core.Spawn{{At: core.At(0, 0), Tile: core.Rocket(core.AxisRow)}},
		},
		{
			name:     "six in a row still spawns one rocket",
			board:    []string{"333333", "452452", "524524"},
			score:    6,
			cleared:  6,
			expected: []core.Spawn{{At: core.At(0, 0), Tile: core.Rocket(core.AxisRow)}},
		},
		{
			name:     "four in a column spawns a bomb at the top",
			board:    []string{"314", "512", "413", "512", "434"},
			score:    4,
			cleared:  4,
			expected: []core.Spawn{{At: core.At(0, 1), Tile: core.Bomb()}},
		},
		{
			name:     "five in a column spawns a column rocket",
			board:    []string{"314", "512", "413", "512", "415"},
			score:    5,
			cleared:  5,
			expected: []core.Spawn{{At: core.At(0, 1), Tile: core.Rocket(core.AxisColumn)}},
		},
		{
			name:    "crossing threes score both runs",
			board:   []string{"111", "213", "314"},
			score:   6,
			cleared: 6,
		},
		{
			name:    "crossing fours spawn on distinct cells",
			board:   []string{"1111", "1234", "1345", "1452"},
			score:   8,
			cleared: 8,
			expected: []core.Spawn{
				{At: core.At(0, 0), Tile: core.Bomb()},
				{At: core.At(1, 0), Tile: core.Bomb()},
			},
		},
		{
			name:    "four by four block spawns one tile per run",
			board:   []string{"11112", "11113", "11114", "11115", "23452"},
			score:   32,
			cleared: 32,
			expected: []core.Spawn{
				{At: core.At(0, 0), Tile: core.Bomb()},
				{At: core.At(1, 0), Tile: core.Bomb()},
				{At: core.At(2, 0), Tile: core.Bomb()},
				{At: core.At(3, 0), Tile: core.Bomb()},
				{At: core.At(0, 1), Tile: core.Bomb()},
				{At: core.At(1, 1), Tile: core.Bomb()},
				{At: core.At(0, 2), Tile: core.Bomb()},
				{At: core.At(0, 3), Tile: core.Bomb()},
			},
		},
		{
			name:     "square spawns a bomb at its corner",
			board:    []string{"1123", "1134", "2345"},
			score:    4,
			cleared:  4,
			expected: []core.Spawn{{At: core.At(0, 0), Tile: core.Bomb()}},
		},
		{
			name:    "square touching a run is ignored",
			board:   []string{"1112", "1134", "2345"},
			score:   3,
			cleared: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParseGrid(tt.board...)
			res := core.Scan(g, cycle(6, 7), core.DefaultAlphabet)

			if !res.Found() {
				t.Fatal("Scan() found nothing")
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("ScoreDelta = %d, want %d", res.ScoreDelta, tt.score)
			}
			if len(res.Cleared) != tt.cleared {
				t.Errorf("len(Cleared) = %d, want %d", len(res.Cleared), tt.cleared)
			}
			if !reflect.DeepEqual(res.Spawns, tt.expected) {
				t.Errorf("Spawns = %v, want %v", res.Spawns, tt.expected)
			}
			for _, sp := range tt.expected {
				if got := g.Get(sp.At); got != sp.Tile {
					t.Errorf("cell %v = %v, want %v", sp.At, got, sp.Tile)
				}
			}
			if n := g.Count(func(c core.Cell) bool { return c.IsEmpty() }); n != 0 {
				t.Errorf("Scan() left %d empty cells", n)
			}
		})
	}
}

func TestScanStableBoard(t *testing.T) {
	g := background()
	before := g.Clone()

	res := core.Scan(g, cycle(0), core.DefaultAlphabet)
	if res.Found() || res.ScoreDelta != 0 {
		t.Errorf("Scan() on a stable board = %+v", res)
	}
	if !g.Equal(before) {
		t.Error("Scan() changed a stable board")
	}
}

func TestPowerTilesNeverMatch(t *testing.T) {
	g := core.MustParseGrid(
		"BBB",
		"---",
		"|||",
	)
	if core.HasMatches(g) {
		t.Errorf("power tiles matched: %v", core.FindRuns(g))
	}
}

func TestScanClearsStarsBySymbol(t *testing.T) {
	g := core.MustParseGrid("00012", "34534", "45345")
	res := core.Scan(g, cycle(6, 7), core.DefaultAlphabet)

	stars := 0
	for _, c := range res.Cleared {
		if c.Is(core.StarSymbol) {
			stars++
		}
	}
	if stars != 3 {
		t.Errorf("cleared %d stars, want 3", stars)
	}
	if got := g.String(); got != "67612\n34534\n45345" {
		t.Errorf("board after scan:\n%s", got)
	}
}
