package tilematch

import (
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

func TestNewSameSeedSameBoard(t *testing.T) {
	opts := Options{
		Campaign: levels.Default(),
		Session:  core.DefaultConfig(),
		Seed:     1234,
	}

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer a.Close()
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer b.Close()

	sa, sb := a.Snapshot(), b.Snapshot()
	for r := range sa.Rows() {
		for c := range sa.Cols() {
			if sa.Cell(core.At(r, c)) != sb.Cell(core.At(r, c)) {
				t.Fatalf("boards differ at (%d,%d)", r, c)
			}
		}
	}
	if sa.LevelCount != len(levels.Default().Levels) {
		t.Errorf("LevelCount = %d, want %d", sa.LevelCount, len(levels.Default().Levels))
	}
}

func TestNewRejectsEmptyCampaign(t *testing.T) {
	if _, err := New(Options{Campaign: levels.Campaign{ID: "empty"}, Session: core.DefaultConfig()}); err == nil {
		t.Error("expected error for a campaign without levels")
	}
}

func TestNewRejectsBadBoard(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Rows = 2
	if _, err := New(Options{Campaign: levels.Default(), Session: cfg, Seed: 1}); err == nil {
		t.Error("expected error for a 2-row board")
	}
}
