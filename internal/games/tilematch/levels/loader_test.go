package levels_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels/formats"
)

const speedrun = `id: speedrun
name: Speedrun
levels:
  - name: Sprint
    target_score: 30
    max_moves: 10
    time_limit: 20
  - target_score: 60
    max_moves: 15
    time_limit: 30
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefaultCampaign(t *testing.T) {
	c := levels.Default()

	if c.ID != levels.DefaultID {
		t.Errorf("ID = %q, want %q", c.ID, levels.DefaultID)
	}
	want := core.DefaultLevels()
	if len(c.Levels) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(c.Levels))
	}
	for i := range want {
		if c.Levels[i] != want[i] {
			t.Errorf("level %d = %+v, want %+v", i, c.Levels[i], want[i])
		}
	}
	if c.LevelName(0) != "Warm-up" {
		t.Errorf("LevelName(0) = %q", c.LevelName(0))
	}
}

func TestParseYAML(t *testing.T) {
	c, err := formats.ParseYAML([]byte(speedrun))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if c.ID != "speedrun" || c.Name != "Speedrun" {
		t.Errorf("got id=%q name=%q", c.ID, c.Name)
	}
	if len(c.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(c.Levels))
	}
	if c.Levels[1] != (core.Level{TargetScore: 60, MaxMoves: 15, TimeLimit: 30}) {
		t.Errorf("level 2 = %+v", c.Levels[1])
	}
	if c.LevelNames[1] != "Level 2" {
		t.Errorf("unnamed level got %q", c.LevelNames[1])
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "levels: [unterminated"},
		{"missing id", "levels:\n  - {target_score: 1, max_moves: 1, time_limit: 1}\n"},
		{"no levels", "id: empty\n"},
		{"zero moves", "id: bad\nlevels:\n  - {target_score: 10, max_moves: 0, time_limit: 5}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formats.ParseYAML([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "speedrun.yaml", speedrun)
	writeFile(t, dir, "broken.yml", "id: broken\nlevels: []\n")
	writeFile(t, dir, "notes.txt", "ignored")

	loader := levels.NewLoader(dir)
	campaigns, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(campaigns) != 2 {
		t.Fatalf("expected classic + speedrun, got %d campaigns", len(campaigns))
	}
	if campaigns[0].ID != "classic" || campaigns[1].ID != "speedrun" {
		t.Errorf("unexpected order: %s, %s", campaigns[0].ID, campaigns[1].ID)
	}
	if !strings.HasSuffix(campaigns[1].FilePath, "speedrun.yaml") {
		t.Errorf("FilePath = %q", campaigns[1].FilePath)
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := levels.NewLoader(filepath.Join(t.TempDir(), "nope"))
	campaigns, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != levels.DefaultID {
		t.Errorf("expected only the built-in campaign, got %d", len(campaigns))
	}
}

func TestLoaderOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic.yaml", "id: classic\nlevels:\n  - {target_score: 5, max_moves: 5, time_limit: 5}\n")

	c, err := levels.NewLoader(dir).LoadByID("classic")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if len(c.Levels) != 1 || c.Levels[0].TargetScore != 5 {
		t.Errorf("file should replace the built-in campaign, got %+v", c.Levels)
	}

	if _, err := levels.NewLoader(dir).LoadByID("missing"); err == nil {
		t.Error("expected error for unknown campaign")
	}
}

func TestLoadFileError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "id: bad\n")

	_, err := levels.NewLoader(dir).LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing file") {
		t.Errorf("expected parse error with context, got %v", err)
	}
}

func TestScaled(t *testing.T) {
	c := levels.Default().Scaled(0.5, 2)

	if c.Levels[0].TimeLimit != 30 || c.Levels[0].MaxMoves != 40 {
		t.Errorf("scaled level 1 = %+v", c.Levels[0])
	}
	if c.Levels[0].TargetScore != 50 {
		t.Error("target score should not scale")
	}
	if levels.Default().Levels[0].TimeLimit != 60 {
		t.Error("Scaled should not modify the original")
	}

	tiny := levels.Default().Scaled(0.001, 0.001)
	for _, l := range tiny.Levels {
		if l.TimeLimit < 1 || l.MaxMoves < 1 {
			t.Errorf("limits dropped below 1: %+v", l)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	data, err := levels.Export(levels.Default())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("exported campaign does not parse: %v", err)
	}
	if parsed.ID != levels.DefaultID || len(parsed.Levels) != 3 || parsed.LevelNames[2] != "Marathon" {
		t.Errorf("round trip lost data: %+v", parsed)
	}
}
