package replay_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/replay"
)

// Three stars in row 0 are one swap away: (0,2) <-> (1,2).
const swapScript = `
seed: 7
board:
  - "00345123"
  - "34012345"
  - "51234512"
  - "23451234"
  - "45123451"
  - "12345123"
  - "34512345"
  - "51234512"
steps:
  - {do: select, at: [0, 2]}
  - {do: select, at: [1, 2]}
`

func mustParse(t *testing.T, src string) replay.Script {
	t.Helper()
	s, err := replay.ParseScript([]byte(src))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}
	return s
}

func TestParseScript(t *testing.T) {
	s := mustParse(t, swapScript)
	if s.Campaign != levels.DefaultID {
		t.Errorf("Campaign = %q, want %q", s.Campaign, levels.DefaultID)
	}
	if s.Seed != 7 || len(s.Board) != 8 || len(s.Steps) != 2 {
		t.Errorf("unexpected script: %+v", s)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad yaml", "steps: [", "parsing script"},
		{"unknown intent", "steps:\n  - {do: jump}", "unknown intent"},
		{"missing target", "steps:\n  - {do: select}", "needs at"},
		{"short target", "steps:\n  - {do: activate, at: [1]}", "needs at"},
		{"unexpected target", "steps:\n  - {do: tick, at: [0, 0]}", "takes no target"},
		{"negative times", "steps:\n  - {do: tick, times: -2}", "negative times"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replay.ParseScript([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunSwap(t *testing.T) {
	s := mustParse(t, swapScript)
	report, err := replay.Run(s, levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(report.Steps) != 2 {
		t.Fatalf("got %d step results, want 2", len(report.Steps))
	}
	for i, st := range report.Steps {
		if st.Err != nil {
			t.Errorf("step %d failed: %v", i+1, st.Err)
		}
	}
	if report.Steps[1].Score < 3 {
		t.Errorf("swap scored %d, want at least 3", report.Steps[1].Score)
	}
	if report.Final.Moves != 1 {
		t.Errorf("Moves = %d, want 1", report.Final.Moves)
	}
	if report.Final.Score != report.Steps[1].Score {
		t.Errorf("Score = %d, want %d", report.Final.Score, report.Steps[1].Score)
	}
	if !report.OK() {
		t.Errorf("no expectations, got failures %v", report.Failures)
	}
}

func TestRunExpectations(t *testing.T) {
	src := swapScript + `
expect:
  moves: 1
  level: 1
  state: playing
`
	report, err := replay.Run(mustParse(t, src), levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("Failures = %v", report.Failures)
	}

	src = swapScript + `
expect:
  moves: 4
  outcome: won
`
	report, err = replay.Run(mustParse(t, src), levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(report.Failures) != 2 {
		t.Errorf("Failures = %v, want 2", report.Failures)
	}
}

func TestRunRepeatsSteps(t *testing.T) {
	s := mustParse(t, "seed: 3\nsteps:\n  - {do: tick, times: 5}\n  - {do: tick}\n")
	report, err := replay.Run(s, levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(report.Steps) != 6 {
		t.Fatalf("got %d step results, want 6", len(report.Steps))
	}
	want := levels.Default().Levels[0].TimeLimit - 6
	if report.Final.TimeRemaining != want {
		t.Errorf("TimeRemaining = %d, want %d", report.Final.TimeRemaining, want)
	}
}

func TestRunRecordsRejections(t *testing.T) {
	s := mustParse(t, "steps:\n  - {do: activate, at: [0, 0]}\n")
	report, err := replay.Run(s, levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(report.Steps) != 1 || !replay.IsRejection(report.Steps[0].Err) {
		t.Errorf("activating a plain tile should be rejected, got %+v", report.Steps)
	}
}

func TestRunBadBoard(t *testing.T) {
	s := mustParse(t, "board: [\"01\", \"012\"]\n")
	if _, err := replay.Run(s, levels.Default(), core.DefaultConfig()); err == nil {
		t.Error("ragged board should fail")
	}
}

func TestFormatBoard(t *testing.T) {
	s := mustParse(t, swapScript)
	report, err := replay.Run(replay.Script{Board: s.Board}, levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got, want := replay.FormatBoard(report.Final), strings.Join(s.Board, "\n"); got != want {
		t.Errorf("FormatBoard() =\n%s\nwant\n%s", got, want)
	}
}
