// Package replay runs scripted intent sequences against a session without a
// terminal. Scripts are YAML:
//
//	campaign: classic
//	seed: 42
//	board:            # optional, replaces the first level's board
//	  - "01234567"
//	  ...
//	steps:
//	  - {do: select, at: [2, 3]}
//	  - {do: select, at: [2, 4]}
//	  - {do: tick, times: 30}
//	expect:           # optional checks on the final snapshot
//	  score: 12
//	  state: level_complete
package replay

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

// Script is a parsed replay file.
type Script struct {
	Campaign string   `yaml:"campaign"`
	Seed     int64    `yaml:"seed"`
	Board    []string `yaml:"board"`
	Steps    []Step   `yaml:"steps"`
	Expect   *Expect  `yaml:"expect"`
}

// Step is one scripted intent, optionally repeated.
type Step struct {
	Do    string `yaml:"do"`
	At    []int  `yaml:"at"`
	Times int    `yaml:"times"`
}

// Expect lists optional checks on the final snapshot.
type Expect struct {
	Score   *int     `yaml:"score"`
	Moves   *int     `yaml:"moves"`
	Level   *int     `yaml:"level"` // 1-indexed
	State   string   `yaml:"state"`
	Outcome string   `yaml:"outcome"`
	Board   []string `yaml:"board"`
}

// ParseScript decodes and validates a script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing script: %w", err)
	}
	if s.Campaign == "" {
		s.Campaign = levels.DefaultID
	}
	for i, st := range s.Steps {
		if _, err := st.Intent(); err != nil {
			return s, fmt.Errorf("step %d: %w", i+1, err)
		}
		if st.Times < 0 {
			return s, fmt.Errorf("step %d: negative times %d", i+1, st.Times)
		}
	}
	return s, nil
}

// Intent converts the step to a session intent.
func (st Step) Intent() (core.Intent, error) {
	kind, ok := core.ParseIntentKind(st.Do)
	if !ok {
		return core.Intent{}, fmt.Errorf("unknown intent %q", st.Do)
	}
	in := core.Intent{Kind: kind}
	if kind.HasTarget() {
		if len(st.At) != 2 {
			return in, fmt.Errorf("%s needs at: [row, col]", kind)
		}
		in.At = core.At(st.At[0], st.At[1])
	} else if len(st.At) != 0 {
		return in, fmt.Errorf("%s takes no target", kind)
	}
	return in, nil
}

// StepResult records what one applied intent did.
type StepResult struct {
	Intent core.Intent
	Score  int // Score gained
	Err    error
}

// Report is the outcome of a replay.
type Report struct {
	Steps    []StepResult
	Final    core.Snapshot
	Failures []string // Expectation mismatches
}

// OK reports whether every expectation held.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Run plays the script on a fresh session for campaign.
// Rejected intents are recorded, not fatal; only setup errors are returned.
func Run(s Script, campaign levels.Campaign, cfg core.Config) (Report, error) {
	var report Report

	if len(s.Board) > 0 {
		g, err := core.ParseGrid(s.Board...)
		if err != nil {
			return report, fmt.Errorf("board: %w", err)
		}
		cfg.Rows, cfg.Cols = g.Rows(), g.Cols()
		cfg.SettleOnLoad = false
	}

	session, err := core.NewSession(campaign.Levels, core.NewSource(s.Seed), cfg)
	if err != nil {
		return report, err
	}
	if len(s.Board) > 0 {
		if err := session.SetGrid(core.MustParseGrid(s.Board...)); err != nil {
			return report, err
		}
	}

	for _, st := range s.Steps {
		in, err := st.Intent()
		if err != nil {
			return report, err
		}
		times := max(st.Times, 1)
		for range times {
			snap, err := session.ApplyIntent(in)
			report.Steps = append(report.Steps, StepResult{Intent: in, Score: snap.LastScore, Err: err})
		}
	}

	report.Final = session.Snapshot()
	if s.Expect != nil {
		report.Failures = s.Expect.check(report.Final)
	}
	return report, nil
}

func (e Expect) check(snap core.Snapshot) []string {
	var out []string
	if e.Score != nil && snap.Score != *e.Score {
		out = append(out, fmt.Sprintf("score = %d, want %d", snap.Score, *e.Score))
	}
	if e.Moves != nil && snap.Moves != *e.Moves {
		out = append(out, fmt.Sprintf("moves = %d, want %d", snap.Moves, *e.Moves))
	}
	if e.Level != nil && snap.LevelIndex+1 != *e.Level {
		out = append(out, fmt.Sprintf("level = %d, want %d", snap.LevelIndex+1, *e.Level))
	}
	if e.State != "" && string(snap.State) != e.State {
		out = append(out, fmt.Sprintf("state = %s, want %s", snap.State, e.State))
	}
	if e.Outcome != "" && string(snap.Outcome) != e.Outcome {
		out = append(out, fmt.Sprintf("outcome = %q, want %q", snap.Outcome, e.Outcome))
	}
	if len(e.Board) > 0 {
		want := strings.Join(e.Board, "\n")
		if got := FormatBoard(snap); got != want {
			out = append(out, fmt.Sprintf("board =\n%s\nwant\n%s", got, want))
		}
	}
	return out
}

// FormatBoard renders a snapshot's board in the grid text format.
func FormatBoard(snap core.Snapshot) string {
	g, err := core.NewGridFromRows(snap.Board)
	if err != nil {
		return ""
	}
	return g.String()
}

// IsRejection reports whether err only means the intent had no effect.
func IsRejection(err error) bool {
	return errors.Is(err, core.ErrNoOp) ||
		errors.Is(err, core.ErrIllegalSelection) ||
		errors.Is(err, core.ErrInvalidCoordinate)
}
