package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/replay"
)

var flagQuiet bool

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a scripted session without a terminal",
	Long: `Plays the intents listed in a YAML script against a fresh session and
prints what each one did, then the final board. If the script has an
expect block, mismatches are reported and the command exits with 1.

Script format:
  campaign: classic      # optional, defaults to the built-in campaign
  seed: 42
  board:                 # optional, replaces the first board
    - "00345123"
    - ...
  steps:
    - {do: select, at: [0, 2]}
    - {do: select, at: [1, 2]}
    - {do: tick, times: 10}
  expect:
    moves: 1
    state: playing

Intents: select, activate, booster, next, reset, tick, pause, hint.

Examples:
  tilematch replay ./swap.yaml
  tilematch replay ./swap.yaml --quiet`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print expectation failures")
}

func runReplay(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	s, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fail("reading script: %v", err)
	}
	script, err := replay.ParseScript(data)
	if err != nil {
		fail("%v", err)
	}

	campaign, ok := s.findCampaign(script.Campaign)
	if !ok {
		fail("unknown campaign %q", script.Campaign)
	}

	report, err := replay.Run(script, s.scaled(campaign), s.cfg.SessionConfig(logger))
	if err != nil {
		fail("%v", err)
	}

	if !flagQuiet {
		for i, st := range report.Steps {
			switch {
			case st.Err == nil:
				fmt.Printf("%3d  %-18s +%d\n", i+1, st.Intent, st.Score)
			case replay.IsRejection(st.Err):
				fmt.Printf("%3d  %-18s rejected: %v\n", i+1, st.Intent, st.Err)
			default:
				fmt.Printf("%3d  %-18s error: %v\n", i+1, st.Intent, st.Err)
			}
		}

		f := report.Final
		fmt.Println()
		fmt.Println(replay.FormatBoard(f))
		fmt.Println()
		fmt.Printf("level %d/%d  score %d/%d  moves %d/%d  time %d  stars %d/%d  state %s",
			f.LevelIndex+1, f.LevelCount, f.Score, f.TargetScore, f.Moves, f.MaxMoves,
			f.TimeRemaining, f.StarCount, f.StarThreshold, f.State)
		if f.Outcome != "" {
			fmt.Printf(" (%s)", f.Outcome)
		}
		fmt.Println()
	}

	if !report.OK() {
		for _, msg := range report.Failures {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", msg)
		}
		os.Exit(1)
	}
}
