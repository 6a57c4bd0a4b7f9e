// tilematch is a terminal tile-matching puzzle game.
//
// Usage:
//
//	tilematch play [campaign]          - Play a campaign (menu when omitted)
//	tilematch serve                    - Start SSH server for remote play
//	tilematch scores [campaign]        - Show high scores and stats
//	tilematch levels list              - List available campaigns
//	tilematch levels export <id>       - Print a campaign as YAML
//	tilematch replay <script.yaml>     - Run a scripted session headless
//
// Global flags:
//
//	--fps <rate>          - Set UI tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.tilematch/scores.db)
//	--config <path>       - Use a custom tilematch.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Load extra campaigns from a directory
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/config"
	"github.com/vovakirdan/tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilematch",
	Short: "Tilematch - swap tiles, line up three, chase the target score",
	Long: `Tilematch is a terminal tile-matching puzzle game.

Swap two neighbouring tiles to line up three or more of a kind. Longer
runs leave bombs and rockets behind, and every few stars you clear
charge a booster that wipes a whole symbol off the board.

Available commands:
  play     - Play a campaign (interactive menu if none given)
  serve    - Start SSH server for remote play
  scores   - View high scores
  levels   - List or export campaigns
  replay   - Run a scripted session without a terminal

Examples:
  tilematch play
  tilematch play classic --difficulty easy
  tilematch serve --ssh :2222
  tilematch scores classic
  tilematch replay ./swap.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "UI tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilematch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tilematch.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra campaign files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(replayCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger builds the command logger. Interactive play draws over the
// terminal, so it logs to --log-file or nowhere; other commands use stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("invalid log level %q", flagLogLevel)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilematch",
		Level:           level,
	})
	return logger, cleanup, nil
}

// setup holds what every game-running command needs.
type setup struct {
	cfg       config.TilematchConfig
	campaigns []levels.Campaign
	logger    *log.Logger
}

// loadSetup reads config, applies the difficulty flag and loads campaigns.
func loadSetup(logger *log.Logger) (*setup, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q (want one of %v)", flagDifficulty, config.Presets())
		}
		config.ApplyPreset(&cfg, preset)
	}

	dir := flagLevelsDir
	if dir == "" {
		dir = cfg.Levels.Dir
	}
	campaigns, err := levels.NewLoader(expandHome(dir)).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading campaigns: %w", err)
	}

	logger.Debug("setup loaded",
		"campaigns", len(campaigns),
		"difficulty", cfg.Difficulty.Preset,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Rows, cfg.Board.Cols),
	)
	return &setup{cfg: cfg, campaigns: campaigns, logger: logger}, nil
}

// findCampaign looks a campaign up by ID.
func (s *setup) findCampaign(id string) (levels.Campaign, bool) {
	for _, c := range s.campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return levels.Campaign{}, false
}

// defaultCampaign is the configured campaign, or the built-in one.
func (s *setup) defaultCampaign() levels.Campaign {
	if c, ok := s.findCampaign(s.cfg.Levels.Campaign); ok {
		return c
	}
	return levels.Default()
}

// scaled applies the difficulty scales to a campaign.
func (s *setup) scaled(c levels.Campaign) levels.Campaign {
	timeScale, moveScale := s.cfg.Difficulty.Scales()
	return c.Scaled(timeScale, moveScale)
}

// newGame builds a game for campaign with the given seed.
func (s *setup) newGame(c levels.Campaign, seed int64) (*tilematch.Game, error) {
	return tilematch.New(tilematch.Options{
		Campaign:     s.scaled(c),
		Session:      s.cfg.SessionConfig(s.logger),
		Seed:         seed,
		TickInterval: s.cfg.TickInterval(),
		Logger:       s.logger,
	})
}

// gameFactory adapts newGame for the SSH server, where every connection
// gets a fresh seed.
func (s *setup) gameFactory() func(levels.Campaign) (*tilematch.Game, error) {
	return func(c levels.Campaign) (*tilematch.Game, error) {
		return s.newGame(c, 0)
	}
}
