package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
	"github.com/vovakirdan/tilematch/internal/platform/tui"
	"github.com/vovakirdan/tilematch/internal/storage"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:     "play [campaign]",
	Aliases: []string{"menu"},
	Short:   "Play a campaign",
	Long: `Play a campaign in the terminal.

Without a campaign ID the interactive menu opens; after a game you
return to it. With an ID the campaign starts right away.

Controls:
  Arrows/WASD/hjkl - Move cursor
  Space/Enter      - Select, then select a neighbour to swap
  X                - Detonate the power tile under the cursor
  B                - Use the booster once charged
  ?/I              - Show a hint
  N                - Next level after a level ends
  R                - Restart the campaign
  P/Esc            - Pause (Esc again returns to the menu)
  T                - Toggle theme
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Longer timers, more moves, fewer symbols
  normal - Campaign limits as written
  hard   - Shorter timers, fewer moves, all eight symbols
  fixed  - Ignore any scaling from the config file

Examples:
  tilematch play
  tilematch play classic --difficulty hard
  tilematch play marathon --levels ./campaigns --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	s, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil // Continue without storage
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if len(args) == 1 {
		campaign, ok := s.findCampaign(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown campaign %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'tilematch levels list' to see available campaigns.")
			os.Exit(1)
		}
		if _, err := playOnce(s, store, campaign, cfg, flagTheme); err != nil {
			fail("running game: %v", err)
		}
		return
	}

	runMenuLoop(s, store, cfg)
}

// playOnce runs one campaign to completion and returns the UI state to carry
// back to the menu.
func playOnce(s *setup, store *storage.Store, c levels.Campaign, cfg core.RuntimeConfig, theme string) (tui.RunResult, error) {
	game, err := s.newGame(c, cfg.Seed)
	if err != nil {
		return tui.RunResult{Config: cfg, Theme: theme}, err
	}
	defer game.Close()

	return tui.Run(game, cfg, tui.ModelOptions{
		Store:  store,
		Theme:  theme,
		Logger: s.logger,
	})
}

func runMenuLoop(s *setup, store *storage.Store, cfg core.RuntimeConfig) {
	theme := tui.ThemeByName(flagTheme)

	for {
		menuResult, err := tui.RunMenu(s.campaigns, store, cfg, theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.campaigns, store, cfg.ScreenW, cfg.ScreenH, theme)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.Campaign == nil {
			return
		}

		result, err := playOnce(s, store, *menuResult.Campaign, cfg, theme.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		cfg = result.Config
		theme = tui.ThemeByName(result.Theme)
		if !result.BackToMenu {
			return
		}

		// A fixed seed only applies to the first game.
		cfg.Seed = 0
	}
}
