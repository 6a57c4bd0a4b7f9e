package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
	"github.com/vovakirdan/tilematch/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
	flagPerLevel    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign]",
	Short: "Show high scores for a campaign",
	Long: `Display the top runs and overall stats for a campaign.
Without an ID the built-in campaign is shown.

Examples:
  tilematch scores
  tilematch scores classic --limit 20
  tilematch scores classic --per-level
  tilematch scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run for the campaign")
	scoresCmd.Flags().BoolVar(&flagPerLevel, "per-level", false, "Also show the best score for each level")
}

func runScores(_ *cobra.Command, args []string) {
	campaign := levels.DefaultID
	if len(args) == 1 {
		campaign = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(campaign); err != nil {
			store.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Cleared all scores for %s.\n", campaign)
		return
	}

	scores, err := store.TopScores(campaign, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", campaign)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilematch play %s' to set the first high score!\n", campaign)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "-----", "---", "----")
	for i, entry := range scores {
		won := fmt.Sprintf("%d/%d", entry.Won, entry.Levels)
		fmt.Printf("  %-4d  %-8d  %-6s  %s\n", i+1, entry.Score, won, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetCampaignStats(campaign)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Levels won/lost: %d/%d\n",
		stats.RunsCount, stats.HighScore, stats.AvgScore, stats.LevelsWon, stats.LevelsLost)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if !flagPerLevel {
		return
	}
	fmt.Println()
	for level := 1; ; level++ {
		best, err := store.BestLevelScore(campaign, level)
		if err != nil || best == 0 {
			break
		}
		fmt.Printf("  Level %d best: %d\n", level, best)
	}
}
