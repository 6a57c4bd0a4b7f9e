package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or export campaigns",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available campaigns",
	Long:  `Shows the built-in campaign and every campaign found under --levels.`,
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <campaign> [file]",
	Short: "Write a campaign as YAML",
	Long: `Writes a campaign as YAML to a file, or to stdout when no file is
given. The output is a starting point for a custom campaign.

Examples:
  tilematch levels export classic
  tilematch levels export classic ./campaigns/mine.yaml`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runLevelsExport,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func quietSetup() *setup {
	logger, _, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	s, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}
	return s
}

func runLevelsList(_ *cobra.Command, _ []string) {
	s := quietSetup()

	fmt.Println("Available campaigns:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range s.campaigns {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "----")
	for _, c := range s.campaigns {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, c.ID, len(c.Levels), c.Name)
	}

	fmt.Println()
	fmt.Println("Run 'tilematch play <id>' to play a campaign.")
}

func runLevelsExport(_ *cobra.Command, args []string) {
	s := quietSetup()

	c, ok := s.findCampaign(args[0])
	if !ok {
		fail("unknown campaign %q", args[0])
	}
	data, err := levels.Export(c)
	if err != nil {
		fail("exporting %s: %v", c.ID, err)
	}

	if len(args) == 1 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		fail("writing %s: %v", args[1], err)
	}
	fmt.Printf("Wrote %s to %s\n", c.ID, args[1])
}
