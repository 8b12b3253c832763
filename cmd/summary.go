package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-stats/internal/report"
	"github.com/pable/go-cricket-stats/internal/storage"
)

// summaryCmd displays a high-level overview of the stored data.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate counts of everything stored in the database:
seasons, master entities (teams, players, umpires, venues), matches
and deliveries, plus the per-season breakdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Matches == 0 {
		fmt.Fprintln(os.Stdout, "No seasons stored yet. Run 'cricstats import <matches.csv> <deliveries.csv>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Seasons    : %d\n", ov.Seasons)
	fmt.Fprintf(os.Stdout, "  Cities     : %d\n", ov.Cities)
	fmt.Fprintf(os.Stdout, "  Venues     : %d\n", ov.Venues)
	fmt.Fprintf(os.Stdout, "  Teams      : %d\n", ov.Teams)
	fmt.Fprintf(os.Stdout, "  Umpires    : %d\n", ov.Umpires)
	fmt.Fprintf(os.Stdout, "  Players    : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Matches    : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Deliveries : %d\n", ov.Deliveries)

	seasons, err := db.ListSeasons()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Seasons ---\n\n")
	report.PrintSeasonList(os.Stdout, seasons)
	return nil
}
