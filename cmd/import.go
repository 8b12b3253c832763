package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-cricket-stats/internal/importer"
	"github.com/pable/go-cricket-stats/internal/storage"
)

var importQuiet bool

var importCmd = &cobra.Command{
	Use:   "import <matches.csv> <deliveries.csv>",
	Short: "Import a season's match and delivery files",
	Long: `Normalize the two flat season files into the relational store.

Master entities (seasons, cities, venues, teams, umpires, players) are
deduplicated and inserted once each; bad rows are logged and skipped.
The importer expects an empty store: re-importing the same season fails
on the unique-name constraints.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "suppress per-row skip logs")
}

func runImport(cmd *cobra.Command, args []string) error {
	matchesPath, deliveriesPath := args[0], args[1]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	logger := zap.NewNop()
	if !importQuiet {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer logger.Sync()

	fmt.Fprintf(os.Stdout, "Importing %s + %s...\n", matchesPath, deliveriesPath)
	res, err := importer.New(db, logger).Run(matchesPath, deliveriesPath)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\nImported:\n")
	fmt.Fprintf(os.Stdout, "  Seasons    : %d\n", res.Seasons)
	fmt.Fprintf(os.Stdout, "  Cities     : %d\n", res.Cities)
	fmt.Fprintf(os.Stdout, "  Venues     : %d\n", res.Venues)
	fmt.Fprintf(os.Stdout, "  Teams      : %d\n", res.Teams)
	fmt.Fprintf(os.Stdout, "  Umpires    : %d\n", res.Umpires)
	fmt.Fprintf(os.Stdout, "  Players    : %d\n", res.Players)
	fmt.Fprintf(os.Stdout, "  Matches    : %d (skipped %d)\n", res.Matches, res.SkippedMatches)
	fmt.Fprintf(os.Stdout, "  Deliveries : %d (skipped %d)\n", res.Deliveries, res.SkippedDeliveries)
	return nil
}
