package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-stats/internal/report"
	"github.com/pable/go-cricket-stats/internal/stats"
	"github.com/pable/go-cricket-stats/internal/storage"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats <statistic> <year>",
	Short: "Run one season statistic",
	Long: `Run a named statistic against a stored season.

Statistics:
  ` + strings.Join(stats.Names(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit the result as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	name, year := args[0], args[1]

	kind, ok := stats.ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown statistic %q, valid names:\n  %s",
			name, strings.Join(stats.Names(), "\n  "))
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	res, err := stats.Run(db, kind, year)
	if err != nil {
		return err
	}

	if statsJSON {
		out, err := json.MarshalIndent(res.Payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}
	report.PrintResult(os.Stdout, res)
	return nil
}
