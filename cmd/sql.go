package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-stats/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the season database",
	Long: `Run an arbitrary SQL query against the season database and print results as a table.

Schema overview:
  seasons(id, year)
  cities(id, name)
  venues(id, city_id, name)
  teams(id, name) / umpires(id, name) / players(id, name)
  matches(id, source_id, season_id, venue_id, match_date, team1_id, team2_id,
    toss_winner_id, toss_decision, result, dl_applied, winner_id, won_by,
    win_margin, man_of_match_id, umpire1_id, umpire2_id, umpire3_id)
  deliveries(id, match_id, inning, over_number, ball, batting_team_id,
    bowling_team_id, batsman_id, bowler_id, non_striker_id, is_super_over,
    wide_runs, bye_runs, leg_bye_runs, no_ball_runs, penalty_runs,
    batsman_runs, extra_runs, dismissal_kind, dismissed_id, fielder_id)

Enums are stored as integers: toss_decision (1=bat 2=field 0=unknown),
result (1=normal 2=tie 0=no result), won_by (1=runs 2=wickets 0=unknown),
dismissal_kind (0=not out ... 9=retired hurt).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	renderRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

func renderRows(w io.Writer, cols []string, rows [][]string) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
}
