// Package report renders statistic results and season listings as tables.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-stats/internal/model"
	"github.com/pable/go-cricket-stats/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintResult renders one statistic result as a table with a header line.
func PrintResult(w io.Writer, res *stats.Result) {
	fmt.Fprintf(w, "\n%s — season %d\n\n", res.Kind, res.Year)
	if len(res.Rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	table := newTable(w)
	cols := make([]any, len(res.Columns))
	for i, c := range res.Columns {
		cols[i] = c
	}
	table.Header(cols...)
	for _, row := range res.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintSeasonList renders the stored seasons with match and delivery counts.
func PrintSeasonList(w io.Writer, seasons []model.SeasonSummary) {
	table := newTable(w)
	table.Header("SEASON", "MATCHES", "DELIVERIES")
	for _, s := range seasons {
		table.Append(
			fmt.Sprintf("%d", s.Year),
			fmt.Sprintf("%d", s.Matches),
			fmt.Sprintf("%d", s.Deliveries),
		)
	}
	table.Render()
}
