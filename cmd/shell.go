package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-stats/internal/report"
	"github.com/pable/go-cricket-stats/internal/stats"
	"github.com/pable/go-cricket-stats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the season database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("cricstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("cricstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "seasons":
			shellSeasons(db)
		case "stats":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: stats <statistic> <year>")
				continue
			}
			shellStats(db, args[0], args[1])
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			shellSQL(db, strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"seasons", "list stored seasons"},
		{"stats <statistic> <year>", "run one season statistic"},
		{"sql <query>", "run a raw SQL query"},
		{"exit", "leave the shell"},
	}
	for _, r := range rows {
		cCmd.Printf("  %-26s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
	cMuted.Println("statistics: " + strings.Join(stats.Names(), ", "))
	fmt.Println()
}

func shellSeasons(db *storage.DB) {
	seasons, err := db.ListSeasons()
	if err != nil {
		cError.Fprintf(os.Stderr, "list seasons: %v\n", err)
		return
	}
	if len(seasons) == 0 {
		cMuted.Println("no seasons stored")
		return
	}
	report.PrintSeasonList(os.Stdout, seasons)
}

func shellStats(db *storage.DB, name, year string) {
	kind, ok := stats.ParseKind(name)
	if !ok {
		cError.Fprintf(os.Stderr, "unknown statistic %q\n", name)
		cMuted.Println("valid: " + strings.Join(stats.Names(), ", "))
		return
	}
	res, err := stats.Run(db, kind, year)
	if err != nil {
		cError.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	report.PrintResult(os.Stdout, res)
}

func shellSQL(db *storage.DB, query string) {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	if len(rows) == 0 {
		cMuted.Println("(no rows)")
		return
	}
	renderRows(os.Stdout, cols, rows)
	fmt.Printf("(%d rows)\n", len(rows))
}
