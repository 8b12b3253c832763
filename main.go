// Package main is the entry point for the cricstats CLI tool, which imports
// season CSV files and answers aggregate cricket statistics.
package main

import "github.com/pable/go-cricket-stats/cmd"

func main() {
	cmd.Execute()
}
