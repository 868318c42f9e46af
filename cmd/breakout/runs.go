package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show run history",
	Long: `Show finished runs.

Without a level, prints per-level stats and the most recent runs. With a
level ID, prints the best runs of that level: wins first, fastest first.
In a terminal without arguments, opens the interactive run board
(use --plain to print instead).

Examples:
  breakout runs
  breakout runs 01-standard
  breakout runs --plain --limit 50
  breakout runs 01-standard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the level (all runs without a level)")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print instead of opening the run board")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening run database: %v", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	if flagRunsClear {
		if err := store.ClearRuns(levelID); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Runs cleared.")
		return
	}

	if levelID != "" {
		printBestRuns(store, levelID)
		return
	}

	if !flagRunsPlain && isTerminal() {
		lvls, err := loadLevels()
		if err != nil {
			fatalf("%v", err)
		}
		width, height := terminalSize()
		if err := tui.RunRunboard(store, levels.Data(lvls), width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	printSummary(store)
}

func printBestRuns(store *storage.Store, levelID string) {
	runs, err := store.BestRuns(levelID, flagRunsLimit)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Best runs - %s\n\n", levelID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-4s  %-12s  %s\n", "Rank", "Result", "Time", "Bricks", "Lost", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-4s  %-12s  %s\n", "----", "------", "----", "------", "----", "------", "----")
	for i, r := range runs {
		elapsed := "-"
		if r.Won() {
			elapsed = tui.FormatDuration(r.Duration)
		}
		fmt.Printf("  %-4d  %-6s  %-8s  %-6d  %-4d  %-12s  %s\n",
			i+1, r.Outcome, elapsed, r.BricksBroken, r.LivesLost, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.LevelStats()
	if err != nil {
		fatalf("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to record the first run!")
		return
	}

	fmt.Println("Levels")
	fmt.Println()
	fmt.Printf("  %-20s  %-5s  %-4s  %-8s  %s\n", "Level", "Plays", "Wins", "Best", "Last played")
	fmt.Printf("  %-20s  %-5s  %-4s  %-8s  %s\n", "-----", "-----", "----", "----", "-----------")
	for _, st := range stats {
		best := "-"
		if st.Wins > 0 {
			best = tui.FormatDuration(st.BestTime)
		}
		fmt.Printf("  %-20s  %-5d  %-4d  %-8s  %s\n",
			st.LevelID, st.Plays, st.Wins, best, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	for _, r := range recent {
		fmt.Printf("  %s  %-20s  %-4s  %d bricks  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Outcome, r.BricksBroken, r.Player)
	}
}
