package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels/formats"
)

var flagShowYAML bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate and print levels",
	Long: `Work with level files.

Level files live in one directory (--levels) and are played in file name
order. Two formats are supported:

  .lvl         whitespace-separated tile codes, one row per line,
               '#' comments, optional "# name: ..." header
  .yaml/.yml   id, name and rows keys

Tile codes: 0 empty, 1 solid (unbreakable), 2 and up breakable colors.`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels that would be played",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check [file|dir]...",
	Short: "Validate level files",
	Long: `Parse level files and report every error with its position.
Without arguments, checks the --levels directory.

Examples:
  breakout levels check ./levels
  breakout levels check ./levels/03-invader.lvl`,
	Run: runLevelsCheck,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a level",
	Long: `Print a level in the .lvl format, or as YAML with --yaml.
Useful to copy a built-in level as a starting point:

  breakout levels show 06-fortress > levels/07-my-fortress.lvl`,
	Args: cobra.ExactArgs(1),
	Run:  runLevelsShow,
}

func init() {
	levelsShowCmd.Flags().BoolVar(&flagShowYAML, "yaml", false, "Print in the YAML format")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsCheckCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("%v", err)
	}
	lvls, err := loadLevels()
	if err != nil {
		fatalf("%v", err)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "#", maxIDLen, "ID", "Size", "Bricks", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %-6s  %s\n", "-", maxIDLen, "--", "----", "------", "----")

	for i, l := range lvls {
		var built breakout.Level
		bricks := "?"
		if err := built.Load(l.Grid, cfg.Field.Width, cfg.Field.Height*cfg.Field.BrickArea); err == nil {
			bricks = fmt.Sprintf("%d", built.Remaining())
		}
		size := fmt.Sprintf("%dx%d", len(l.Grid[0]), len(l.Grid))
		fmt.Printf("  %-3d  %-*s  %-7s  %-6s  %s\n", i+1, maxIDLen, l.ID, size, bricks, l.Name)
	}

	fmt.Println()
	if flagLevelsDir == "" {
		fmt.Println("Built-in levels. Use --levels <dir> to play your own.")
	} else {
		fmt.Printf("Levels from %s\n", flagLevelsDir)
	}
}

func runLevelsCheck(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		if flagLevelsDir == "" {
			fatalf("nothing to check: pass files or directories, or set --levels")
		}
		args = []string{flagLevelsDir}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fatalf("%v", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			fatalf("%v", err)
		}
		for _, e := range entries {
			if !e.IsDir() && levels.IsLevelFile(e.Name()) {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		fatalf("no level files found")
	}

	failed := 0
	for _, f := range files {
		lvl, err := levels.NewLoader(filepath.Dir(f)).LoadFile(f)
		if err != nil {
			failed++
			var le *breakout.LoadError
			if errors.As(err, &le) {
				fmt.Printf("FAIL  %s: %s\n", f, le)
			} else {
				fmt.Printf("FAIL  %s: %v\n", f, err)
			}
			continue
		}
		fmt.Printf("ok    %s (%s, %dx%d)\n", f, lvl.Name, len(lvl.Grid[0]), len(lvl.Grid))
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d level files failed\n", failed, len(files))
		os.Exit(1)
	}
}

func runLevelsShow(_ *cobra.Command, args []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatalf("%v", err)
	}

	for _, l := range lvls {
		if l.ID != args[0] {
			continue
		}
		out := formats.Level{ID: l.ID, Name: l.Name, Grid: l.Grid}
		if flagShowYAML {
			data, err := formats.EncodeYAML(out)
			if err != nil {
				fatalf("%v", err)
			}
			os.Stdout.Write(data)
			return
		}
		os.Stdout.Write(formats.EncodeText(out))
		return
	}

	fatalf("%v: %s (run 'breakout levels list')", levels.ErrNotFound, args[0])
}
