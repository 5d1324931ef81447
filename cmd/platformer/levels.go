package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagValidate    bool
	flagExport      int
	flagShowCustom  bool
	flagClearCustom bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate or export levels",
	Long: `Show the level catalog: the built-in levels with any overrides from
--levels-dir applied on top.

A level file in --levels-dir replaces the built-in level with the same
number. Use --export to get a starting point for an override.

Examples:
  platformer levels
  platformer levels --validate --levels-dir ./levels
  platformer levels --export 3 > levels/03.yaml
  platformer levels --show-custom > levels/13.yaml
  platformer levels --clear-custom`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files overriding the built-in ones")
	levelsCmd.Flags().BoolVar(&flagValidate, "validate", false, "Validate every level and fail on problems")
	levelsCmd.Flags().IntVar(&flagExport, "export", 0, "Print level n as YAML")
	levelsCmd.Flags().BoolVar(&flagShowCustom, "show-custom", false, "Print the editor's saved custom level as YAML")
	levelsCmd.Flags().BoolVar(&flagClearCustom, "clear-custom", false, "Delete the editor's saved custom level")
	levelsCmd.MarkFlagsMutuallyExclusive("export", "show-custom", "clear-custom")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagShowCustom || flagClearCustom {
		runCustomSlot()
		return
	}

	cat, err := levels.Embedded()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading built-in levels: %v\n", err)
		os.Exit(1)
	}

	if flagLevelsDir != "" {
		var dirErr error
		cat, dirErr = levels.WithDir(cat, flagLevelsDir)
		if dirErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", dirErr)
			if flagValidate {
				os.Exit(1)
			}
		}
	}

	if flagExport != 0 {
		exportLevel(cat, flagExport)
		return
	}

	var problems map[int]error
	if flagValidate {
		problems = cat.ValidateAll()
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-24s  %-8s  %s\n", "#", "Name", "Width", "Boss")
	fmt.Printf("  %-3s  %-24s  %-8s  %s\n", "-", "----", "-----", "----")

	for _, n := range cat.Numbers() {
		l, err := cat.Get(n)
		if err != nil {
			continue
		}
		boss := "-"
		if l.Boss != nil {
			boss = fmt.Sprintf("%s (%d hp)", l.Boss.Kind, l.Boss.Health)
		}
		fmt.Printf("  %-3d  %-24s  %-8.0f  %s\n", n, l.Name, l.Width, boss)
	}

	if !flagValidate {
		fmt.Println()
		fmt.Println("Run 'platformer play --level <n>' to start at a level.")
		return
	}

	fmt.Println()
	if len(problems) == 0 {
		fmt.Printf("All %d levels are valid.\n", cat.Count())
		return
	}

	nums := make([]int, 0, len(problems))
	for n := range problems {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		fmt.Printf("Level %d: %v\n", n, problems[n])
	}
	os.Exit(1)
}

func exportLevel(cat *levels.Catalog, n int) {
	l, err := cat.Get(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := levels.Encode(l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding level: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

// runCustomSlot reads or clears the editor's save slot in the scores
// database.
func runCustomSlot() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearCustom {
		if err := store.DeleteBlob(engine.CustomLevelKey); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("custom level cleared", "db", flagDBPath)
		fmt.Println("Custom level deleted.")
		return
	}

	data, ok, err := store.LoadBlob(engine.CustomLevelKey)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	case !ok:
		fmt.Fprintln(os.Stderr, "No custom level saved. Press ctrl+s in the editor to save one.")
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
