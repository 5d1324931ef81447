package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the level editor",
	Long: `Start in the level editor with the saved custom level loaded.

Click to place the selected tool, scroll with Left/Right.

Controls:
  1-9      - Select tool (platform, ground, enemy, coin, mushroom,
             fire flower, star, goal, erase)
  Ctrl+S   - Save the custom level
  Ctrl+L   - Load the custom level
  T        - Play the custom level
  E        - Back to the campaign

Examples:
  platformer edit
  platformer edit --db ./scores.db`,
	Run: runEdit,
}

func init() {
	addGameFlags(editCmd)
}

func runEdit(_ *cobra.Command, _ []string) {
	configureGame()

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: the custom level cannot be saved without a database")
	}

	runErr := tui.Run(game, store, runtimeConfig(), tui.WithEditor(), tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running editor: %v\n", runErr)
		os.Exit(1)
	}
}
