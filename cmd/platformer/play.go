package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLevelsDir  string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start playing the campaign.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump (again against a wall to wall-jump)
  F/X              - Throw a fireball (fire power-up)
  Enter            - Next level (after clearing one)
  P                - Pause
  R                - Restart (after winning or losing)
  E                - Toggle the level editor
  F12              - Save a screenshot
  Esc              - Leave
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, enemies start slow and speed up each level
  normal - 3 lives, enemies start a bit faster
  hard   - 2 lives, enemies start near full speed
  fixed  - No progression, enemy speed stays at the config's level

Examples:
  platformer play
  platformer play --level 6 --difficulty hard
  platformer play --config ./my-platformer.yaml
  platformer play --levels-dir ./levels --watch`,
	Run: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (0 = first)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --levels-dir when its files change")
}

// addGameFlags registers the flags that configure the game itself.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files overriding the built-in ones")
}

// configureGame applies the game flags before the game is created.
func configureGame() {
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetLevelsDir(flagLevelsDir)
	platformer.SetLogger(logger)
}

func runPlay(_ *cobra.Command, _ []string) {
	configureGame()
	platformer.SetStartLevel(flagLevel)

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := []tui.GameOption{tui.WithLogger(logger)}
	if flagWatch {
		if w := watchContent(game); w != nil {
			defer w.Close()
			opts = append(opts, tui.WithReload(w.Events))
		}
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig(), opts...)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// watchContent starts watching the game's content directories. It returns
// nil when there is nothing to watch.
func watchContent(game registry.Game) *levels.Watcher {
	r, ok := game.(registry.Reloadable)
	if !ok || len(r.ContentDirs()) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: --watch needs --levels-dir; not watching")
		return nil
	}

	w, err := levels.Watch(r.ContentDirs()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch levels: %v\n", err)
		return nil
	}

	go func() {
		for err := range w.Errors {
			logger.Warn("level watcher error", "err", err)
		}
	}()

	logger.Info("watching levels", "dirs", r.ContentDirs())
	return w
}
