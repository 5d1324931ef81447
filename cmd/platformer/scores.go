package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const scoreDateLayout = "2006-01-02 15:04"

var (
	flagAllGames bool
	flagHistory  bool
	flagClear    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores and a summary of all runs.

Examples:
  platformer scores
  platformer scores --history
  platformer scores --all
  platformer scores --clear
  platformer scores --db ./scores.db`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAllGames, "all", false, "Summarize every game recorded in the database")
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "List every run in the order it was played")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded platformer scores")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "history", "clear")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := platformer.GameID
	switch {
	case flagAllGames:
		printAllStats(store)
	case flagHistory:
		printHistory(store, gameID)
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("scores cleared", "game", gameID, "db", flagDBPath)
		fmt.Println("All platformer scores deleted.")
	default:
		printTopScores(store, gameID)
	}
}

func printTopScores(store *storage.Store, gameID string) {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Platformer")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format(scoreDateLayout))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
}

// printHistory lists runs oldest first and flags each new personal best.
func printHistory(store *storage.Store, gameID string) {
	runs, err := store.AllScores(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-16s  %s\n", "Run", "Score", "Date", "")
	fmt.Printf("  %-5s  %-10s  %-16s  %s\n", "---", "-----", "----", "")
	best := 0
	for i, r := range runs {
		note := ""
		if r.Score > best {
			best = r.Score
			note = "new best"
		}
		fmt.Printf("  %-5d  %-10d  %-16s  %s\n", i+1, r.Score, r.CreatedAt.Format(scoreDateLayout), note)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %s\n", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.0f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format(scoreDateLayout))
	}
}
