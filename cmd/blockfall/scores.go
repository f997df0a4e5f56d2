package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagPlayer string

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top 10 high scores for the specified variant.

Examples:
  blockfall scores classic
  blockfall scores topless --player alice
  blockfall scores stats
  blockfall scores clear classic`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats [variant]",
	Short: "Show play statistics",
	Long: `Display play counts and score statistics, for one variant or all.

Examples:
  blockfall scores stats
  blockfall scores stats polished`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScoresStats,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear <variant>",
	Short: "Delete all scores for a variant",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresClear,
}

func init() {
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show scores for this player")
	scoresCmd.AddCommand(scoresStatsCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

// requireVariant exits if the given variant is not registered.
func requireVariant(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available variants.")
		os.Exit(1)
	}
}

// openStore opens the scores database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// variantTitle resolves the display title for a registered variant.
func variantTitle(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireVariant(gameID)

	store := openStore()
	defer store.Close()

	var scores []storage.ScoreEntry
	var err error
	if flagPlayer != "" {
		scores, err = store.PlayerScores(gameID, flagPlayer, 10)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", variantTitle(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n",
			i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func runScoresStats(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 1 {
		gameID := args[0]
		requireVariant(gameID)

		stats, err := store.GetGameStats(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Statistics - %s\n", gameID)
		fmt.Println()
		if stats.GamesCount == 0 {
			fmt.Println("No games recorded yet.")
			return
		}
		fmt.Printf("  Games played:  %d\n", stats.GamesCount)
		fmt.Printf("  High score:    %d\n", stats.HighScore)
		fmt.Printf("  Average score: %.1f\n", stats.AvgScore)
		fmt.Printf("  Total score:   %d\n", stats.TotalScore)
		fmt.Printf("  Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		return
	}

	allStats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(allStats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Println("Statistics:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-10s  %-10s  %s\n", "Variant", "Plays", "High", "Average", "Last played")
	fmt.Printf("  %-10s  %-6s  %-10s  %-10s  %s\n", "-------", "-----", "----", "-------", "-----------")

	// Walk the registry order so the output is stable
	for _, g := range registry.List() {
		stats, ok := allStats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-10d  %-10.1f  %s\n",
			g.ID, stats.GamesCount, stats.HighScore, stats.AvgScore,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func runScoresClear(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireVariant(gameID)

	store := openStore()
	defer store.Close()

	if err := store.ClearScores(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cleared all scores for %s.\n", gameID)
}
