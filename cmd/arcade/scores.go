package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/platform/tui"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
	"github.com/vovakirdan/matrix-arcade/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a game, or a summary of every game.

Without a game and on a terminal, an interactive scoreboard opens.

Examples:
  arcade scores
  arcade scores dino
  arcade scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the high score and history of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var kind core.Kind
	if len(args) == 1 {
		kind = core.Kind(args[0])
		if !registry.Exists(kind) {
			return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", args[0])
		}
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if kind == "" {
			return fmt.Errorf("--clear needs a game")
		}
		if err := store.ClearScores(kind.String()); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", kind)
		return nil
	case kind != "":
		return printTopScores(store, kind)
	case term.IsTerminal(int(os.Stdout.Fd())):
		width, height := 80, 24 // Defaults
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, "", width, height)
	default:
		return printSummary(store)
	}
}

func printTopScores(store *storage.Store, kind core.Kind) error {
	scores, err := store.TopScores(kind.String(), 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	highScore, err := store.HighScore(kind.String())
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title(kind))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		if highScore > 0 {
			fmt.Printf("Best: %d\n", highScore)
		}
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", highScore)
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.AllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving statistics: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	games := make([]string, 0, len(stats))
	for g := range stats {
		games = append(games, g)
	}
	sort.Strings(games)

	fmt.Printf("  %-8s  %-6s  %-6s  %-8s  %s\n", "Game", "Best", "Games", "Average", "Last played")
	fmt.Printf("  %-8s  %-6s  %-6s  %-8s  %s\n", "----", "----", "-----", "-------", "-----------")
	for _, g := range games {
		s := stats[g]
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-8s  %-6d  %-6d  %-8.1f  %s\n", g, s.HighScore, s.GamesCount, s.AvgScore, last)
	}
	return nil
}

func title(kind core.Kind) string {
	for _, g := range registry.List() {
		if g.Kind == kind {
			return g.Title
		}
	}
	return kind.String()
}
