package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in the arcade and the start-screen button for each.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.Kind))
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Button")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "------")
	for _, g := range games {
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.Kind, g.Title, menuLabel(g.Kind))
	}
}

// menuLabel names the start-screen buttons of kind, e.g. "LB / Start".
func menuLabel(kind core.Kind) string {
	var names []string
	for _, b := range kind.MenuButtons() {
		names = append(names, b.String())
	}
	return strings.Join(names, " / ")
}
