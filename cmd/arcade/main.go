// arcade drives a 128x19 LED matrix as a small game console.
//
// Usage:
//
//	arcade                   - Run the console on the LED panel
//	arcade --terminal        - Run it in the terminal instead
//	arcade --both            - Panel and terminal at once
//	arcade devices           - List detected input devices
//	arcade scores [game]     - Show high scores
//	arcade list              - List available games
//
// Global flags:
//
//	--config <path> - Configuration file (default: ~/.arcade/configs/arcade.yaml)
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//	--log-level     - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/matrix-arcade/internal/games/dino"
	_ "github.com/vovakirdan/matrix-arcade/internal/games/draw"
	_ "github.com/vovakirdan/matrix-arcade/internal/games/pong"
	_ "github.com/vovakirdan/matrix-arcade/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Matrix Arcade - games on a 128x19 LED panel",
	Long: `Matrix Arcade turns a 128x19 LED matrix and a few gamepads into a
small game console: Dino, Pong, Snake and a drawing mode.

On the start screen press A for Dino, B for Pong, Y for Snake and LB (or
Start) for Draw. X goes back to the start screen; on the start screen it
quits.

Available commands:
  devices  - List detected keyboards and gamepads
  scores   - View high scores
  list     - Show all available games

Examples:
  arcade
  arcade --terminal
  arcade --both --no-sound
  arcade --spectate :23234
  arcade scores dino`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runArcade,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while the terminal shows the display")

	addRunFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
}
