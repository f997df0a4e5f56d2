// blockfall is a terminal falling-block puzzle with three rule variants.
//
// Usage:
//
//	blockfall                   - Open the variant picker (same as menu)
//	blockfall list              - List available variants
//	blockfall play <variant>    - Play a variant
//	blockfall menu              - Start menu to pick variants interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall scores <variant>  - Show high scores for a variant
//	blockfall config            - Print the default config YAML
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blockfall/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the variants with the registry
	_ "github.com/vovakirdan/blockfall/internal/games/blocks"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - Falling-block puzzle in your terminal",
	Long: `Blockfall is a terminal falling-block puzzle game with three rule
variants sharing one engine.

Variants:
  classic  - No wall kicks, no hold, single preview, immediate locking
  polished - Kick tables, hold slot, five previews, lock delay, drop bonuses
  topless  - Polished rules, but the stack compresses instead of topping out

Available commands:
  list     - Show all available variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default config YAML

Examples:
  blockfall list
  blockfall play polished
  blockfall menu
  blockfall serve --ssh :2222
  blockfall scores topless`,
	// Bare invocation opens the variant picker
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd, playCmd, menuCmd, serveCmd, scoresCmd, configCmd)
}
