package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config YAML",
	Long: `Print the default game configuration to stdout.

Save it to customize board size, timing, scoring and speed:

  blockfall config > ~/.blockfall/configs/blocks.yaml

or pass an edited copy directly:

  blockfall play polished --config ./my-blocks.yaml

Keys left out of a config file keep their default values.`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	os.Stdout.Write(config.DefaultYAML())
}
