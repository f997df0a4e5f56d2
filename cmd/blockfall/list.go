package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows a list of all registered game variants.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants registered.")
		return
	}

	wide := len("ID")
	for _, g := range variants {
		wide = max(wide, len(g.ID))
	}

	fmt.Println("Available variants:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", wide, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", wide, "--", "-----")
	for _, g := range variants {
		fmt.Printf("  %-*s  %s\n", wide, g.ID, g.Title)
	}
	fmt.Println()
	fmt.Println("Run 'blockfall play <id>' to play a variant.")
}
