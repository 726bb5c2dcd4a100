package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/jig/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available color themes",
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	names := styles.PresetNames()
	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	fmt.Println("Available themes:")
	for _, name := range names {
		fmt.Printf("  %-*s  %s\n", maxLen, name, styles.Presets[name].Description)
	}
	fmt.Println()
	fmt.Println("Select one with theme.preset in the config file, or press t in the client.")
	return nil
}
