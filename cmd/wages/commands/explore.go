// ABOUTME: Explore command opens the terminal dashboard
// ABOUTME: Interactive level, geography and occupation selection in the terminal
package commands

import (
	"github.com/spf13/cobra"

	"github.com/harper/wage-explorer/internal/tui"
)

// NewExploreCmd creates the explore command
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse wages in an interactive terminal dashboard",
		Long: `Browse wages in an interactive terminal dashboard.

Switch the geographic level with the arrow keys, move between panes with
tab, and type in a list to filter it. Results update as the selection
changes. Nothing is saved between sessions.

Examples:
  wages explore
  wages explore --data oews.csv`,
		RunE: runExplore,
	}

	return cmd
}

func runExplore(cmd *cobra.Command, args []string) error {
	_, table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), table)
}
