// ABOUTME: CLI command to list selectable occupations and geographies
// ABOUTME: Prints the sorted distinct values of a dataset column
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/query"
)

var (
	listContains string
	listLimit    int
)

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <occupations|states|areas>",
		Short: "List occupations, states or metropolitan areas",
		Long: `List the distinct values available for a lookup.

  occupations  occupation titles (OCC_TITLE)
  states       state codes (PRIM_STATE)
  areas        metropolitan area titles (AREA_TITLE)

Examples:
  wages list occupations
  wages list occupations --contains nurse
  wages list areas --limit 20
  wages list states --format json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"occupations", "states", "areas"},
		RunE:      runList,
	}

	cmd.Flags().StringVar(&listContains, "contains", "", "Only show values containing this text (case-insensitive)")
	cmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of values to show (0 for all)")

	return cmd
}

// listColumn maps a list argument to the geography kind whose options it shows
func listColumn(what string) (models.GeographyKind, bool, error) {
	switch strings.ToLower(what) {
	case "occupations", "jobs":
		return "", true, nil
	case "states":
		return models.State, false, nil
	case "areas", "metros":
		return models.Metropolitan, false, nil
	}
	return "", false, fmt.Errorf("unknown list %q (want occupations, states or areas)", what)
}

func runList(cmd *cobra.Command, args []string) error {
	kind, occupations, err := listColumn(args[0])
	if err != nil {
		return err
	}
	if listLimit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", listLimit)
	}

	asJSON, err := wantJSON()
	if err != nil {
		return err
	}

	_, table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}

	var values []string
	if occupations {
		values = query.Occupations(table)
	} else {
		values = query.GeographyOptions(table, kind)
	}
	values = query.MatchValues(values, listContains, listLimit)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), values)
	}

	if len(values) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No values found")
		}
		return nil
	}
	for _, v := range values {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}
