// ABOUTME: CLI command for a one-shot wage lookup
// ABOUTME: Prints percentile wages and employment metrics for one selection
package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/query"
)

var (
	lookupOccupation string
	lookupLevel      string
	lookupGeo        string
)

// NewLookupCmd creates the lookup command
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [occupation]",
		Short: "Look up wages for an occupation",
		Long: `Look up wage percentiles and employment metrics for one occupation
in the United States, a state or a metropolitan area.

The occupation title and geography must match the dataset exactly;
use "wages list" to see the available values.

Examples:
  wages lookup "Software Developers"
  wages lookup "Software Developers" --level state --geo CA
  wages lookup "Registered Nurses" --level metro --geo "Boston-Cambridge-Nashua, MA-NH"
  wages lookup "Registered Nurses" --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLookup,
	}

	cmd.Flags().StringVarP(&lookupOccupation, "occupation", "o", "", "Occupation title (OCC_TITLE)")
	cmd.Flags().StringVarP(&lookupLevel, "level", "l", "national", "Geography level: national, state or metropolitan")
	cmd.Flags().StringVarP(&lookupGeo, "geo", "g", "", "State code or metropolitan area title")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	occupation := lookupOccupation
	if len(args) == 1 {
		occupation = args[0]
	}
	if occupation == "" {
		return fmt.Errorf("an occupation is required (argument or --occupation)")
	}

	kind, err := models.ParseGeographyKind(lookupLevel)
	if err != nil {
		return err
	}
	if kind != models.National && lookupGeo == "" {
		return fmt.Errorf("--geo is required for %s lookups", kind)
	}

	asJSON, err := wantJSON()
	if err != nil {
		return err
	}

	_, table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}

	result, err := query.Query(table, occupation, kind, lookupGeo)
	if err != nil {
		return err
	}
	if result.Duplicated() {
		logger.Debug("several rows matched selection; using the first in storage order",
			zap.String("occupation", occupation),
			zap.String("geo_level", kind.String()),
			zap.String("geography", result.Selection.Geography),
			zap.Int("matches", result.Summary.Matches))
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	renderResult(cmd.OutOrStdout(), result)
	return nil
}

// renderResult prints a result as two aligned tables
func renderResult(out io.Writer, result models.QueryResult) {
	fmt.Fprintf(out, "%s\n\n", result.Selection.Title())

	if !result.Found {
		fmt.Fprintln(out, models.NoDataMessage)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERCENTILE\tHOURLY\tANNUAL")
	for _, row := range result.Summary.Percentiles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Percentile, row.Hourly, row.Annual)
	}
	w.Flush()

	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range result.Summary.Metrics {
		fmt.Fprintf(w, "%s\t%s\n", m.Metric, m.Value)
	}
	w.Flush()

	if result.Duplicated() {
		fmt.Fprintf(out, "\nNote: %d rows matched this selection; showing the first in dataset order.\n", result.Summary.Matches)
	}
}
