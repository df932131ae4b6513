// ABOUTME: Import command copies a dataset into the SQLite snapshot
// ABOUTME: The snapshot can then be served with WAGES_DATA_FORMAT=sqlite
package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/storage/sqlite"
)

var importOutput string

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the dataset into a SQLite snapshot",
		Long: `Read the configured dataset (parquet, CSV or a SQL table) and write
it to a SQLite snapshot, replacing any previous snapshot.

The snapshot defaults to WAGES_SNAPSHOT_DB under the XDG data directory.

Examples:
  wages import --data all_data_M_2023.parquet
  wages import --data oews.csv --output /srv/wages.db
  WAGES_DATA=/srv/wages.db wages lookup "Software Developers"`,
		RunE: runImport,
	}

	cmd.Flags().StringVarP(&importOutput, "output", "o", "", "Snapshot database path (overrides WAGES_SNAPSHOT_DB)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}

	path := cfg.SnapshotPath
	if importOutput != "" {
		path = importOutput
	}

	db, err := sqlite.Open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	store := sqlite.NewWageStore(db)
	if err := store.ReplaceRecords(cmd.Context(), table.Source(), table.Records()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	written, err := store.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting snapshot rows: %w", err)
	}
	if written != table.Len() {
		return fmt.Errorf("snapshot has %d rows, want %d", written, table.Len())
	}

	meta, err := store.Meta(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading snapshot metadata: %w", err)
	}

	logger.Info("snapshot written",
		zap.String("path", db.Path()),
		zap.String("source", meta.Source),
		zap.Int("rows", meta.RowCount))

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s rows from %s into %s\n",
			humanize.Comma(int64(meta.RowCount)), meta.Source, db.Path())
	}
	return nil
}
