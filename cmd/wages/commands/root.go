// ABOUTME: Root command, global flags and the shared zap logger
// ABOUTME: Every subcommand is registered here
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	dataPath     string
	dataFormat   string

	logger = zap.NewNop()
)

const banner = `
██╗    ██╗ █████╗  ██████╗ ███████╗███████╗
██║    ██║██╔══██╗██╔════╝ ██╔════╝██╔════╝
██║ █╗ ██║███████║██║  ███╗█████╗  ███████╗
██║███╗██║██╔══██║██║   ██║██╔══╝  ╚════██║
╚███╔███╔╝██║  ██║╚██████╔╝███████╗███████║
 ╚══╝╚══╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wages",
		Short: "Explore U.S. occupational wage statistics",
		Long: banner + `

Look up hourly and annual wage percentiles and employment metrics from the
Occupational Employment and Wage Statistics (OEWS) dataset, nationally, by
state or by metropolitan area.

The dataset is read from WAGES_DATA (parquet, CSV, SQLite, Postgres or
ClickHouse). Settings can also come from a .env file or a YAML file named
by WAGES_CONFIG.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			l, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table or json")
	cmd.PersistentFlags().StringVar(&dataPath, "data", "", "Dataset location (overrides WAGES_DATA)")
	cmd.PersistentFlags().StringVar(&dataFormat, "data-format", "", "Dataset format (overrides WAGES_DATA_FORMAT)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewLookupCmd(),
		NewListCmd(),
		NewServeCmd(),
		NewExploreCmd(),
		NewMCPCmd(),
		NewImportCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	switch {
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case quiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return config.Build()
}
