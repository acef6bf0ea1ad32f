package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger
)

// rootCmd is the base command; it carries no behavior of its own beyond
// wiring the shared logger for its subcommands.
var rootCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partitions an operation graph into accelerator-placeable groups",
	Long: `partition loads an operation graph and a set of placement directives,
runs the structural-merge and repeated-block-discovery pipeline over it,
and prints the resulting groups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		return nil
	},
}

// Execute runs the root command, exiting with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode (human-readable) logging")
}

// GetLogger returns the logger PersistentPreRunE configured.
func GetLogger() *zap.Logger {
	return logger
}
