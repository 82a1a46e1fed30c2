package commands

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "apartment-manager",
		Short:         "Apartment leasing records: apartments, tenants and leases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "", "Database driver: sqlite or postgres (defaults to APARTMENTS_DB_DRIVER or sqlite)")
	flags.String("db-path", "", "Path to the SQLite database file (defaults to APARTMENTS_DB_PATH or database/apartment_management.db next to the binary)")
	flags.Bool("debug", false, "Enable verbose errors, SQL tracing and console logging")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: json or console")

	rootCmd.AddCommand(
		ServeCmd(),
		InitCmd(),
		StatusCmd(),
		ExportCmd(),
	)
	return rootCmd
}
