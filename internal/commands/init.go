package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"apartment-manager/internal/schema"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the Apartments, Tenants and Leases tables if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := schema.Ensure(cmd.Context(), a.exec); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema initialized successfully (%s)\n", a.cfg.Database.Driver)
			return nil
		},
	}
}
