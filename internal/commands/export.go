package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apartment-manager/internal/leasing"
)

func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tenants, apartments and leases to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := leasing.Export(cmd.Context(), leasing.NewStore(a.exec))
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "apartments.xlsx", "Output file path")
	return cmd
}
