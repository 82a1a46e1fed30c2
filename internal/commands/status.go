package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"apartment-manager/internal/schema"
)

func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which leasing tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			// Opening a missing sqlite file would create it.
			exists, err := a.provider.Exists()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var statuses []schema.TableStatus
			if exists {
				statuses, err = schema.Status(cmd.Context(), a.exec)
				if err != nil {
					return fmt.Errorf("failed to get table status: %v", err)
				}
			} else {
				fmt.Fprintf(out, "Database %s does not exist\n", a.cfg.Database.Path)
				for _, table := range schema.Tables() {
					statuses = append(statuses, schema.TableStatus{Name: table.Name})
				}
			}

			fmt.Fprintf(out, "%-16s  %-8s\n", "Table", "Status")
			for _, s := range statuses {
				status := "Missing"
				if s.Exists {
					status = "Present"
				}
				fmt.Fprintf(out, "%-16s  %-8s\n", s.Name, status)
			}
			return nil
		},
	}
}
