package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"apartment-manager/internal/config"
	"apartment-manager/internal/leasing"
	"apartment-manager/internal/schema"
	"apartment-manager/internal/web"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Create missing tables and serve the leasing pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := schema.Ensure(ctx, a.exec); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			a.logger.Info("schema ready",
				zap.String("driver", a.cfg.Database.Driver),
				zap.String("path", a.cfg.Database.Path),
			)

			srv, err := web.NewServer(a.cfg, leasing.NewStore(a.exec), a.logger)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "Port for the HTTP server (defaults to APARTMENTS_PORT or 5009)")
	return cmd
}
