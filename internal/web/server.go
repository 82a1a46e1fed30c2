// Package web serves the leasing pages.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"apartment-manager/internal/config"
	"apartment-manager/internal/leasing"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg     *config.Config
	router  *mux.Router
	handler http.Handler
	logger  *zap.Logger
}

func NewServer(cfg *config.Config, store *leasing.Store, logger *zap.Logger) (*Server, error) {
	views, err := LoadViews(logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.setupRoutes(NewHandlers(store, views, logger, cfg.Debug))
	s.handler = Chain(s.router,
		AssignRequestID,
		LogRequests(logger),
		RecoverPanics(logger),
	)
	return s, nil
}

func (s *Server) setupRoutes(h *Handlers) {
	s.router.HandleFunc("/", h.Index).Methods(http.MethodGet)

	s.router.HandleFunc("/add_tenant", h.AddTenantForm).Methods(http.MethodGet)
	s.router.HandleFunc("/add_tenant", h.AddTenant).Methods(http.MethodPost)
	s.router.HandleFunc("/show_tenants", h.ShowTenants).Methods(http.MethodGet)
	s.router.HandleFunc("/remove_tenant/{tenant_id:[0-9]+}", h.RemoveTenant).Methods(http.MethodGet)

	s.router.HandleFunc("/add_apartment", h.AddApartmentForm).Methods(http.MethodGet)
	s.router.HandleFunc("/add_apartment", h.AddApartment).Methods(http.MethodPost)
	s.router.HandleFunc("/show_apartments", h.ShowApartments).Methods(http.MethodGet)

	s.router.HandleFunc("/add_lease_apartment", h.AddLeaseForm).Methods(http.MethodGet)
	s.router.HandleFunc("/add_lease_apartment", h.AddLease).Methods(http.MethodPost)
	s.router.HandleFunc("/show_leased_apartments", h.ShowLeasedApartments).Methods(http.MethodGet)

	s.router.HandleFunc("/export.xlsx", h.ExportWorkbook).Methods(http.MethodGet)
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
