package devapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Server is the dev API process: seeded storage, token issuer and router.
type Server struct {
	cfg     *Config
	log     logging.Logger
	handler http.Handler
}

// New seeds the store from cfg and builds the HTTP handler.
func New(cfg *Config, log logging.Logger) (*Server, error) {
	store := NewStore(0)
	if _, err := store.AddUser(cfg.SeedName, cfg.SeedEmail, cfg.SeedPassword); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	if cfg.SeedCatalog {
		store.SeedCatalog()
	}

	tokens := NewTokenIssuer([]byte(cfg.SecretKey), cfg.TokenTTL)
	router := NewRouter(store, tokens, log, cfg.IDsAsStrings)

	return &Server{
		cfg:     cfg,
		log:     log,
		handler: otelhttp.NewHandler(router, "devapi"),
	}, nil
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.log.Info(ctx, "dev api listening", "addr", s.cfg.Addr, "seed_user", s.cfg.SeedEmail)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
