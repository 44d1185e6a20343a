package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/hashicorp/go-hclog"

	"github.com/openxroad/adminapi/api"
	"github.com/openxroad/adminapi/config"
	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/repo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(&log.LoggerOptions{
		Name:  "adminapi",
		Level: log.LevelFromString(cfg.LogLevel),
	})

	schema, err := repo.GetSchema()
	if err != nil {
		return fmt.Errorf("building store schema: %w", err)
	}
	store, err := memstore.NewMemoryStore(schema, logger.Named("memstore"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	dir := globalconf.NewStore()
	refresher := globalconf.NewRefresher(dir, cfg.GlobalConfPath, cfg.RefreshInterval, logger.Named("globalconf"))
	if err := refresher.RefreshOnce(); err != nil {
		// The server starts without a directory; requests needing it fail
		// with 503 until a refresh succeeds.
		logger.Warn("initial global configuration load failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go refresher.Run(ctx)

	handler := api.NewHandler(store, dir, logger.Named("api"))
	router := api.NewRouter(handler, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}
