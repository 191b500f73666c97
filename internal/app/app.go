package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"SectorPulse/internal/config"
	"SectorPulse/internal/heatmap"
	"SectorPulse/internal/infrastructure/marketaux"
	"SectorPulse/internal/infrastructure/refresh"
	"SectorPulse/internal/logging"
	"SectorPulse/internal/newscache"
	"SectorPulse/internal/server"
	"SectorPulse/internal/source"
	"SectorPulse/internal/usecase"
)

// Application wires configuration into the serving stack.
type Application struct {
	cfg    config.Config
	srv    *server.Server
	warmer *refresh.Warmer
	logger *slog.Logger
}

// New builds a runnable application instance. Missing credentials surface as
// domain.ErrConfiguration and are fatal here, not at request time.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	provider, err := marketaux.NewClient(marketaux.Config{
		APIKey:    cfg.MarketAux.APIKey,
		BaseURL:   cfg.MarketAux.BaseURL,
		Language:  cfg.MarketAux.Language,
		Exchanges: cfg.MarketAux.Exchanges,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("marketaux client: %w", err)
	}

	registry := source.NewRegistry()
	registry.Register(provider)

	active, err := registry.Resolve(cfg.Provider.Name)
	if err != nil {
		return nil, fmt.Errorf("resolve provider: %w", err)
	}

	cache := newscache.New(active, newscache.Config{
		Duration:   cfg.Cache.CacheDuration(),
		DailyLimit: cfg.Cache.DailyLimit,
	}, logging.Component(baseLogger, "cache"))

	builder := heatmap.NewBuilder(logging.Component(baseLogger, "heatmap"))

	uc := usecase.NewHeatmap(usecase.HeatmapDeps{
		Cache:   cache,
		Builder: builder,
		Logger:  logging.Component(baseLogger, "usecase"),
	})

	var warmer *refresh.Warmer
	if interval := cfg.Refresh.RefreshInterval(); interval > 0 {
		warmer = refresh.NewWarmer(cache, interval, cfg.Refresh.Limit, logging.Component(baseLogger, "warmer"))
	}

	return &Application{
		cfg:    cfg,
		srv:    server.New(uc, logging.Component(baseLogger, "server")),
		warmer: warmer,
		logger: baseLogger,
	}, nil
}

// Run starts the optional cache warmer and serves HTTP until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if a.warmer != nil {
		a.warmer.Start(ctx)
		defer a.warmer.Stop()
	}

	httpServer := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	a.logger.Info("server shutdown complete")
	return nil
}
