package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogadapter "watchcatalog.app/internal/adapters/catalog"
	"watchcatalog.app/internal/adapters/store"
	"watchcatalog.app/internal/cache"
	"watchcatalog.app/internal/config"
	"watchcatalog.app/internal/core/catalog"
	"watchcatalog.app/metrics"
	"watchcatalog.app/pkg/logger"
)

// Application wires configuration, the cache store, the memoizer and the
// catalog services together, and serves the metrics endpoint.
type Application struct {
	config *config.Config
	log    *logger.Logger

	// Cache infrastructure
	cacheStore interface {
		Close() error
	}
	memoizer *cache.Memoizer

	// Domain services
	provider *catalogadapter.StaticProvider
	watches  *catalog.WatchService
	brands   *catalog.BrandService
	users    *catalog.UserService

	httpServer *http.Server
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.NewWithLevel(logger.ParseLevel(cfg.Log.Level)).
		WithField("instance_id", uuid.New().String())

	app := &Application{
		config: cfg,
		log:    log,
	}

	if err := app.initializeCache(); err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("initialize services: %w", err)
	}

	app.initializeHTTPServer()

	return app, nil
}

func (a *Application) Config() *config.Config {
	return a.config
}

// WatchService returns the wired watch service
func (a *Application) WatchService() *catalog.WatchService {
	return a.watches
}

// BrandService returns the wired brand service
func (a *Application) BrandService() *catalog.BrandService {
	return a.brands
}

// UserService returns the wired user service
func (a *Application) UserService() *catalog.UserService {
	return a.users
}

func (a *Application) initializeCache() error {
	a.log.Info("Initializing cache store", "type", a.config.Cache.Type.String())

	provider, err := store.NewFactory().CreateCacheProvider(&a.config.Cache)
	if err != nil {
		return err
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		a.cacheStore = closer
	}

	cacheMetrics := metrics.NewCacheMetrics(a.config.Cache.Type.String())
	memoizer, err := cache.NewMemoizer(provider, a.log,
		cache.WithMetrics(cacheMetrics),
		cache.WithDefaultExpiry(time.Duration(a.config.Cache.DefaultTTLMinutes)*time.Minute),
	)
	if err != nil {
		return err
	}

	a.memoizer = memoizer
	a.log.Info("Cache store initialized successfully")
	return nil
}

func (a *Application) initializeServices() error {
	a.log.Info("Initializing catalog services")

	provider := catalogadapter.NewStaticProvider()

	watches, err := catalog.NewWatchService(provider, a.memoizer)
	if err != nil {
		return err
	}
	brands, err := catalog.NewBrandService(provider, a.memoizer)
	if err != nil {
		return err
	}
	users, err := catalog.NewUserService(provider, a.memoizer)
	if err != nil {
		return err
	}

	a.provider = provider
	a.watches = watches
	a.brands = brands
	a.users = users
	a.log.Info("Catalog services initialized successfully")
	return nil
}

func (a *Application) initializeHTTPServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Start warms the featured-watches entry and serves metrics until the
// context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	a.warmUp(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Serving metrics", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *Application) warmUp(ctx context.Context) {
	watches, err := a.watches.GetFeaturedWatches(ctx, catalog.FeaturedParams{Limit: 4})
	if err != nil {
		a.log.Error("Featured watches warm-up failed", "error", err)
		return
	}
	a.log.Info("Featured watches warmed", "count", len(watches), "backing_invocations", a.provider.Invocations())
}

// Shutdown stops the HTTP server and closes the cache store connection
func (a *Application) Shutdown(ctx context.Context) error {
	a.log.Info("Shutting down application")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("HTTP server shutdown failed", "error", err)
	}

	if a.cacheStore != nil {
		if err := a.cacheStore.Close(); err != nil {
			return err
		}
	}
	return nil
}
