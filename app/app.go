package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	"github.com/Black-And-White-Club/retro-arcade/app/modules/catalog"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/Black-And-White-Club/retro-arcade/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// App is the catalog and leaderboard API process.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    chi.Router
	Modules       *Modules

	logger *slog.Logger
	wg     sync.WaitGroup
}

// Modules holds the API modules.
type Modules struct {
	CatalogModule     *catalog.Module
	LeaderboardModule *leaderboard.Module
}

// NewApp wires the event bus, message router, HTTP router and modules. Nothing is
// started until Run.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger

	var forward message.Publisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := eventbus.NewNatsPublisher(cfg.NATS.URL, watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS forwarder: %w", err)
		}
		forward = natsPublisher
	}
	bus := eventbus.NewEventBus(logger, forward)

	router, err := eventbus.NewRouter(logger)
	if err != nil {
		bus.Close()
		return nil, err
	}

	httpRouter := NewHTTPRouter(cfg.HTTP, obs)

	games, err := catalogdomain.NewCatalog(catalogdomain.DefaultGames())
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	catalogModule, err := catalog.NewCatalogModule(ctx, obs, games, bus, router, httpRouter)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize catalog module: %w", err)
	}

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, obs, games, bus, router, httpRouter)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		EventBus:      bus,
		Router:        router,
		HTTPRouter:    httpRouter,
		Modules: &Modules{
			CatalogModule:     catalogModule,
			LeaderboardModule: leaderboardModule,
		},
		logger: logger,
	}, nil
}

// Start runs the message router and the modules. It returns once the router is
// accepting messages: gochannel drops events published before a subscriber exists.
func (a *App) Start(ctx context.Context) error {
	routerErr := make(chan error, 1)
	go func() {
		if err := a.Router.Run(ctx); err != nil {
			routerErr <- err
		}
	}()

	select {
	case <-a.Router.Running():
	case err := <-routerErr:
		return fmt.Errorf("message router failed to start: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}

	a.wg.Add(2)
	go a.Modules.CatalogModule.Run(ctx, &a.wg)
	go a.Modules.LeaderboardModule.Run(ctx, &a.wg)
	return nil
}

// Run starts everything and serves the API until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	return Serve(ctx, a.logger, ":"+a.Config.HTTP.Port, a.HTTPRouter)
}

// Handler returns the API handler.
func (a *App) Handler() http.Handler {
	return a.HTTPRouter
}

// Close stops the modules, the message router and the event bus. The context passed
// to Start must already be cancelled.
func (a *App) Close() error {
	a.wg.Wait()

	var errs []error
	if err := a.Modules.CatalogModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Modules.LeaderboardModule.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := a.Router.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close message router: %w", err))
	}
	if err := a.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
	}
	return errors.Join(errs...)
}
