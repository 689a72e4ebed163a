package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogservice "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/application"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	cataloghandlers "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/infrastructure/handlers"
	catalogrouter "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/infrastructure/router"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Module represents the catalog module.
type Module struct {
	CatalogService catalogservice.Service
	CatalogRouter  *catalogrouter.CatalogRouter
	Catalog        *catalogdomain.Catalog
	cancelFunc     context.CancelFunc
	observability  observability.Observability
}

// NewCatalogModule creates and initializes a new catalog module. HTTP routes are
// mounted under /api/games on httpRouter when it is non-nil.
func NewCatalogModule(
	ctx context.Context,
	obs observability.Observability,
	catalog *catalogdomain.Catalog,
	eventBus eventbus.EventBus,
	router *message.Router,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "catalog.NewCatalogModule initializing")

	// 1. Initialize Service
	service := catalogservice.NewCatalogService(catalog, eventBus, logger, obs.Registry.CatalogMetrics, tracer)

	// 2. Initialize Handlers
	handlers := cataloghandlers.NewCatalogHandlers(service, logger, tracer, obs.Registry.EventMetrics)

	// 3. Initialize Router
	catalogRouter := catalogrouter.NewCatalogRouter(logger, router, eventBus)
	if err := catalogRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure catalog router: %w", err)
	}

	// 4. Register HTTP routes
	if httpRouter != nil {
		httpRouter.Route("/api/games", func(r chi.Router) {
			r.Get("/", handlers.HandleListGames)
			r.Get("/genre/{genre}", handlers.HandleListGamesByGenre)
			r.Get("/{id}", handlers.HandleGetGame)
			r.Post("/{id}/play", handlers.HandleRecordPlay)
		})
	}

	return &Module{
		CatalogService: service,
		CatalogRouter:  catalogRouter,
		Catalog:        catalog,
		observability:  obs,
	}, nil
}

// Run starts the catalog module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting catalog module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Catalog module goroutine stopped")
}

// Close shuts down the catalog module. The shared message router is closed by the
// app, not here.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping catalog module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Catalog module stopped")
	return nil
}
