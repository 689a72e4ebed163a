package web

import (
	"context"
	"sync"
	"time"

	webservice "github.com/Black-And-White-Club/retro-arcade/app/modules/web/application"
	webhandlers "github.com/Black-And-White-Club/retro-arcade/app/modules/web/infrastructure/handlers"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the web frontend module.
type Module struct {
	WebService    *webservice.WebService
	cancelFunc    context.CancelFunc
	mu            sync.Mutex
	observability observability.Observability
}

// NewWebModule creates the web module and mounts its views on httpRouter.
func NewWebModule(
	ctx context.Context,
	obs observability.Observability,
	api webservice.ArcadeAPI,
	fetchTimeout time.Duration,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "web.NewWebModule initializing")

	// 1. Initialize Service
	service := webservice.NewWebService(api, logger, obs.Registry.Tracer, fetchTimeout)

	// 2. Initialize Handlers
	handlers := webhandlers.NewWebHandlers(service, logger)

	// 3. Register HTTP routes
	httpRouter.NotFound(handlers.HandleNotFound)
	httpRouter.Get("/", handlers.HandleGameList)
	httpRouter.Post("/retry", handlers.HandleRetry)
	httpRouter.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", handlers.HandleGameDetail)
		r.Post("/start", handlers.HandleStartPlay)
		r.Post("/increment", handlers.HandleIncrementScore)
		r.Post("/end", handlers.HandleEndPlay)
	})
	httpRouter.Get("/leaderboard", handlers.HandleLeaderboard)

	return &Module{
		WebService:    service,
		observability: obs,
	}, nil
}

// Run performs the startup catalog fetch and then waits for ctx to end.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting web module")

	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancelFunc = cancel
	m.mu.Unlock()
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	m.WebService.LoadCatalog(ctx)

	<-ctx.Done()
	logger.InfoContext(ctx, "Web module goroutine stopped")
}

// Close stops the module and waits for background API calls.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping web module")

	m.mu.Lock()
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	m.WebService.Wait()
	logger.Info("Web module stopped")
	return nil
}
