package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	leaderboardservice "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule creates and initializes a new leaderboard module. HTTP routes are
// mounted under /api/leaderboard on httpRouter when it is non-nil.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	games leaderboardservice.GameLookup,
	eventBus eventbus.EventBus,
	router *message.Router,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	// 1. Initialize Service
	service := leaderboardservice.NewLeaderboardService(games, eventBus, logger, obs.Registry.LeaderboardMetrics, tracer)

	// 2. Initialize Handlers
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer, obs.Registry.EventMetrics)

	// 3. Initialize Router
	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	// 4. Register HTTP routes
	if httpRouter != nil {
		httpRouter.Route("/api/leaderboard", func(r chi.Router) {
			r.Get("/{gameId}", handlers.HandleGetLeaderboard)
			r.Post("/{gameId}", handlers.HandleSubmitScore)
			r.Get("/{gameId}/chart.png", handlers.HandleChart)
		})
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		observability:      obs,
	}, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close shuts down the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
