package leaderboardrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	leaderboardhandlers "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/message"
)

// LeaderboardRouter handles Watermill handler registration for leaderboard events.
type LeaderboardRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
	}
}

// Configure sets up the router with handlers.
func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.Info("Registering leaderboard module handlers",
		slog.String("score_submitted_topic", leaderboarddomain.ScoreSubmittedV1),
	)

	r.router.AddNoPublisherHandler(
		"leaderboard."+leaderboarddomain.ScoreSubmittedV1,
		leaderboarddomain.ScoreSubmittedV1,
		r.subscriber,
		handlers.HandleScoreSubmitted,
	)

	r.logger.Info("Leaderboard module handlers registered successfully")
	return nil
}
