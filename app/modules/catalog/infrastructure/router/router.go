package catalogrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	cataloghandlers "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/message"
)

// CatalogRouter handles Watermill handler registration for catalog events.
type CatalogRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
}

// NewCatalogRouter creates a new CatalogRouter.
func NewCatalogRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
) *CatalogRouter {
	return &CatalogRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
	}
}

// Configure sets up the router with handlers.
func (r *CatalogRouter) Configure(_ context.Context, handlers cataloghandlers.Handlers) error {
	r.logger.Info("Registering catalog module handlers",
		slog.String("game_played_topic", catalogdomain.GamePlayedV1),
	)

	r.router.AddNoPublisherHandler(
		"catalog."+catalogdomain.GamePlayedV1,
		catalogdomain.GamePlayedV1,
		r.subscriber,
		handlers.HandleGamePlayed,
	)

	r.logger.Info("Catalog module handlers registered successfully")
	return nil
}
