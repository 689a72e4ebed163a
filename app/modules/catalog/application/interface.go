package catalogservice

import (
	"context"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
)

// Service defines the contract for catalog operations.
type Service interface {
	// ListGames returns every game in seed order.
	ListGames(ctx context.Context) ([]catalogdomain.Game, error)

	// GetGame returns ErrGameNotFound for unknown ids.
	GetGame(ctx context.Context, id catalogdomain.GameID) (catalogdomain.Game, error)

	// ListGamesByGenre matches genre case-insensitively. An empty result is not an error.
	ListGamesByGenre(ctx context.Context, genre string) ([]catalogdomain.Game, error)

	// RecordPlay publishes a GamePlayedV1 event for a known game.
	RecordPlay(ctx context.Context, id catalogdomain.GameID) (catalogdomain.GamePlayedPayloadV1, error)
}
