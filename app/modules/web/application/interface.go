package webservice

import (
	"context"

	webdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/web/domain"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
)

// ArcadeAPI is the part of the API client the web frontend calls.
type ArcadeAPI interface {
	ListGames(ctx context.Context) ([]arcadeclient.Game, error)
	RecordPlay(ctx context.Context, id int) error
	GetLeaderboard(ctx context.Context, gameID int) ([]arcadeclient.LeaderboardEntry, error)
	ChartURL(gameID int) string
}

// Service defines the web frontend operations used by the handlers.
type Service interface {
	LoadCatalog(ctx context.Context)
	Catalog() CatalogSnapshot
	RetryCatalog() bool
	FindGame(id int) (arcadeclient.Game, bool)
	RecordPlayAsync(ctx context.Context, id int)

	Session(sessionID string, gameID int) webdomain.PlaySession
	StartPlay(sessionID string, gameID int) webdomain.PlaySession
	IncrementScore(sessionID string, gameID int) (webdomain.PlaySession, error)
	EndPlay(sessionID string, gameID int) (webdomain.PlaySession, error)

	Leaderboard(ctx context.Context, gameID int) ([]arcadeclient.LeaderboardEntry, error)
	ChartURL(gameID int) string

	Wait()
}

var _ ArcadeAPI = (*arcadeclient.Client)(nil)
