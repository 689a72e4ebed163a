package leaderboardservice

import (
	"context"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
)

// Service defines the contract for leaderboard operations.
type Service interface {
	// GetLeaderboard returns the ranking for a known game.
	GetLeaderboard(ctx context.Context, gameID catalogdomain.GameID) ([]leaderboarddomain.Entry, error)

	// SubmitScore acknowledges any submission and publishes ScoreSubmittedV1.
	// Later reads are unaffected.
	SubmitScore(ctx context.Context, submission leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error)

	// RenderChart returns a PNG bar chart of the ranking.
	RenderChart(ctx context.Context, gameID catalogdomain.GameID) ([]byte, error)
}

// GameLookup resolves catalog ids. *catalogdomain.Catalog satisfies it.
type GameLookup interface {
	Find(id catalogdomain.GameID) (catalogdomain.Game, bool)
}
