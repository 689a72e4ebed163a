package cataloghandlers

import (
	"context"

	catalogservice "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/application"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	ListGamesFunc        func(ctx context.Context) ([]catalogdomain.Game, error)
	GetGameFunc          func(ctx context.Context, id catalogdomain.GameID) (catalogdomain.Game, error)
	ListGamesByGenreFunc func(ctx context.Context, genre string) ([]catalogdomain.Game, error)
	RecordPlayFunc       func(ctx context.Context, id catalogdomain.GameID) (catalogdomain.GamePlayedPayloadV1, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) ListGames(ctx context.Context) ([]catalogdomain.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx)
	}
	return catalogdomain.DefaultGames(), nil
}

func (f *FakeService) GetGame(ctx context.Context, id catalogdomain.GameID) (catalogdomain.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, id)
	}
	return catalogdomain.Game{}, catalogservice.ErrGameNotFound
}

func (f *FakeService) ListGamesByGenre(ctx context.Context, genre string) ([]catalogdomain.Game, error) {
	f.record("ListGamesByGenre")
	if f.ListGamesByGenreFunc != nil {
		return f.ListGamesByGenreFunc(ctx, genre)
	}
	return []catalogdomain.Game{}, nil
}

func (f *FakeService) RecordPlay(ctx context.Context, id catalogdomain.GameID) (catalogdomain.GamePlayedPayloadV1, error) {
	f.record("RecordPlay")
	if f.RecordPlayFunc != nil {
		return f.RecordPlayFunc(ctx, id)
	}
	return catalogdomain.GamePlayedPayloadV1{GameID: id}, nil
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ catalogservice.Service = (*FakeService)(nil)
