package webservice

import (
	"context"
	"strconv"
	"sync"

	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
)

// ------------------------
// Fake Arcade API
// ------------------------

type FakeArcadeAPI struct {
	mu    sync.Mutex
	trace []string

	ListGamesFunc      func(ctx context.Context) ([]arcadeclient.Game, error)
	RecordPlayFunc     func(ctx context.Context, id int) error
	GetLeaderboardFunc func(ctx context.Context, gameID int) ([]arcadeclient.LeaderboardEntry, error)
}

func NewFakeArcadeAPI() *FakeArcadeAPI {
	return &FakeArcadeAPI{trace: []string{}}
}

func (f *FakeArcadeAPI) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeArcadeAPI) ListGames(ctx context.Context) ([]arcadeclient.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeArcadeAPI) RecordPlay(ctx context.Context, id int) error {
	f.record("RecordPlay:" + strconv.Itoa(id))
	if f.RecordPlayFunc != nil {
		return f.RecordPlayFunc(ctx, id)
	}
	return nil
}

func (f *FakeArcadeAPI) GetLeaderboard(ctx context.Context, gameID int) ([]arcadeclient.LeaderboardEntry, error) {
	f.record("GetLeaderboard:" + strconv.Itoa(gameID))
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *FakeArcadeAPI) ChartURL(gameID int) string {
	return "http://api.test/api/leaderboard/" + strconv.Itoa(gameID) + "/chart.png"
}

func (f *FakeArcadeAPI) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ ArcadeAPI = (*FakeArcadeAPI)(nil)
