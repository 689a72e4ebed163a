package leaderboardhandlers

import (
	"context"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboardservice "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	GetLeaderboardFunc func(ctx context.Context, gameID catalogdomain.GameID) ([]leaderboarddomain.Entry, error)
	SubmitScoreFunc    func(ctx context.Context, submission leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error)
	RenderChartFunc    func(ctx context.Context, gameID catalogdomain.GameID) ([]byte, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) GetLeaderboard(ctx context.Context, gameID catalogdomain.GameID) ([]leaderboarddomain.Entry, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, gameID)
	}
	return leaderboarddomain.SampleRanking(), nil
}

func (f *FakeService) SubmitScore(ctx context.Context, submission leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error) {
	f.record("SubmitScore")
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, submission)
	}
	return leaderboarddomain.ScoreSubmittedPayloadV1{GameID: submission.GameID, Player: submission.Player, Score: submission.Score}, nil
}

func (f *FakeService) RenderChart(ctx context.Context, gameID catalogdomain.GameID) ([]byte, error) {
	f.record("RenderChart")
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, gameID)
	}
	return []byte("\x89PNG"), nil
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ leaderboardservice.Service = (*FakeService)(nil)
