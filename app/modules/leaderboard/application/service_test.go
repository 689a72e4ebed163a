package leaderboardservice

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var submittedAt = time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(pub *FakePublisher) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewLeaderboardService(
		catalogdomain.MustDefaultCatalog(),
		pub,
		logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
	)
	s.now = func() time.Time { return submittedAt }
	return s
}

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	tests := []struct {
		name    string
		gameID  catalogdomain.GameID
		wantErr error
	}{
		{name: "first game", gameID: 1},
		{name: "last game", gameID: 5},
		{name: "unknown game", gameID: 42, wantErr: ErrGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(NewFakePublisher())

			entries, err := s.GetLeaderboard(context.Background(), tt.gameID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(leaderboarddomain.SampleRanking(), entries); diff != "" {
				t.Errorf("ranking mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboardService_SubmitScore(t *testing.T) {
	tests := []struct {
		name         string
		submission   leaderboarddomain.Submission
		publishErr   error
		wantGameName string
		wantErr      bool
	}{
		{
			name:         "known game",
			submission:   leaderboarddomain.Submission{GameID: "1", Player: "ZED", Score: 123456},
			wantGameName: "Super Mario Bros",
		},
		{
			name:         "unknown game",
			submission:   leaderboarddomain.Submission{GameID: "77", Player: "ZED", Score: 1},
			wantGameName: leaderboarddomain.UnknownGame,
		},
		{
			name:         "non numeric game id",
			submission:   leaderboarddomain.Submission{GameID: "abc", Player: "ZED", Score: 1},
			wantGameName: leaderboarddomain.UnknownGame,
		},
		{
			name:         "negative fractional score",
			submission:   leaderboarddomain.Submission{GameID: "2", Player: "ZED", Score: -5.5},
			wantGameName: "Pac-Man",
		},
		{
			name:         "empty submission",
			submission:   leaderboarddomain.Submission{GameID: "2"},
			wantGameName: "Pac-Man",
		},
		{
			name:       "publish failure",
			submission: leaderboarddomain.Submission{GameID: "2", Player: "ZED", Score: 5},
			publishErr: errors.New("bus closed"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := NewFakePublisher()
			if tt.publishErr != nil {
				pub.PublishFunc = func(string, ...*message.Message) error { return tt.publishErr }
			}
			s := newTestService(pub)

			payload, err := s.SubmitScore(context.Background(), tt.submission)
			assert.Equal(t, []string{"Publish:" + leaderboarddomain.ScoreSubmittedV1}, pub.Trace())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := leaderboarddomain.ScoreSubmittedPayloadV1{
				GameID:      tt.submission.GameID,
				GameName:    tt.wantGameName,
				Player:      tt.submission.Player,
				Score:       tt.submission.Score,
				SubmittedAt: submittedAt,
			}
			assert.Equal(t, want, payload)

			var decoded leaderboarddomain.ScoreSubmittedPayloadV1
			require.NoError(t, eventbus.Decode(pub.messages[0], &decoded))
			assert.Equal(t, want, decoded)
		})
	}
}

func TestLeaderboardService_SubmissionsNeverChangeReads(t *testing.T) {
	faker := gofakeit.New(99)
	s := newTestService(NewFakePublisher())
	ctx := context.Background()

	before, err := s.GetLeaderboard(ctx, 3)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		_, err := s.SubmitScore(ctx, leaderboarddomain.Submission{
			GameID: "3",
			Player: faker.LetterN(3),
			Score:  faker.Float64Range(-1000, 10_000_000),
		})
		require.NoError(t, err)
	}

	after, err := s.GetLeaderboard(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLeaderboardService_RenderChart(t *testing.T) {
	s := newTestService(NewFakePublisher())

	data, err := s.RenderChart(context.Background(), 2)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())

	_, err = s.RenderChart(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGenerateRankingChart_EmptyRendersPlaceholder(t *testing.T) {
	data, err := GenerateRankingChart("Empty", nil, ArcadePalette)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}
