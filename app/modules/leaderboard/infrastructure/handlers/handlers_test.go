package leaderboardhandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboardservice "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewLeaderboardHandlers(svc, logger, noop.NewTracerProvider().Tracer("test"), metrics.NewNoopEvents())

	r := chi.NewRouter()
	r.Get("/api/leaderboard/{gameId}", h.HandleGetLeaderboard)
	r.Post("/api/leaderboard/{gameId}", h.HandleSubmitScore)
	r.Get("/api/leaderboard/{gameId}/chart.png", h.HandleChart)
	return r
}

func TestLeaderboardHandlers_HandleGetLeaderboard(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(*FakeService)
		wantStatus int
		wantBody   string
		wantTrace  []string
	}{
		{
			name:       "known game",
			path:       "/api/leaderboard/1",
			wantStatus: http.StatusOK,
			wantBody: `{"success":true,"leaderboard":[
				{"rank":1,"player":"ACE","score":99999},
				{"rank":2,"player":"PRO","score":85000},
				{"rank":3,"player":"GXR","score":72000}]}`,
			wantTrace: []string{"GetLeaderboard"},
		},
		{
			name: "unknown game",
			path: "/api/leaderboard/42",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(context.Context, catalogdomain.GameID) ([]leaderboarddomain.Entry, error) {
					return nil, leaderboardservice.ErrGameNotFound
				}
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"Game not found"}`,
			wantTrace:  []string{"GetLeaderboard"},
		},
		{
			name:       "non numeric",
			path:       "/api/leaderboard/tetris",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"Game not found"}`,
			wantTrace:  []string{},
		},
		{
			name: "infrastructure error",
			path: "/api/leaderboard/1",
			setup: func(s *FakeService) {
				s.GetLeaderboardFunc = func(context.Context, catalogdomain.GameID) ([]leaderboarddomain.Entry, error) {
					return nil, errors.New("db on fire")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Internal server error"}`,
			wantTrace:  []string{"GetLeaderboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			if tt.setup != nil {
				tt.setup(svc)
			}
			rr := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantTrace, svc.Trace())
		})
	}
}

func TestLeaderboardHandlers_HandleSubmitScore(t *testing.T) {
	const ack = `{"success":true,"message":"Score submitted"}`

	tests := []struct {
		name           string
		path           string
		body           string
		setup          func(*FakeService)
		wantStatus     int
		wantBody       string
		wantSubmission *leaderboarddomain.Submission
	}{
		{
			name:           "accepted",
			path:           "/api/leaderboard/1",
			body:           `{"player":"ZED","score":1000}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "1", Player: "ZED", Score: 1000},
		},
		{
			name:           "fractional score",
			path:           "/api/leaderboard/2",
			body:           `{"player":"ZED","score":1234.5}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "2", Player: "ZED", Score: 1234.5},
		},
		{
			name:           "negative score",
			path:           "/api/leaderboard/1",
			body:           `{"player":"ZED","score":-5}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "1", Player: "ZED", Score: -5},
		},
		{
			name:           "empty object",
			path:           "/api/leaderboard/1",
			body:           `{}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "1"},
		},
		{
			name:           "empty body",
			path:           "/api/leaderboard/1",
			body:           ``,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "1"},
		},
		{
			name:           "score wrong type",
			path:           "/api/leaderboard/1",
			body:           `{"player":"ZED","score":"lots"}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "1", Player: "ZED"},
		},
		{
			name:           "unknown game",
			path:           "/api/leaderboard/999",
			body:           `{"player":"ZED","score":1}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "999", Player: "ZED", Score: 1},
		},
		{
			name:           "non numeric game id",
			path:           "/api/leaderboard/abc",
			body:           `{"player":"ZED","score":1}`,
			wantStatus:     http.StatusOK,
			wantBody:       ack,
			wantSubmission: &leaderboarddomain.Submission{GameID: "abc", Player: "ZED", Score: 1},
		},
		{
			name:       "malformed json",
			path:       "/api/leaderboard/1",
			body:       `{"player":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid request body"}`,
		},
		{
			name:       "not json",
			path:       "/api/leaderboard/1",
			body:       `player=ZED`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid request body"}`,
		},
		{
			name: "publish failure",
			path: "/api/leaderboard/1",
			body: `{"player":"ZED","score":1}`,
			setup: func(s *FakeService) {
				s.SubmitScoreFunc = func(context.Context, leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error) {
					return leaderboarddomain.ScoreSubmittedPayloadV1{}, errors.New("bus closed")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			var got *leaderboarddomain.Submission
			if tt.setup != nil {
				tt.setup(svc)
			} else {
				svc.SubmitScoreFunc = func(_ context.Context, s leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error) {
					got = &s
					return leaderboarddomain.ScoreSubmittedPayloadV1{}, nil
				}
			}
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantSubmission, got)
		})
	}
}

func TestLeaderboardHandlers_HandleChart(t *testing.T) {
	svc := NewFakeService()
	rr := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard/3/chart.png", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), rr.Body.Bytes())
}

func TestLeaderboardHandlers_HandleScoreSubmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := NewLeaderboardHandlers(NewFakeService(), logger, noop.NewTracerProvider().Tracer("test"), nil)

	msg, err := eventbus.NewMessage(leaderboarddomain.ScoreSubmittedPayloadV1{
		GameID:      "1",
		GameName:    "Space Invaders",
		Player:      "ZED",
		Score:       4200.5,
		SubmittedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, "")
	require.NoError(t, err)

	require.NoError(t, h.HandleScoreSubmitted(msg))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Score submitted", line["msg"])
	assert.Equal(t, "ZED", line["player"])
	assert.Equal(t, 4200.5, line["score"])
	assert.Equal(t, "1", line["game_id"])
	assert.Equal(t, "Space Invaders", line["game"])
	assert.Equal(t, "2024-01-02T03:04:05Z", line["submitted_at"])
}
