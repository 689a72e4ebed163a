package leaderboardhandlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboardservice "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/httpx"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

const (
	MessageGameNotFound   = "Game not found"
	MessageScoreSubmitted = "Score submitted"

	maxBodyBytes = 1 << 16
)

// LeaderboardResponse is the body of GET /api/leaderboard/{gameId}.
type LeaderboardResponse struct {
	Success     bool                      `json:"success"`
	Leaderboard []leaderboarddomain.Entry `json:"leaderboard"`
}

// SubmitScoreRequest is the body of POST /api/leaderboard/{gameId}. Every field is
// optional and values of the wrong type are left at zero.
type SubmitScoreRequest struct {
	Player string  `json:"player"`
	Score  float64 `json:"score"`
}

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service      leaderboardservice.Service
	logger       *slog.Logger
	tracer       trace.Tracer
	eventMetrics metrics.EventMetrics
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	eventMetrics metrics.EventMetrics,
) Handlers {
	return &LeaderboardHandlers{
		service:      service,
		logger:       logger,
		tracer:       tracer,
		eventMetrics: eventMetrics,
	}
}

func (h *LeaderboardHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.GetLeaderboard(r.Context(), gameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, LeaderboardResponse{Success: true, Leaderboard: entries})
}

func (h *LeaderboardHandlers) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmission(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httpx.BadRequest(w, httpx.MessageInvalidBody)
		return
	}

	_, err = h.service.SubmitScore(r.Context(), leaderboarddomain.Submission{
		GameID: chi.URLParam(r, "gameId"),
		Player: req.Player,
		Score:  req.Score,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, true, MessageScoreSubmitted)
}

// decodeSubmission fails only when body is not JSON. An empty body and mistyped
// fields decode to the zero request.
func decodeSubmission(body io.Reader) (SubmitScoreRequest, error) {
	var req SubmitScoreRequest
	err := json.NewDecoder(body).Decode(&req)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.As(err, &typeErr):
		return req, nil
	default:
		return SubmitScoreRequest{}, err
	}
}

func (h *LeaderboardHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	png, err := h.service.RenderChart(r.Context(), gameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write chart", attr.Error(err))
	}
}

// HandleScoreSubmitted logs the submission. Undecodable messages are acked and dropped.
func (h *LeaderboardHandlers) HandleScoreSubmitted(msg *message.Message) error {
	ctx, span := h.tracer.Start(msg.Context(), "LeaderboardHandlers.HandleScoreSubmitted")
	defer span.End()

	if h.eventMetrics != nil {
		h.eventMetrics.RecordEventConsumed(ctx, leaderboarddomain.ScoreSubmittedV1)
	}

	var payload leaderboarddomain.ScoreSubmittedPayloadV1
	if err := eventbus.Decode(msg, &payload); err != nil {
		h.logger.WarnContext(ctx, "Dropping malformed score event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil
	}

	h.logger.InfoContext(ctx, "Score submitted",
		attr.String("game_id", payload.GameID),
		attr.String("game", payload.GameName),
		attr.String("player", payload.Player),
		attr.Float64("score", payload.Score),
		attr.String("submitted_at", payload.SubmittedAt.Format(time.RFC3339)),
		attr.String("correlation_id", middleware.MessageCorrelationID(msg)),
	)
	return nil
}

// gameID parses the {gameId} path parameter, writing a 404 when it is not a valid id.
func (h *LeaderboardHandlers) gameID(w http.ResponseWriter, r *http.Request) (catalogdomain.GameID, bool) {
	id, err := catalogdomain.ParseGameID(chi.URLParam(r, "gameId"))
	if err != nil {
		httpx.NotFound(w, MessageGameNotFound)
		return 0, false
	}
	return id, true
}

func (h *LeaderboardHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, leaderboardservice.ErrGameNotFound):
		httpx.NotFound(w, MessageGameNotFound)
	default:
		httpx.InternalError(w, r, h.logger, err)
	}
}
