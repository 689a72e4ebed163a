package cataloghandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogservice "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/application"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/httpx"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

const (
	MessageGameNotFound = "Game not found"
	MessagePlayLogged   = "Play logged"
)

// GamesResponse is the body of the list endpoints.
type GamesResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Games   []catalogdomain.Game `json:"games"`
}

// GameResponse is the body of the detail endpoint.
type GameResponse struct {
	Success bool               `json:"success"`
	Game    catalogdomain.Game `json:"game"`
}

// CatalogHandlers implements the Handlers interface.
type CatalogHandlers struct {
	service      catalogservice.Service
	logger       *slog.Logger
	tracer       trace.Tracer
	eventMetrics metrics.EventMetrics
}

// NewCatalogHandlers creates a new CatalogHandlers instance.
func NewCatalogHandlers(
	service catalogservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	eventMetrics metrics.EventMetrics,
) Handlers {
	return &CatalogHandlers{
		service:      service,
		logger:       logger,
		tracer:       tracer,
		eventMetrics: eventMetrics,
	}
}

func (h *CatalogHandlers) HandleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListGames(r.Context())
	if err != nil {
		httpx.InternalError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GamesResponse{Success: true, Count: len(games), Games: games})
}

func (h *CatalogHandlers) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := catalogdomain.ParseGameID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.NotFound(w, MessageGameNotFound)
		return
	}

	game, err := h.service.GetGame(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogservice.ErrGameNotFound) {
			httpx.NotFound(w, MessageGameNotFound)
			return
		}
		httpx.InternalError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GameResponse{Success: true, Game: game})
}

func (h *CatalogHandlers) HandleListGamesByGenre(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the segment escaped once.
	genre := chi.URLParam(r, "genre")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(genre); err == nil {
			genre = unescaped
		}
	}

	games, err := h.service.ListGamesByGenre(r.Context(), genre)
	if err != nil {
		httpx.InternalError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, GamesResponse{Success: true, Count: len(games), Games: games})
}

func (h *CatalogHandlers) HandleRecordPlay(w http.ResponseWriter, r *http.Request) {
	id, err := catalogdomain.ParseGameID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.NotFound(w, MessageGameNotFound)
		return
	}

	if _, err := h.service.RecordPlay(r.Context(), id); err != nil {
		if errors.Is(err, catalogservice.ErrGameNotFound) {
			httpx.NotFound(w, MessageGameNotFound)
			return
		}
		httpx.InternalError(w, r, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, true, MessagePlayLogged)
}

// HandleGamePlayed logs the play. Undecodable messages are logged and acked so they
// are not redelivered forever.
func (h *CatalogHandlers) HandleGamePlayed(msg *message.Message) error {
	ctx, span := h.tracer.Start(msg.Context(), "CatalogHandlers.HandleGamePlayed")
	defer span.End()

	if h.eventMetrics != nil {
		h.eventMetrics.RecordEventConsumed(ctx, catalogdomain.GamePlayedV1)
	}

	var payload catalogdomain.GamePlayedPayloadV1
	if err := eventbus.Decode(msg, &payload); err != nil {
		h.logger.WarnContext(ctx, "Dropping malformed play event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil
	}

	h.logger.InfoContext(ctx, "Game played",
		attr.Int("game_id", int(payload.GameID)),
		attr.String("game_name", payload.GameName),
		attr.String("played_at", payload.PlayedAt.Format(time.RFC3339)),
		attr.String("correlation_id", middleware.MessageCorrelationID(msg)),
	)
	return nil
}
