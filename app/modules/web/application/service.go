package webservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	webdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/web/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// WebService implements the Service interface.
type WebService struct {
	api          ArcadeAPI
	catalog      *CatalogStore
	sessions     *SessionStore
	logger       *slog.Logger
	tracer       trace.Tracer
	fetchTimeout time.Duration

	wg sync.WaitGroup
}

// NewWebService creates a new WebService. fetchTimeout bounds every API call made
// outside a page request.
func NewWebService(api ArcadeAPI, logger *slog.Logger, tracer trace.Tracer, fetchTimeout time.Duration) *WebService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("web")
	}
	return &WebService{
		api:          api,
		catalog:      NewCatalogStore(api, logger, fetchTimeout),
		sessions:     NewSessionStore(),
		logger:       logger,
		tracer:       tracer,
		fetchTimeout: fetchTimeout,
	}
}

// LoadCatalog performs the startup catalog fetch.
func (s *WebService) LoadCatalog(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "WebService.LoadCatalog")
	defer span.End()
	s.catalog.Load(ctx)
}

func (s *WebService) Catalog() CatalogSnapshot {
	return s.catalog.Snapshot()
}

func (s *WebService) RetryCatalog() bool {
	return s.catalog.Retry()
}

func (s *WebService) FindGame(id int) (arcadeclient.Game, bool) {
	return s.catalog.Find(id)
}

// RecordPlayAsync reports a play in the background. The call outlives ctx, is bounded
// by the fetch timeout, and its failure is only logged.
func (s *WebService) RecordPlayAsync(ctx context.Context, id int) {
	requestID := attr.ExtractRequestID(ctx)
	detached := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(detached, s.fetchTimeout)
		defer cancel()
		ctx, span := s.tracer.Start(ctx, "WebService.RecordPlay", trace.WithAttributes(attribute.Int("game.id", id)))
		defer span.End()

		if err := s.api.RecordPlay(ctx, id); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.WarnContext(ctx, "Error logging game play",
				requestID,
				attr.Int("game_id", id),
				attr.Error(err),
			)
		}
	}()
}

func (s *WebService) Session(sessionID string, gameID int) webdomain.PlaySession {
	return s.sessions.Get(sessionID, gameID)
}

func (s *WebService) StartPlay(sessionID string, gameID int) webdomain.PlaySession {
	session, _ := s.sessions.Update(sessionID, gameID, func(ps webdomain.PlaySession) (webdomain.PlaySession, error) {
		return ps.Start(), nil
	})
	return session
}

func (s *WebService) IncrementScore(sessionID string, gameID int) (webdomain.PlaySession, error) {
	return s.sessions.Update(sessionID, gameID, webdomain.PlaySession.Increment)
}

func (s *WebService) EndPlay(sessionID string, gameID int) (webdomain.PlaySession, error) {
	session, err := s.sessions.Update(sessionID, gameID, webdomain.PlaySession.End)
	if err == nil {
		s.logger.Info("Game over",
			attr.Int("game_id", gameID),
			attr.Int64("score", session.Score),
		)
	}
	return session, err
}

// Leaderboard fetches the ranking for gameID. The call is cancelled with ctx.
func (s *WebService) Leaderboard(ctx context.Context, gameID int) ([]arcadeclient.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "WebService.Leaderboard", trace.WithAttributes(attribute.Int("game.id", gameID)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	entries, err := s.api.GetLeaderboard(ctx, gameID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "Error fetching leaderboard",
			attr.ExtractRequestID(ctx),
			attr.Int("game_id", gameID),
			attr.Error(err),
		)
		return nil, err
	}
	return entries, nil
}

func (s *WebService) ChartURL(gameID int) string {
	return s.api.ChartURL(gameID)
}

// Wait blocks until background API calls finish.
func (s *WebService) Wait() {
	s.wg.Wait()
	s.catalog.Wait()
}

var _ Service = (*WebService)(nil)
