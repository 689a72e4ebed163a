package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "LeaderboardService"

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	games     GameLookup
	publisher message.Publisher
	logger    *slog.Logger
	metrics   metrics.ServiceMetrics
	tracer    trace.Tracer
	palette   ChartPalette
	now       func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	games GameLookup,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		games:     games,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		palette:   ArcadePalette,
		now:       time.Now,
	}
}

// GetLeaderboard returns the ranking for gameID.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, gameID catalogdomain.GameID) ([]leaderboarddomain.Entry, error) {
	result, err := withTelemetry(s, ctx, "GetLeaderboard", gameID.String(), func(ctx context.Context) (results.OperationResult[[]leaderboarddomain.Entry, error], error) {
		if _, err := s.lookupGame(gameID); err != nil {
			return results.FailureResult[[]leaderboarddomain.Entry, error](err), nil
		}
		return results.SuccessResult[[]leaderboarddomain.Entry, error](leaderboarddomain.SampleRanking()), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// SubmitScore publishes the submission and always acknowledges it. The game id
// is not checked; an unresolvable id is recorded under leaderboarddomain.UnknownGame.
// The ranking is not updated.
func (s *LeaderboardService) SubmitScore(ctx context.Context, submission leaderboarddomain.Submission) (leaderboarddomain.ScoreSubmittedPayloadV1, error) {
	result, err := withTelemetry(s, ctx, "SubmitScore", submission.GameID, func(ctx context.Context) (results.OperationResult[leaderboarddomain.ScoreSubmittedPayloadV1, error], error) {
		return s.submitScoreLogic(ctx, submission)
	})
	if err != nil {
		return leaderboarddomain.ScoreSubmittedPayloadV1{}, err
	}
	if result.IsFailure() {
		return leaderboarddomain.ScoreSubmittedPayloadV1{}, *result.Failure
	}
	return *result.Success, nil
}

func (s *LeaderboardService) submitScoreLogic(ctx context.Context, submission leaderboarddomain.Submission) (results.OperationResult[leaderboarddomain.ScoreSubmittedPayloadV1, error], error) {
	payload := leaderboarddomain.ScoreSubmittedPayloadV1{
		GameID:      submission.GameID,
		GameName:    s.gameName(submission.GameID),
		Player:      submission.Player,
		Score:       submission.Score,
		SubmittedAt: s.now().UTC(),
	}

	msg, err := eventbus.NewMessage(payload, middleware.GetReqID(ctx))
	if err != nil {
		return results.OperationResult[leaderboarddomain.ScoreSubmittedPayloadV1, error]{}, err
	}
	if err := s.publisher.Publish(leaderboarddomain.ScoreSubmittedV1, msg); err != nil {
		return results.OperationResult[leaderboarddomain.ScoreSubmittedPayloadV1, error]{}, fmt.Errorf("failed to publish score submission: %w", err)
	}

	return results.SuccessResult[leaderboarddomain.ScoreSubmittedPayloadV1, error](payload), nil
}

// RenderChart draws the ranking of gameID as a PNG.
func (s *LeaderboardService) RenderChart(ctx context.Context, gameID catalogdomain.GameID) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "RenderChart", gameID.String(), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		game, err := s.lookupGame(gameID)
		if err != nil {
			return results.FailureResult[[]byte, error](err), nil
		}
		png, err := GenerateRankingChart(game.Name+" High Scores", leaderboarddomain.SampleRanking(), s.palette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *LeaderboardService) lookupGame(gameID catalogdomain.GameID) (catalogdomain.Game, error) {
	game, ok := s.games.Find(gameID)
	if !ok {
		return catalogdomain.Game{}, fmt.Errorf("%w: %d", ErrGameNotFound, gameID)
	}
	return game, nil
}

func (s *LeaderboardService) gameName(rawID string) string {
	id, err := catalogdomain.ParseGameID(rawID)
	if err != nil {
		return leaderboarddomain.UnknownGame
	}
	game, ok := s.games.Find(id)
	if !ok {
		return leaderboarddomain.UnknownGame
	}
	return game.Name
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("game_id", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractRequestID(ctx),
				attr.String("game_id", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractRequestID(ctx),
			attr.String("operation", operationName),
			attr.String("game_id", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractRequestID(ctx),
			attr.String("operation", operationName),
			attr.String("game_id", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}
