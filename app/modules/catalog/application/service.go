package catalogservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/eventbus"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
	"github.com/Black-And-White-Club/retro-arcade/app/shared/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CatalogService"

// CatalogService implements the Service interface.
type CatalogService struct {
	catalog   *catalogdomain.Catalog
	publisher message.Publisher
	logger    *slog.Logger
	metrics   metrics.ServiceMetrics
	tracer    trace.Tracer
	now       func() time.Time
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	catalog *catalogdomain.Catalog,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		now:       time.Now,
	}
}

// ListGames returns every game.
func (s *CatalogService) ListGames(ctx context.Context) ([]catalogdomain.Game, error) {
	result, err := withTelemetry(s, ctx, "ListGames", "all", func(ctx context.Context) (results.OperationResult[[]catalogdomain.Game, error], error) {
		return results.SuccessResult[[]catalogdomain.Game, error](s.catalog.All()), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// GetGame returns the game with the given id.
func (s *CatalogService) GetGame(ctx context.Context, id catalogdomain.GameID) (catalogdomain.Game, error) {
	result, err := withTelemetry(s, ctx, "GetGame", id.String(), func(ctx context.Context) (results.OperationResult[catalogdomain.Game, error], error) {
		return s.findGame(id), nil
	})
	if err != nil {
		return catalogdomain.Game{}, err
	}
	if result.IsFailure() {
		return catalogdomain.Game{}, *result.Failure
	}
	return *result.Success, nil
}

// ListGamesByGenre returns games whose genre matches, ignoring case.
func (s *CatalogService) ListGamesByGenre(ctx context.Context, genre string) ([]catalogdomain.Game, error) {
	result, err := withTelemetry(s, ctx, "ListGamesByGenre", genre, func(ctx context.Context) (results.OperationResult[[]catalogdomain.Game, error], error) {
		return results.SuccessResult[[]catalogdomain.Game, error](s.catalog.ByGenre(genre)), nil
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// RecordPlay validates id and publishes a GamePlayedV1 event. Nothing is stored.
func (s *CatalogService) RecordPlay(ctx context.Context, id catalogdomain.GameID) (catalogdomain.GamePlayedPayloadV1, error) {
	result, err := withTelemetry(s, ctx, "RecordPlay", id.String(), func(ctx context.Context) (results.OperationResult[catalogdomain.GamePlayedPayloadV1, error], error) {
		return s.recordPlayLogic(ctx, id)
	})
	if err != nil {
		return catalogdomain.GamePlayedPayloadV1{}, err
	}
	if result.IsFailure() {
		return catalogdomain.GamePlayedPayloadV1{}, *result.Failure
	}
	return *result.Success, nil
}

func (s *CatalogService) recordPlayLogic(ctx context.Context, id catalogdomain.GameID) (results.OperationResult[catalogdomain.GamePlayedPayloadV1, error], error) {
	found := s.findGame(id)
	if found.IsFailure() {
		return results.FailureResult[catalogdomain.GamePlayedPayloadV1, error](*found.Failure), nil
	}
	game := *found.Success

	payload := catalogdomain.GamePlayedPayloadV1{
		GameID:   game.ID,
		GameName: game.Name,
		PlayedAt: s.now().UTC(),
	}

	msg, err := eventbus.NewMessage(payload, middleware.GetReqID(ctx))
	if err != nil {
		return results.OperationResult[catalogdomain.GamePlayedPayloadV1, error]{}, err
	}
	if err := s.publisher.Publish(catalogdomain.GamePlayedV1, msg); err != nil {
		return results.OperationResult[catalogdomain.GamePlayedPayloadV1, error]{}, fmt.Errorf("failed to publish play event: %w", err)
	}

	return results.SuccessResult[catalogdomain.GamePlayedPayloadV1, error](payload), nil
}

func (s *CatalogService) findGame(id catalogdomain.GameID) results.OperationResult[catalogdomain.Game, error] {
	game, ok := s.catalog.Find(id)
	if !ok {
		return results.FailureResult[catalogdomain.Game, error](fmt.Errorf("%w: %d", ErrGameNotFound, id))
	}
	return results.SuccessResult[catalogdomain.Game, error](game)
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *CatalogService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
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

	s.logger.DebugContext(ctx, "Operation triggered", attr.ExtractRequestID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractRequestID(ctx),
				attr.String("identifier", identifier),
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

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractRequestID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractRequestID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}
