package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const metricsNamespace = "arcade"

// Config configures logging, tracing and metrics for one process.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	LogLevel       string
	MetricsAddress string

	// Output overrides the log destination; nil means stdout.
	Output io.Writer
}

// Provider holds the process-wide logger and tracer provider.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider

	metricsServer *http.Server
}

// Registry holds the tracer and per-module metric sets.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	CatalogMetrics     metrics.ServiceMetrics
	LeaderboardMetrics metrics.ServiceMetrics
	EventMetrics       metrics.EventMetrics
	HTTPMetrics        *metrics.HTTPMetrics
}

// Observability is passed to every module constructor.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer and Prometheus registry. When MetricsAddress is set a
// /metrics listener is started in the background; Shutdown stops it.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return Observability{}, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
	if cfg.Version != "" {
		logger = logger.With(slog.String("version", cfg.Version))
	}

	tp := otel.GetTracerProvider()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	provider := &Provider{
		Logger:         logger,
		TracerProvider: tp,
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		provider.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.InfoContext(ctx, "Metrics server listening", slog.String("address", cfg.MetricsAddress))
			if err := provider.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "Metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	return Observability{
		Provider: provider,
		Registry: &Registry{
			Tracer:             tp.Tracer(cfg.ServiceName),
			Prometheus:         reg,
			CatalogMetrics:     metrics.NewServiceMetrics(reg, metricsNamespace, "catalog"),
			LeaderboardMetrics: metrics.NewServiceMetrics(reg, metricsNamespace, "leaderboard"),
			EventMetrics:       metrics.NewEventMetrics(reg, metricsNamespace),
			HTTPMetrics:        metrics.NewHTTPMetrics(reg, metricsNamespace),
		},
	}, nil
}

// NewNoop returns an Observability that discards logs, spans and metrics. Used by tests.
func NewNoop() Observability {
	return Observability{
		Provider: &Provider{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			TracerProvider: noop.NewTracerProvider(),
		},
		Registry: &Registry{
			Tracer:             noop.NewTracerProvider().Tracer("noop"),
			Prometheus:         prometheus.NewRegistry(),
			CatalogMetrics:     metrics.NewNoop(),
			LeaderboardMetrics: metrics.NewNoop(),
			EventMetrics:       metrics.NewNoopEvents(),
		},
	}
}

// Shutdown stops the metrics listener if one was started.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.Provider == nil || o.Provider.metricsServer == nil {
		return nil
	}
	if err := o.Provider.metricsServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop metrics server: %w", err)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
