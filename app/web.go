package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/retro-arcade/app/modules/web"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/Black-And-White-Club/retro-arcade/config"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// WebApp is the web frontend process. It talks to the API only over HTTP.
type WebApp struct {
	Config        *config.Config
	Observability observability.Observability
	HTTPRouter    chi.Router
	WebModule     *web.Module

	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewWebApp wires the API client, router and web module.
func NewWebApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*WebApp, error) {
	client := arcadeclient.New(cfg.Web.APIURL, arcadeclient.WithHTTPClient(&http.Client{
		Timeout: cfg.Web.FetchTimeout,
	}))
	return newWebApp(ctx, cfg, obs, client)
}

func newWebApp(ctx context.Context, cfg *config.Config, obs observability.Observability, client *arcadeclient.Client) (*WebApp, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Registry.HTTPMetrics.Middleware)
	r.Use(middleware.Recoverer)

	webModule, err := web.NewWebModule(ctx, obs, client, cfg.Web.FetchTimeout, r)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web module: %w", err)
	}

	return &WebApp{
		Config:        cfg,
		Observability: obs,
		HTTPRouter:    r,
		WebModule:     webModule,
		logger:        obs.Provider.Logger,
	}, nil
}

// Start kicks off the background catalog fetch.
func (a *WebApp) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.WebModule.Run(ctx, &a.wg)
}

// Run serves the web frontend until ctx is cancelled.
func (a *WebApp) Run(ctx context.Context) error {
	a.Start(ctx)
	a.logger.InfoContext(ctx, "Web client using API", slog.String("api_url", a.Config.Web.APIURL))
	return Serve(ctx, a.logger, ":"+a.Config.Web.Port, a.HTTPRouter)
}

// Handler returns the web handler.
func (a *WebApp) Handler() http.Handler {
	return a.HTTPRouter
}

// Close waits for the module goroutine and background API calls. The context passed
// to Start must already be cancelled.
func (a *WebApp) Close() error {
	a.wg.Wait()
	return a.WebModule.Close()
}
