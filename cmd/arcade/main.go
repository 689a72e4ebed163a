package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Black-And-White-Club/retro-arcade/app"
	"github.com/Black-And-White-Club/retro-arcade/app/export"
	catalogservice "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/application"
	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboardservice "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/retro-arcade/app/observability"
	"github.com/Black-And-White-Club/retro-arcade/config"
	"github.com/Black-And-White-Club/retro-arcade/pkg/arcadeclient"
	"github.com/urfave/cli/v2"
)

const version = "1.0.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "arcade",
		Usage:   "retro games arcade API, web client and tools",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newAPICommand(),
			newWebCommand(),
			newGamesCommand(),
			newExportCommand(),
		},
	}
}

// setup loads the config and initializes observability for one process.
func setup(c *cli.Context, component string) (*config.Config, observability.Observability, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, observability.Observability{}, fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := observability.Init(c.Context, observability.Config{
		ServiceName:    cfg.Observability.ServiceName + "-" + component,
		Environment:    cfg.Observability.Environment,
		Version:        version,
		LogLevel:       cfg.Observability.LogLevel,
		MetricsAddress: cfg.Observability.MetricsAddress,
		Output:         c.App.ErrWriter,
	})
	if err != nil {
		return nil, observability.Observability{}, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return cfg, obs, nil
}

func shutdown(obs observability.Observability) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(ctx); err != nil {
		obs.Provider.Logger.Error("Error during shutdown", "error", err)
	}
}

func newAPICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "serve the catalog and leaderboard API",
		Action: func(c *cli.Context) error {
			cfg, obs, err := setup(c, "api")
			if err != nil {
				return err
			}
			defer shutdown(obs)

			logger := obs.Provider.Logger
			logger.Info("Starting arcade API")

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			runErr := application.Run(ctx)
			cancel()
			if err := application.Close(); err != nil {
				logger.Error("Error closing app", "error", err)
			}

			logger.Info("Arcade API stopped")
			return runErr
		},
	}
}

func newWebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "serve the web client",
		Action: func(c *cli.Context) error {
			cfg, obs, err := setup(c, "web")
			if err != nil {
				return err
			}
			defer shutdown(obs)

			logger := obs.Provider.Logger
			logger.Info("Starting arcade web client")

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			webApp, err := app.NewWebApp(ctx, cfg, obs)
			if err != nil {
				return fmt.Errorf("failed to initialize web app: %w", err)
			}

			runErr := webApp.Run(ctx)
			cancel()
			if err := webApp.Close(); err != nil {
				logger.Error("Error closing web app", "error", err)
			}

			logger.Info("Arcade web client stopped")
			return runErr
		},
	}
}

func newGamesCommand() *cli.Command {
	return &cli.Command{
		Name:  "games",
		Usage: "print the catalog from a running API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "genre", Usage: "only list games of this genre"},
			&cli.StringFlag{Name: "api-url", Usage: "API base URL (defaults to web.api_url)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			apiURL := cfg.Web.APIURL
			if v := c.String("api-url"); v != "" {
				apiURL = v
			}
			client := arcadeclient.New(apiURL)

			var games []arcadeclient.Game
			if genre := c.String("genre"); genre != "" {
				games, err = client.ListGamesByGenre(c.Context, genre)
			} else {
				games, err = client.ListGames(c.Context)
			}
			if err != nil {
				return fmt.Errorf("failed to list games: %w", err)
			}

			return printGames(c.App.Writer, games)
		},
	}
}

func printGames(w io.Writer, games []arcadeclient.Game) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGENRE\tYEAR\tPLAYERS")
	for _, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", g.ID, g.Name, g.Genre, g.Year, g.Players)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d games\n", len(games))
	return err
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the catalog and leaderboards to an XLSX workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "arcade.xlsx", Usage: "output file"},
		},
		Action: func(c *cli.Context) error {
			_, obs, err := setup(c, "export")
			if err != nil {
				return err
			}
			defer shutdown(obs)

			logger := obs.Provider.Logger
			tracer := obs.Registry.Tracer

			catalog, err := catalogdomain.NewCatalog(catalogdomain.DefaultGames())
			if err != nil {
				return fmt.Errorf("failed to build catalog: %w", err)
			}

			exporter := export.NewExporter(
				catalogservice.NewCatalogService(catalog, nil, logger, obs.Registry.CatalogMetrics, tracer),
				leaderboardservice.NewLeaderboardService(catalog, nil, logger, obs.Registry.LeaderboardMetrics, tracer),
			)

			out := c.String("out")
			if err := exporter.SaveAs(c.Context, out); err != nil {
				return err
			}

			logger.Info("Workbook written", "path", out, "games", catalog.Len())
			fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
			return nil
		},
	}
}
