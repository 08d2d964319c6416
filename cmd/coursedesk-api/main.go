package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	cli "github.com/urfave/cli/v3"

	"github.com/coursedesk/coursedesk/pkg/clients"
	"github.com/coursedesk/coursedesk/pkg/config"
	"github.com/coursedesk/coursedesk/pkg/log"
	"github.com/coursedesk/coursedesk/pkg/otelhelper"
	"github.com/coursedesk/coursedesk/pkg/persistence"
	"github.com/coursedesk/coursedesk/pkg/persistence/file"
	"github.com/coursedesk/coursedesk/pkg/persistence/postgresql"
)

const defaultPort = 9096

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "coursedesk-api",
		Usage:                 "Create and manage training courses",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence (postgres://... or file://...)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML configuration file",
				Sources: cli.EnvVars("COURSEDESK_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing coursedesk API")

			cfg, err := config.Load(command.String("config"))
			if err != nil {
				return err
			}

			if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
				if _, err := otelhelper.NewTracer(ctx, "coursedesk-api"); err != nil {
					logger.WarnContext(ctx, "Failed to initialize tracing", "error", err)
				}
			}

			persist, err := newPersistence(ctx, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persist.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			var bodyLookup clients.BodyLookup = clients.NewCertBodyClient(cfg.LookupEndpoint, http.DefaultClient, logger)

			if cfg.Redis.Addr != "" {
				cacheTTL := time.Duration(cfg.Redis.CacheTTL)
				if cacheTTL == 0 {
					cacheTTL = 15 * time.Minute
				}

				redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
				bodyLookup = clients.NewCachedBodyLookup(bodyLookup, redisClient, cacheTTL, logger)
			}

			api := NewAPI(logger, persist, bodyLookup)

			port := cfg.Server.Port
			if port == 0 {
				port = command.Int("port")
			}

			if err := api.Start(port); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)

				return err
			}

			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func newPersistence(ctx context.Context, databaseURL string) (persistence.Persistence, error) {
	if strings.HasPrefix(databaseURL, "file://") {
		return file.NewPersistence(databaseURL), nil
	}

	return postgresql.NewPersistence(ctx, log.WithModule("persistence"), databaseURL)
}
