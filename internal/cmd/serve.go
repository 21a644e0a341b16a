package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"gudang/internal/app"
	"gudang/internal/database"
	"gudang/internal/logging"
	"gudang/internal/services"
	"gudang/pkg/rabbitmq"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  serveCommand,
	}
}

func serveCommand(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogFormat, cfg.LogLevel)

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBDebug, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return err
	}

	// --- Events ---
	var (
		events   services.EventPublisher = services.NoopPublisher{}
		mqClient *rabbitmq.Client
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitExchange}, log)
		if err != nil {
			_ = database.Close(db)
			return err
		}
		events = mqClient

		if cfg.RabbitConsume {
			err = mqClient.Consume(cfg.RabbitExchange+".audit", "product.#", rabbitmq.LogHandler(log))
			if err != nil {
				log.Error("failed to start event consumer", slog.Any("error", err))
			}
		}
	} else {
		log.Info("RABBITMQ_URL not set, catalog events are dropped")
	}

	// --- HTTP ---
	fiberApp := app.New(app.Deps{
		Config:    cfg,
		DB:        db,
		Events:    events,
		Log:       log,
		AccessLog: os.Stdout,
	})

	// Bind before waiting for signals so a taken port fails the command.
	ln, err := net.Listen("tcp", cfg.AppPort)
	if err != nil {
		if mqClient != nil {
			_ = mqClient.Close()
		}
		_ = database.Close(db)
		return fmt.Errorf("failed to listen on %s: %w", cfg.AppPort, err)
	}
	go func() {
		log.Info("starting server",
			slog.String("addr", ln.Addr().String()),
			slog.String("db_driver", cfg.DBDriver),
			slog.String("access_policy", cfg.AccessPolicy))
		if err := fiberApp.Listener(ln); err != nil {
			log.Error("server stopped", slog.Any("error", err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		// Ordered: drain HTTP before closing what requests depend on.
		"application": func(ctx context.Context) error {
			var errs []error
			if err := fiberApp.ShutdownWithContext(ctx); err != nil {
				errs = append(errs, fmt.Errorf("http: %w", err))
			}
			if mqClient != nil {
				if err := mqClient.Close(); err != nil {
					errs = append(errs, fmt.Errorf("rabbitmq: %w", err))
				}
			}
			if err := database.Close(db); err != nil {
				errs = append(errs, fmt.Errorf("database: %w", err))
			}
			return errors.Join(errs...)
		},
	})

	exitCode := <-wait
	if exitCode != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", exitCode)
	}
	log.Info("server gracefully stopped")
	return nil
}
