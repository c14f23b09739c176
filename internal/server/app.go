// Package server wires the finkeeper API: PostgreSQL storage, optional S3
// archiving and AMQP events, and the HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/dmitrijs2005/finkeeper/internal/server/api"
	"github.com/dmitrijs2005/finkeeper/internal/server/archive"
	"github.com/dmitrijs2005/finkeeper/internal/server/config"
	"github.com/dmitrijs2005/finkeeper/internal/server/events"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/finkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

// seams for tests
var (
	openDB         = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newArchiver    = func(ctx context.Context, o archive.Options) (services.Archiver, error) {
		return archive.NewS3Archiver(ctx, o)
	}
	newPublisher = func(url, exchange, queue string) (publisher, error) { return events.NewPublisher(url, exchange, queue) }
)

type publisher interface {
	services.Publisher
	Close() error
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher publisher
	server    *api.Server
}

// NewApp connects to the database, applies migrations and builds the
// services. S3 and AMQP are only set up when configured; a broker that
// cannot be reached disables publishing instead of failing startup.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{config: cfg, logger: logger, db: db}

	var arch services.Archiver
	if cfg.S3Bucket != "" {
		arch, err = newArchiver(ctx, archive.Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	}

	var pub services.Publisher
	if cfg.AMQPURL != "" {
		p, err := newPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error(ctx, "amqp unavailable, events disabled", "error", err)
		} else {
			app.publisher = p
			pub = p
		}
	}

	us := services.NewUserService(db, rm, cfg, logger)
	ss := services.NewSyncService(db, rm, arch, pub, logger)
	app.server = api.NewServer(cfg.EndpointAddr, cfg.ShutdownTimeout, logger, us, ss, db.PingContext)

	return app, nil
}

// Run serves until ctx is cancelled or the server fails, then releases
// resources.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

func (app *App) Close() error {
	var errs []error
	if app.publisher != nil {
		errs = append(errs, app.publisher.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
