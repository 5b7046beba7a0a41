package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/esalabs/controltower/internal/server"
	"github.com/esalabs/controltower/modules"
	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/pkg/application"
	"github.com/esalabs/controltower/pkg/configuration"
	"github.com/esalabs/controltower/pkg/eventbus"
	"github.com/esalabs/controltower/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to " + conf.OpenTelemetry.TempoURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		panic(err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := applyMigrations(context.Background(), conf, app); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	subscribeDecisionLog(app, logger)

	options := &server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	}
	serverInstance, err := server.Default(options)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func applyMigrations(ctx context.Context, conf *configuration.Configuration, app application.Application) error {
	db, err := sql.Open("postgres", conf.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	return app.Migrations().Apply(ctx, db)
}

// subscribeDecisionLog writes an audit line for every review decision.
func subscribeDecisionLog(app application.Application, logger *logrus.Logger) {
	app.EventPublisher().Subscribe(func(event *changerequest.DecidedEvent) {
		logger.WithField("change_request_id", event.Request.ID.String()).
			WithField("status", event.Request.Status).
			Info("change request decided")
	})
}
