package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/justic/justic-api/internal/api"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/events"
	"github.com/justic/justic-api/internal/media"
	"github.com/justic/justic-api/internal/objectstore"
	"github.com/justic/justic-api/internal/platform/google"
	"github.com/justic/justic-api/internal/platform/postgres"
	"github.com/justic/justic-api/internal/platform/redisstore"
	"github.com/justic/justic-api/internal/provider"
	"github.com/justic/justic-api/internal/registry"
	"github.com/justic/justic-api/internal/service/auth"
	"github.com/justic/justic-api/internal/service/video"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis redis.UniversalClient

	jwtService   auth.JWTService
	loginService api.LoginFlow
	videoService video.Service
	checks       map[string]api.Checker

	// closers run in reverse order on cleanup
	closers []func() error
}

// newApplication connects to every backing service and wires the domain
// services. Anything opened before a failure is released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{config: cfg, logger: logger}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	app.db, err = postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, app.db.Close)

	if err = postgres.Migrate(ctx, app.db, logger); err != nil {
		return nil, err
	}

	app.redis = redisstore.NewClient(cfg.Redis)
	app.closers = append(app.closers, app.redis.Close)
	sessions := redisstore.New(app.redis)
	if err = sessions.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.checks = map[string]api.Checker{
		"postgres": app.db.PingContext,
		"redis":    sessions.Ping,
	}

	s3Client, err := objectstore.NewS3Client(cfg.Storage)
	if err != nil {
		return nil, err
	}
	objects := objectstore.NewS3Store(s3Client, cfg.Storage.Bucket, logger)
	if err = objects.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	reg := newRegistry(cfg.Registry, app.redis, logger)

	emitter, closeEvents, err := newEmitter(cfg.Events, logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeEvents)

	app.videoService, err = video.NewService(
		reg,
		objects,
		provider.NewKieClient(cfg.Provider, &http.Client{}, logger),
		media.NewFFmpegExtractor(cfg.Media, logger),
		emitter,
		cfg.Media,
		logger,
		video.WithIngestTimeout(cfg.Provider.FetchTimeout()+cfg.Storage.UploadTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %w", err)
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app.loginService, err = auth.NewLoginService(
		google.NewProvider(cfg.Auth, nil),
		sessions,
		sessions,
		postgres.NewPostgresUserStore(app.db, logger),
		app.jwtService,
		cfg.Auth.StateTTL(),
		cfg.Auth.LoginSessionTTL(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create login service: %w", err)
	}

	return app, nil
}

// newRegistry selects the task registry backend.
func newRegistry(cfg config.RegistryConfig, client redis.UniversalClient, logger *slog.Logger) registry.Registry {
	if cfg.Backend == "redis" {
		logger.Info("using redis task registry", "key_prefix", cfg.KeyPrefix, "ttl", cfg.TTL())
		return registry.NewRedisRegistry(client, cfg.KeyPrefix, cfg.TTL(), logger)
	}
	logger.Warn("using in-memory task registry; task state is lost on restart")
	return registry.NewMemoryRegistry()
}

// newEmitter always logs task events and also publishes them to Kafka when
// brokers are configured. The returned func releases the producer.
func newEmitter(cfg config.EventsConfig, logger *slog.Logger) (events.EventEmitter, func() error, error) {
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))

	if len(cfg.KafkaBrokers) == 0 {
		return emitter, func() error { return nil }, nil
	}

	producer, err := events.NewKafkaProducer(cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	kafka, err := events.NewKafkaHandler(producer, cfg.KafkaTopic, logger)
	if err != nil {
		_ = producer.Close()
		return nil, nil, err
	}
	emitter.RegisterHandler(kafka)
	return emitter, kafka.Close, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources in reverse acquisition order.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("failed to release resource", "error", err)
		}
	}
	app.closers = nil
}
