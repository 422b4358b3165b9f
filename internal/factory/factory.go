package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/dartscore-go/internal/dependencies/clock"
	"github.com/mcoot/dartscore-go/internal/dependencies/random"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
	"github.com/mcoot/dartscore-go/internal/services/bot"
	"github.com/mcoot/dartscore-go/internal/services/game"
	"github.com/mcoot/dartscore-go/internal/services/scoring"
	"github.com/mcoot/dartscore-go/internal/services/stats"
	"github.com/mcoot/dartscore-go/internal/storage"
	"github.com/mcoot/dartscore-go/internal/storage/memory"
	redisstorage "github.com/mcoot/dartscore-go/internal/storage/redis"
	"github.com/mcoot/dartscore-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultMongoDatabase is used when a Mongo URI is set without a database
const DefaultMongoDatabase = "darts"

// mongoConnectTimeout bounds the initial Mongo connection and ping
const mongoConnectTimeout = 10 * time.Second

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Layout         board.Layout
	Engine         *scoring.Engine
	Exporter       *stats.Exporter
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager

	closers []func(context.Context) error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// StatsYAMLPath enables the YAML statistics file when set
	StatsYAMLPath string
	// MongoURI enables the Mongo statistics archive when set
	MongoURI string
	// MongoDatabase names the archive database (default "darts")
	MongoDatabase string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []func(context.Context) error

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, func(context.Context) error { return redisStore.Close() })
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	sinks := []stats.Sink{stats.NewStorageSink(store)}
	if cfg.StatsYAMLPath != "" {
		sinks = append(sinks, stats.NewYAMLSink(cfg.StatsYAMLPath))
	}
	if cfg.MongoURI != "" {
		client, err := connectMongo(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := cfg.MongoDatabase
		if database == "" {
			database = DefaultMongoDatabase
		}
		sinks = append(sinks, stats.NewMongoSink(client.Database(database)))
		closers = append(closers, client.Disconnect)
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, logger, sinks...)
	app.closers = append(app.closers, closers...)
	return app, nil
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return client, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger, sinks ...stats.Sink) *App {
	layout := board.DefaultLayout()
	engine := scoring.NewEngine(clk, rnd)
	exporter := stats.NewExporter(clk, logger, sinks...)
	gameController := game.NewController(store, engine, layout, exporter, clk,
		logger.With(slog.String("component", "game")))
	botService := bot.NewService(gameController, map[string]bot.Strategy{
		model.BotStrategyRandom: bot.NewRandomStrategy(rnd),
		model.BotStrategyAimed:  bot.NewAimedStrategy(rnd, bot.DefaultSpread),
	}, logger)

	hubManager := sse.NewHubManager(logger)
	gameController.Subscribe(sse.NewBroadcaster(hubManager, logger))

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Layout:         layout,
		Engine:         engine,
		Exporter:       exporter,
		GameController: gameController,
		BotService:     botService,
		HubManager:     hubManager,
	}
}

// Close drains pending statistics exports, disconnects live clients and
// releases backend connections
func (a *App) Close(ctx context.Context) error {
	a.Exporter.Wait()
	a.HubManager.Close()

	var errs []error
	for _, closer := range a.closers {
		if err := closer(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
