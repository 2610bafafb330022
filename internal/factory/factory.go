package factory

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mcoot/mafiagame-go/internal/dependencies/random"
	"github.com/mcoot/mafiagame-go/internal/services/action"
	"github.com/mcoot/mafiagame-go/internal/services/game"
	"github.com/mcoot/mafiagame-go/internal/services/vote"
	"github.com/mcoot/mafiagame-go/internal/storage"
	"github.com/mcoot/mafiagame-go/internal/storage/file"
	"github.com/mcoot/mafiagame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/mafiagame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Backend storage.Backend
	Store   *storage.Store

	// External dependencies
	Random random.Random

	// Services
	GameController *game.Controller
	VoteService    *vote.Service
	ActionService  *action.Service

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Destination selects the backend: ":memory:" for an ephemeral store,
	// a redis:// or rediss:// URL for Redis, anything else is a file path.
	// If empty, defaults to ":memory:"
	Destination string
	// RedisConfig overrides connection settings for a Redis destination
	// (optional). Its URL is replaced by Destination.
	RedisConfig *redisstorage.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// StorageType reports which backend a destination selects
func StorageType(destination string) string {
	switch {
	case destination == "" || destination == storage.MemoryDestination:
		return StorageTypeMemory
	case strings.HasPrefix(destination, "redis://"), strings.HasPrefix(destination, "rediss://"):
		return StorageTypeRedis
	default:
		return StorageTypeFile
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var backend storage.Backend
	var closer io.Closer

	switch StorageType(cfg.Destination) {
	case StorageTypeMemory:
		backend = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		if cfg.RedisConfig != nil {
			redisCfg = *cfg.RedisConfig
		}
		redisCfg.URL = cfg.Destination
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		backend, closer = redisStore, redisStore
	default:
		backend = file.New(cfg.Destination)
	}

	app := newWithDependencies(backend, random.New(), logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(backend storage.Backend, rnd random.Random, logger *slog.Logger) *App {
	store := storage.NewStore(backend, rnd, logger)

	return &App{
		Backend:        backend,
		Store:          store,
		Random:         rnd,
		GameController: game.NewController(store, logger),
		VoteService:    vote.New(store, logger),
		ActionService:  action.New(store, logger),
	}
}

// Close releases backend connections
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
