package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/dateq"
	"github.com/aretw0/dateq/internal/config"
	"github.com/aretw0/dateq/pkg/adapters/file"
	"github.com/aretw0/dateq/pkg/adapters/redis"
	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/persistence/middleware"
	"github.com/aretw0/dateq/pkg/ports"
)

// createEngine initializes a search engine with standard CLI conventions.
// Flag overrides win over config file values, which win over the engine
// defaults.
func createEngine(opts RunOptions, cfg *config.Config, logger *slog.Logger, extra ...dateq.Option) (*dateq.Engine, error) {
	searchOpts, err := resolveSearchOptions(opts, cfg)
	if err != nil {
		return nil, err
	}

	engineOpts := []dateq.Option{
		dateq.WithLogger(logger),
		dateq.WithSearchOptions(searchOpts),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, dateq.WithLifecycleHooks(createDebugHooks(logger)))
	}

	if store := createStore(opts, cfg, logger); store != nil {
		engineOpts = append(engineOpts, dateq.WithStore(store))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := dateq.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

func resolveSearchOptions(opts RunOptions, cfg *config.Config) (domain.SearchOptions, error) {
	searchOpts := cfg.SearchOptions()

	if opts.Operators != "" {
		set, err := domain.ParseOperatorSet(opts.Operators)
		if err != nil {
			return domain.SearchOptions{}, err
		}
		searchOpts.Operators = set
	}
	if opts.Factorial {
		searchOpts.Factorial = true
	}
	if opts.Deep {
		searchOpts.MaxGroups = domain.MaxGroupLimit
	}
	if opts.Tolerance > 0 {
		searchOpts.Tolerance = opts.Tolerance
	}
	if opts.Workers > 0 {
		searchOpts.Workers = opts.Workers
	}

	return searchOpts, nil
}

// createStore wires the configured result cache backend. Redis wins when
// both backends are configured. The cache is best effort: a missing or
// unreachable backend only costs recomputation.
func createStore(opts RunOptions, cfg *config.Config, logger *slog.Logger) ports.ResultStore {
	if opts.NoCache || !cfg.CacheEnabled() {
		return nil
	}

	var store ports.ResultStore
	switch {
	case cfg.Redis.Addr != "":
		ttl, err := cfg.RedisTTL()
		if err != nil {
			logger.Warn("Invalid redis ttl, cache disabled", "ttl", cfg.Redis.TTL, "error", err)
			return nil
		}
		storeOpts := []redis.Option{redis.WithTTL(ttl)}
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store = redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)
	case cfg.Cache.Dir != "":
		store = file.New(cfg.Cache.Dir)
	default:
		return nil
	}

	key, err := cfg.EncryptionKey()
	if err != nil {
		// Never fall back to plaintext when encryption was asked for.
		logger.Warn("Invalid cache encryption key, cache disabled", "error", err)
		return nil
	}
	if key != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}

	return store
}
