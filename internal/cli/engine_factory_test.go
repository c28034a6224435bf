package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dateq/internal/config"
	"github.com/aretw0/dateq/internal/logging"
	"github.com/aretw0/dateq/pkg/adapters/file"
	"github.com/aretw0/dateq/pkg/adapters/redis"
	"github.com/aretw0/dateq/pkg/domain"
)

func TestResolveSearchOptionsFlagOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Operators = "basic"
	cfg.Search.MaxGroups = 4

	opts, err := resolveSearchOptions(RunOptions{
		Operators: "extended",
		Factorial: true,
		Deep:      true,
		Tolerance: 0.5,
		Workers:   2,
	}, cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.OperatorsExtended, opts.Operators)
	assert.True(t, opts.Factorial)
	assert.Equal(t, domain.MaxGroupLimit, opts.MaxGroups)
	assert.Equal(t, 0.5, opts.Tolerance)
	assert.Equal(t, 2, opts.Workers)
}

func TestResolveSearchOptionsConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Operators = "extended"
	cfg.Search.MaxGroups = 3

	opts, err := resolveSearchOptions(RunOptions{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.OperatorsExtended, opts.Operators)
	assert.Equal(t, 3, opts.MaxGroups)
	assert.False(t, opts.Factorial)
}

func TestResolveSearchOptionsRejectsUnknownPalette(t *testing.T) {
	_, err := resolveSearchOptions(RunOptions{Operators: "fancy"}, config.Default())
	assert.Error(t, err)
}

func TestCreateStoreDisabled(t *testing.T) {
	logger := logging.NewNop()

	// No redis address configured
	assert.Nil(t, createStore(RunOptions{}, config.Default(), logger))

	// Configured but explicitly disabled
	cfg := config.Default()
	cfg.Redis.Addr = "localhost:6379"
	assert.Nil(t, createStore(RunOptions{NoCache: true}, cfg, logger))

	// Broken TTL disables the cache instead of failing the command
	cfg.Redis.TTL = "soon"
	assert.Nil(t, createStore(RunOptions{}, cfg, logger))
}

func TestCreateStoreRedis(t *testing.T) {
	cfg := config.Default()
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.TTL = "24h"
	cfg.Redis.Prefix = "test:"

	store := createStore(RunOptions{}, cfg, logging.NewNop())
	require.NotNil(t, store)

	redisStore, ok := store.(*redis.Store)
	require.True(t, ok)
	assert.NoError(t, redisStore.Close())
}

func TestCreateStoreFile(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	store := createStore(RunOptions{}, cfg, logging.NewNop())
	require.NotNil(t, store)
	_, ok := store.(*file.Store)
	assert.True(t, ok)
}

func TestCreateStoreEncrypted(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Cache.Dir = dir
	cfg.Cache.EncryptionKey = strings.Repeat("ab", 32)

	store := createStore(RunOptions{}, cfg, logging.NewNop())
	require.NotNil(t, store)

	ctx := context.Background()
	result := &domain.Result{Input: "123", Digits: domain.DigitSequence{1, 2, 3}}
	require.NoError(t, store.Save(ctx, "test-key", result))

	loaded, err := store.Load(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, domain.DigitSequence{1, 2, 3}, loaded.Digits)

	// The raw entry on disk must be the envelope, not the result.
	raw, err := file.New(dir).Load(ctx, "test-key")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw.Input, "encrypted:"))
}

func TestCreateStoreRejectsBadEncryptionKey(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	// Not hex at all, then hex of the wrong length.
	cfg.Cache.EncryptionKey = "not-hex"
	assert.Nil(t, createStore(RunOptions{}, cfg, logging.NewNop()))

	cfg.Cache.EncryptionKey = "abcd"
	assert.Nil(t, createStore(RunOptions{}, cfg, logging.NewNop()))
}

func TestCreateEngine(t *testing.T) {
	engine, err := createEngine(RunOptions{Debug: true}, config.Default(), logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, domain.OperatorsBasic, engine.Options().Operators)

	_, err = createEngine(RunOptions{Operators: "fancy"}, config.Default(), logging.NewNop())
	assert.Error(t, err)
}
