package dateq

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/dateq/internal/engine"
	"github.com/aretw0/dateq/internal/logging"
	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/ports"
)

// Engine is the high-level entry point for the dateq library.
// It wraps the internal search engine and provides a simplified API for
// consumers: feed it a date string, get back every arithmetic identity
// hiding in its digits.
type Engine struct {
	opts   domain.SearchOptions
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	store  ports.ResultStore
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated use chains
// the hook sets in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = domain.MergeHooks(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects a result cache. Searches are deterministic, so a
// cache hit is indistinguishable from a fresh search.
func WithStore(store ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSearchOptions replaces the whole option block at once.
func WithSearchOptions(opts domain.SearchOptions) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithOperators selects the operator palette (basic or extended).
func WithOperators(set domain.OperatorSet) Option {
	return func(e *Engine) {
		e.opts.Operators = set
	}
}

// WithFactorial enables fact() variants for single-digit groups.
func WithFactorial(enabled bool) Option {
	return func(e *Engine) {
		e.opts.Factorial = enabled
	}
}

// WithMaxGroups bounds the partition enumeration (2..domain.MaxGroupLimit).
func WithMaxGroups(n int) Option {
	return func(e *Engine) {
		e.opts.MaxGroups = n
	}
}

// WithTolerance sets the inclusive value-matching tolerance.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		e.opts.Tolerance = tol
	}
}

// WithWorkers bounds the partition fan-out. Results are identical for
// any worker count.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.opts.Workers = n
	}
}

// New initializes a new dateq Engine. Zero-value options are filled
// with defaults; invalid options fail fast here rather than at search
// time.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{opts: domain.DefaultSearchOptions()}

	for _, opt := range opts {
		opt(eng)
	}

	eng.opts = eng.opts.Normalized()
	if err := eng.opts.Validate(); err != nil {
		return nil, err
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	return eng, nil
}

// Options returns the normalized options the engine searches with.
func (e *Engine) Options() domain.SearchOptions {
	return e.opts
}

// Generate extracts the digits of input and searches them for
// equations. Inputs yielding fewer than domain.MinDigits digits fail
// with domain.ErrInsufficientDigits; every other arithmetic dead end is
// silently discarded and tallied in the result's stats.
func (e *Engine) Generate(ctx context.Context, input string) (*domain.Result, error) {
	return e.GenerateWith(ctx, input, e.opts)
}

// GenerateWith is Generate with per-call options, for hosts that let
// callers tune the search per request. The engine-level store, logger
// and hooks still apply.
func (e *Engine) GenerateWith(ctx context.Context, input string, opts domain.SearchOptions) (*domain.Result, error) {
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	digits, err := domain.ExtractDigits(input)
	if err != nil {
		return nil, err
	}

	e.emitSearchStart(ctx, input, digits)

	if cached := e.loadCached(ctx, opts, digits); cached != nil {
		cached.Input = input
		e.emitSearchEnd(ctx, cached.Stats, nil)
		return cached, nil
	}

	searcher := engine.New(opts, e.logger, e.hooks)
	equations, stats, err := searcher.Search(ctx, digits)
	if err != nil {
		e.emitSearchEnd(ctx, stats, err)
		return nil, err
	}

	result := &domain.Result{
		Input:     input,
		Digits:    digits,
		Equations: equations,
		Stats:     stats,
	}
	e.saveCached(ctx, opts, digits, result)

	e.emitSearchEnd(ctx, stats, nil)
	return result, nil
}

// loadCached returns a stored result for this search, or nil. Cache
// failures other than a miss are logged and treated as misses.
func (e *Engine) loadCached(ctx context.Context, opts domain.SearchOptions, digits domain.DigitSequence) *domain.Result {
	if e.store == nil {
		return nil
	}
	key := opts.CacheKey(digits)
	result, err := e.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrResultNotFound) {
			e.logger.Warn("result cache read failed", "key", key, "error", err)
		}
		return nil
	}
	e.logger.Debug("result cache hit", "key", key)
	return result
}

// saveCached stores a fresh result, best effort.
func (e *Engine) saveCached(ctx context.Context, opts domain.SearchOptions, digits domain.DigitSequence, result *domain.Result) {
	if e.store == nil {
		return
	}
	key := opts.CacheKey(digits)
	if err := e.store.Save(ctx, key, result); err != nil {
		e.logger.Warn("result cache write failed", "key", key, "error", err)
	}
}

func (e *Engine) emitSearchStart(ctx context.Context, input string, digits domain.DigitSequence) {
	if e.hooks.OnSearchStart == nil {
		return
	}
	e.hooks.OnSearchStart(ctx, &domain.SearchEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearchStart},
		Input:     input,
		Digits:    digits,
	})
}

func (e *Engine) emitSearchEnd(ctx context.Context, stats domain.SearchStats, err error) {
	if e.hooks.OnSearchEnd == nil {
		return
	}
	e.hooks.OnSearchEnd(ctx, &domain.SearchEndEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearchEnd},
		Stats:     stats,
		Err:       err,
	})
}
