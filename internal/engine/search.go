package engine

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/dateq/internal/logging"
	"github.com/aretw0/dateq/pkg/domain"
)

// Searcher runs the partition/expression/match pipeline for one options
// set. It holds no mutable state and is safe for concurrent use.
type Searcher struct {
	opts      domain.SearchOptions
	operators []domain.Operator
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// New builds a Searcher. Options are normalized; a nil logger discards.
func New(opts domain.SearchOptions, logger *slog.Logger, hooks domain.LifecycleHooks) *Searcher {
	opts = opts.Normalized()
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Searcher{
		opts:      opts,
		operators: opts.Operators.Operators(),
		logger:    logger,
		hooks:     hooks,
	}
}

// Options returns the normalized options the searcher runs with.
func (s *Searcher) Options() domain.SearchOptions {
	return s.opts
}

// Search finds every equation hiding in digits: for each partition and
// each split point, candidates for both sides are generated and paired
// within tolerance, then deduplicated by (left, right) text across the
// whole run.
//
// Partitions are searched concurrently into indexed slots and merged in
// partition order, so the result is identical to a serial search.
// Context cancellation aborts the search and returns the context error.
func (s *Searcher) Search(ctx context.Context, digits domain.DigitSequence) ([]domain.Equation, domain.SearchStats, error) {
	start := time.Now()
	parts := partitions(digits, s.opts.MaxGroups)
	stats := domain.SearchStats{Partitions: len(parts)}

	s.logger.Debug("search started",
		"digits", digits.String(),
		"partitions", len(parts),
		"operators", string(s.opts.Operators),
		"factorial", s.opts.Factorial,
		"workers", s.opts.Workers)

	results := make([][]domain.Equation, len(parts))
	tallies := make([]tally, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, p := range parts {
		s.emitPartition(ctx, p, i, len(parts))
		g.Go(func() error {
			eqs, t, err := s.searchPartition(gctx, p)
			results[i], tallies[i] = eqs, t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	type pairKey struct{ left, right string }
	seen := make(map[pairKey]struct{})
	var out []domain.Equation
	for i := range results {
		stats.Evaluations += tallies[i].evaluations
		stats.Expressions += tallies[i].expressions
		stats.Matches += tallies[i].matches
		stats.Discarded.Add(tallies[i].failures)
		for _, eq := range results[i] {
			k := pairKey{eq.Left, eq.Right}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, eq)
			s.emitEquation(ctx, eq)
		}
	}
	stats.Duration = time.Since(start)

	s.logger.Debug("search finished",
		"digits", digits.String(),
		"equations", len(out),
		"evaluations", stats.Evaluations,
		"discarded", stats.Discarded.Total(),
		"duration", stats.Duration)
	return out, stats, nil
}

// searchPartition generates and matches both sides of every split point.
func (s *Searcher) searchPartition(ctx context.Context, p domain.Partition) ([]domain.Equation, tally, error) {
	var t tally
	vals := p.Values()
	var out []domain.Equation
	for split := 1; split < len(vals); split++ {
		left, lt, err := s.expressionsFor(ctx, vals[:split])
		t.add(lt)
		if err != nil {
			return nil, t, err
		}
		right, rt, err := s.expressionsFor(ctx, vals[split:])
		t.add(rt)
		if err != nil {
			return nil, t, err
		}
		matched := matchCandidates(left, right, s.opts.Tolerance)
		t.matches += len(matched)
		out = append(out, matched...)
	}
	return out, t, nil
}

// matchCandidates pairs candidates whose values agree within tol
// (inclusive). Both sides are sorted by (value, text) first, so the
// window sweep is linear and the emission order deterministic. The
// recorded value is the left side's.
func matchCandidates(left, right []candidate, tol float64) []domain.Equation {
	sortCandidates(left)
	sortCandidates(right)
	var out []domain.Equation
	lo := 0
	for _, l := range left {
		for lo < len(right) && right[lo].value < l.value-tol {
			lo++
		}
		for j := lo; j < len(right) && right[j].value <= l.value+tol; j++ {
			out = append(out, domain.Equation{Left: l.text, Right: right[j].text, Value: l.value})
		}
	}
	return out
}

func sortCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].value != cands[j].value {
			return cands[i].value < cands[j].value
		}
		return cands[i].text < cands[j].text
	})
}

func (s *Searcher) emitPartition(ctx context.Context, p domain.Partition, index, total int) {
	if s.hooks.OnPartition == nil {
		return
	}
	s.hooks.OnPartition(ctx, &domain.PartitionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPartition},
		Partition: p,
		Index:     index,
		Total:     total,
	})
}

func (s *Searcher) emitEquation(ctx context.Context, eq domain.Equation) {
	if s.hooks.OnEquation == nil {
		return
	}
	s.hooks.OnEquation(ctx, &domain.EquationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEquation},
		Equation:  eq,
	})
}
