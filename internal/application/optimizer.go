package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-splitchunks/internal/domain"
	"github.com/ahrav/go-splitchunks/internal/ports"
)

// Errors returned by the optimizer.
var (
	// ErrNilConfig is returned when NewOptimizer is called without a config.
	ErrNilConfig = errors.New("split chunks config cannot be nil")

	// ErrNilGraph is returned when Run is called without a module graph.
	ErrNilGraph = errors.New("module graph cannot be nil")
)

// cacheGroup is a compiled cache group rule: the validated configuration
// with its test pattern compiled and its declared position recorded.
type cacheGroup struct {
	name      string
	index     int
	priority  float64
	test      *regexp.Regexp // nil matches every module
	minChunks int
}

func (cg *cacheGroup) matches(id domain.ModuleIdentifier) bool {
	return cg.test == nil || cg.test.MatchString(string(id))
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithMetrics wires a metrics collector into the optimizer. Without it the
// optimizer runs silently.
func WithMetrics(mc ports.MetricsCollector) Option {
	return func(o *Optimizer) { o.metrics = mc }
}

// WithWorkers caps the number of goroutines used while building candidates.
// Values below one are ignored. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *Optimizer) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// Optimizer runs split-chunks optimization passes: it matches cache group
// rules against a module graph to build candidate module groups, then
// repeatedly commits the best remaining candidate under the deterministic
// comparator, withdrawing the committed modules from every competitor.
//
// An Optimizer is immutable after construction and safe to share across
// goroutines; each Run works on pass-local state only.
type Optimizer struct {
	cacheGroups []*cacheGroup
	metrics     ports.MetricsCollector
	workers     int
	tracer      trace.Tracer
}

// NewOptimizer compiles the configuration into an Optimizer.
// The config is validated first, so a hand-built config that skipped
// ParseSplitChunksConfig is still checked here.
func NewOptimizer(cfg *SplitChunksConfig, opts ...Option) (*Optimizer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	groups := make([]*cacheGroup, 0, len(cfg.CacheGroups))
	for i, cgc := range cfg.CacheGroups {
		cg := &cacheGroup{
			name:      cgc.Name,
			index:     i,
			priority:  cgc.Priority,
			minChunks: cgc.MinChunks,
		}
		if cg.minChunks < 1 {
			cg.minChunks = 1
		}
		if cgc.Test != "" {
			re, err := regexp.Compile(cgc.Test)
			if err != nil {
				return nil, fmt.Errorf("cache group %q: invalid test pattern: %w", cgc.Name, err)
			}
			cg.test = re
		}
		groups = append(groups, cg)
	}

	o := &Optimizer{
		cacheGroups: groups,
		workers:     runtime.GOMAXPROCS(0),
		tracer:      otel.Tracer("split-chunks-optimizer"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run executes one optimization pass over the graph and returns the
// committed module groups in selection order, best first.
//
// The result is deterministic for a given config and graph content: module
// enumeration is canonicalized by identifier, candidates are built in
// declared cache group order, and the comparator's total order (with a
// first-seen rule on exact ties) decides every selection. Run honors
// context cancellation between selection rounds.
func (o *Optimizer) Run(ctx context.Context, graph ports.ModuleGraph) ([]*domain.ModuleGroup, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	ctx, span := o.tracer.Start(ctx, "Optimizer.Run",
		trace.WithAttributes(
			attribute.Int("split.cache_groups", len(o.cacheGroups)),
		),
	)
	defer span.End()

	start := time.Now()

	// Canonicalize module order so candidate construction does not depend
	// on the graph's iteration order.
	modules := slices.Clone(graph.Modules())
	slices.SortFunc(modules, func(a, b domain.Module) int {
		switch {
		case a.Identifier() < b.Identifier():
			return -1
		case a.Identifier() > b.Identifier():
			return 1
		default:
			return 0
		}
	})

	moduleByID := make(map[domain.ModuleIdentifier]domain.Module, len(modules))
	for _, m := range modules {
		moduleByID[m.Identifier()] = m
	}

	candidates, err := o.buildCandidates(ctx, modules, graph)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.RecordCounter("split_candidates_created_total",
			float64(len(candidates)), map[string]string{"pass": "split_chunks"})
		o.metrics.RecordGauge("split_candidates_remaining",
			float64(len(candidates)), map[string]string{"pass": "split_chunks"})
	}

	selected := make([]*domain.ModuleGroup, 0, len(candidates))
	for len(candidates) > 0 {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}

		best := bestEntry(candidates)
		winner := candidates[best]
		candidates = slices.Delete(candidates, best, best+1)
		selected = append(selected, winner)

		// Committed modules leave every competing candidate. Removal order
		// does not matter: RemoveModule calls commute.
		for id := range winner.Modules {
			mod := moduleByID[id]
			for _, g := range candidates {
				g.RemoveModule(mod)
			}
		}
		candidates = slices.DeleteFunc(candidates, func(g *domain.ModuleGroup) bool {
			return len(g.Modules) == 0
		})

		if o.metrics != nil {
			o.metrics.RecordHistogram("split_group_size_bytes",
				winner.Sizes.Total(), map[string]string{"cache_group": winner.Name})
			o.metrics.RecordGauge("split_candidates_remaining",
				float64(len(candidates)), map[string]string{"pass": "split_chunks"})
		}
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("split.modules", len(modules)),
		attribute.Int("split.groups_selected", len(selected)),
		attribute.Int64("split.latency_ms", elapsed.Milliseconds()),
	)
	if o.metrics != nil {
		o.metrics.RecordLatency("optimizer_pass", elapsed,
			map[string]string{"pass": "split_chunks"})
		o.metrics.RecordCounter("split_groups_selected_total",
			float64(len(selected)), map[string]string{"pass": "split_chunks"})
	}

	return selected, nil
}

// buildCandidates matches every cache group rule against the canonicalized
// module list and returns one candidate per matching rule, ordered by
// declaration.
//
// Rules are sharded across workers. Each candidate is created and mutated
// by exactly one worker, preserving the single-owner mutation model of
// domain.ModuleGroup; workers share only the read-only module list and
// graph.
func (o *Optimizer) buildCandidates(
	ctx context.Context,
	modules []domain.Module,
	graph ports.ModuleGraph,
) ([]*domain.ModuleGroup, error) {
	perGroup := make([]*domain.ModuleGroup, len(o.cacheGroups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, cg := range o.cacheGroups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var group *domain.ModuleGroup
			for _, mod := range modules {
				id := mod.Identifier()
				if !cg.matches(id) {
					continue
				}
				chunks := graph.ChunksOf(id)
				if len(chunks) < cg.minChunks {
					continue
				}

				if group == nil {
					group = domain.NewModuleGroup(cg.name, cg.index, cg.priority)
				}
				group.AddModule(mod)
				for _, key := range chunks {
					group.AddChunk(key)
				}
			}
			perGroup[i] = group
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]*domain.ModuleGroup, 0, len(perGroup))
	for _, group := range perGroup {
		if group != nil {
			candidates = append(candidates, group)
		}
	}
	return candidates, nil
}
