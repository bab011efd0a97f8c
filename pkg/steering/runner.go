package steering

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/metasystem/steering/pkg/cache"
	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/graph"
	"github.com/metasystem/steering/pkg/influence"
	"github.com/metasystem/steering/pkg/observability"
)

const cacheKeyType = "simulation"

// Runner executes simulations with caching and logging.
// The CLI and the HTTP server share it.
//
// A Runner holds no per-request state, so one Runner can serve many
// goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Limits apply to requests that carry no limits of their own.
	Limits influence.Limits

	// TTL is the lifetime of stored simulations.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Limits start at influence.DefaultLimits and TTL at cache.SimulationTTL.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Limits: influence.DefaultLimits(),
		TTL:    cache.SimulationTTL,
	}
}

// Simulate runs req, consulting the cache first unless req.Refresh is set.
// The boolean result reports a cache hit.
func (r *Runner) Simulate(ctx context.Context, req Request) (*Simulation, bool, error) {
	r.applyLimits(&req)
	goal, limits, err := req.Validate()
	if err != nil {
		return nil, false, err
	}

	key, keyErr := r.cacheKey(req, limits)
	if keyErr != nil {
		r.Logger.Debug("cache key unavailable", "error", keyErr)
	}

	if keyErr == nil && !req.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Simulation
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				r.Logger.Debug("simulation cache hit", "target", req.TargetID)
				return &cached, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	sim, err := r.run(ctx, graph.Build(req.Objects, req.Correlations), req.TargetID, goal, limits, req.Top)
	if err != nil {
		return nil, false, err
	}

	if keyErr == nil {
		r.store(ctx, key, sim)
	}
	return sim, false, nil
}

// SimulateMany runs one simulation per target over a single graph index.
// Results are returned in target order; the first error cancels the rest.
// The cache is not consulted.
func (r *Runner) SimulateMany(ctx context.Context, req Request, targets []string) ([]*Simulation, error) {
	r.applyLimits(&req)
	if len(targets) == 0 {
		return nil, nil
	}

	for _, target := range targets {
		if err := apperrors.ValidateID("target", target); err != nil {
			return nil, err
		}
	}
	req.TargetID = targets[0]
	goal, limits, err := req.Validate()
	if err != nil {
		return nil, err
	}

	g := graph.Build(req.Objects, req.Correlations)
	results := make([]*Simulation, len(targets))

	eg, ctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sim, err := r.run(ctx, g, target, goal, limits, req.Top)
			if err != nil {
				return err
			}
			results[i] = sim
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) run(ctx context.Context, g *graph.Index, targetID string, goal cyber.SteeringGoal, limits influence.Limits, top int) (*Simulation, error) {
	observability.Search().OnSearchStart(ctx, targetID)
	start := time.Now()

	sim, err := simulate(g, targetID, goal, limits, top)

	paths, nodes := 0, 0
	if sim != nil {
		paths, nodes = sim.Metadata.TotalPathsAnalyzed, len(sim.InfluentialNodes)
	}
	observability.Search().OnSearchComplete(ctx, targetID, paths, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("simulation complete",
		"target", targetID,
		"goal", goal,
		"paths", paths,
		"nodes", nodes,
		"duration", time.Since(start))
	return sim, nil
}

func (r *Runner) cacheKey(req Request, limits influence.Limits) (string, error) {
	hash, err := cache.HashJSON(struct {
		Objects      any `json:"objects"`
		Correlations any `json:"correlations"`
	}{req.Objects, req.Correlations})
	if err != nil {
		return "", err
	}
	top := req.Top
	if top == 0 {
		top = influence.DefaultTop
	}
	return r.Keyer.SimulationKey(hash, cache.SimulationKeyOpts{
		Target:       req.TargetID,
		Goal:         req.Goal,
		MaxDepth:     limits.MaxDepth,
		MaxPaths:     limits.MaxPaths,
		MinInfluence: limits.MinInfluence,
		Top:          top,
	}), nil
}

func (r *Runner) store(ctx context.Context, key string, sim *Simulation) {
	data, err := json.Marshal(sim)
	if err != nil {
		r.Logger.Debug("simulation not cacheable", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// applyLimits fills in the runner's limits when the request has none.
func (r *Runner) applyLimits(req *Request) {
	if req.Limits == nil {
		limits := r.Limits
		req.Limits = &limits
	}
}
