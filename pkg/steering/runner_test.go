package steering

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metasystem/steering/pkg/cache"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/influence"
	"github.com/metasystem/steering/pkg/observability"
)

type countingHooks struct {
	mu                 sync.Mutex
	hits, misses, sets int
	started, completed int
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func (h *countingHooks) OnSearchStart(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *countingHooks) OnSearchComplete(context.Context, string, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
}

func newTestRunner(t *testing.T) (*Runner, *countingHooks) {
	t.Helper()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetSearchHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r, hooks
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if r.Limits != influence.DefaultLimits() {
		t.Errorf("limits = %+v, want defaults", r.Limits)
	}
}

func TestRunnerSimulateCaches(t *testing.T) {
	r, hooks := newTestRunner(t)
	ctx := context.Background()

	first, hit, err := r.Simulate(ctx, chainRequest())
	if err != nil {
		t.Fatalf("first Simulate: %v", err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}

	second, hit, err := r.Simulate(ctx, chainRequest())
	if err != nil {
		t.Fatalf("second Simulate: %v", err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if second.ID != first.ID || second.PrimaryRecommendation != first.PrimaryRecommendation {
		t.Errorf("cached simulation differs:\n got %+v\nwant %+v", second, first)
	}

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("cache hooks = %d hits, %d misses, %d sets", hooks.hits, hooks.misses, hooks.sets)
	}
	if hooks.started != 1 || hooks.completed != 1 {
		t.Errorf("search hooks = %d started, %d completed, want 1 each", hooks.started, hooks.completed)
	}
}

func TestRunnerSimulateRefresh(t *testing.T) {
	r, hooks := newTestRunner(t)
	ctx := context.Background()

	first, _, err := r.Simulate(ctx, chainRequest())
	if err != nil {
		t.Fatal(err)
	}

	req := chainRequest()
	req.Refresh = true
	second, hit, err := r.Simulate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if hit || second.ID == first.ID {
		t.Error("refresh should recompute")
	}
	if hooks.started != 2 {
		t.Errorf("searches = %d, want 2", hooks.started)
	}
}

func TestRunnerSimulateKeyDependsOnParameters(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if _, _, err := r.Simulate(ctx, chainRequest()); err != nil {
		t.Fatal(err)
	}

	variants := map[string]func(*Request){
		"Goal":   func(req *Request) { req.Goal = "weaken" },
		"Target": func(req *Request) { req.TargetID = "parliament" },
		"Top":    func(req *Request) { req.Top = 1 },
		"Limits": func(req *Request) { req.Limits = &influence.Limits{MaxDepth: 2, MaxPaths: 100, MinInfluence: 0.1} },
		"Data":   func(req *Request) { req.Objects[0].EnergyParams.AvailablePower = 11 },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			req := chainRequest()
			mutate(&req)
			_, hit, err := r.Simulate(ctx, req)
			if err != nil {
				t.Fatal(err)
			}
			if hit {
				t.Error("changed parameters should not share a cache entry")
			}
		})
	}
}

func TestRunnerSimulateUsesRunnerLimits(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Limits = influence.Limits{MaxDepth: 1, MaxPaths: 100, MinInfluence: 0.1}

	sim, _, err := r.Simulate(context.Background(), chainRequest())
	if err != nil {
		t.Fatal(err)
	}
	if sim.Metadata.MaxDepth != 1 || sim.Metadata.TotalPathsAnalyzed != 1 {
		t.Errorf("metadata = %+v, want runner limits applied", sim.Metadata)
	}
}

func TestRunnerSimulateErrorNotCached(t *testing.T) {
	r, hooks := newTestRunner(t)

	req := chainRequest()
	req.TargetID = "court"
	_, _, err := r.Simulate(context.Background(), req)
	if !apperrors.Is(err, apperrors.ErrCodeObjectNotFound) {
		t.Fatalf("error = %v, want OBJECT_NOT_FOUND", err)
	}
	if hooks.sets != 0 {
		t.Errorf("failed simulation was cached")
	}
	if hooks.completed != 1 {
		t.Errorf("search completion should be reported on failure")
	}
}

func TestRunnerSimulateMany(t *testing.T) {
	r, hooks := newTestRunner(t)

	targets := []string{"law", "parliament", "media"}
	sims, err := r.SimulateMany(context.Background(), chainRequest(), targets)
	if err != nil {
		t.Fatalf("SimulateMany: %v", err)
	}
	if len(sims) != len(targets) {
		t.Fatalf("got %d results, want %d", len(sims), len(targets))
	}
	for i, sim := range sims {
		if sim.TargetObjectID != targets[i] {
			t.Errorf("result %d is for %q, want %q", i, sim.TargetObjectID, targets[i])
		}
	}

	wantPaths := []int{2, 1, 0}
	for i, sim := range sims {
		if sim.Metadata.TotalPathsAnalyzed != wantPaths[i] {
			t.Errorf("%s: %d paths, want %d", targets[i], sim.Metadata.TotalPathsAnalyzed, wantPaths[i])
		}
	}
	if hooks.started != 3 {
		t.Errorf("searches = %d, want 3", hooks.started)
	}
}

func TestRunnerSimulateManyErrors(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if sims, err := r.SimulateMany(ctx, chainRequest(), nil); err != nil || sims != nil {
		t.Errorf("no targets = %v, %v", sims, err)
	}

	_, err := r.SimulateMany(ctx, chainRequest(), []string{"law", "court"})
	if !apperrors.Is(err, apperrors.ErrCodeObjectNotFound) {
		t.Errorf("unknown target error = %v", err)
	}

	_, err = r.SimulateMany(ctx, chainRequest(), []string{"law", ""})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidID) {
		t.Errorf("empty target error = %v", err)
	}
}
