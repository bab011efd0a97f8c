package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.SearchesTotal == nil || r.CacheHitsTotal == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("collectors not initialized")
	}
	if r.registry == nil {
		t.Fatal("prometheus registry not initialized")
	}

	// Independent registries must not collide on registration.
	_ = NewRegistry()
}

func TestSearchHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnSearchStart(ctx, "law")
	if got := testutil.ToFloat64(r.SearchesInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	r.OnSearchComplete(ctx, "law", 12, 4, 3*time.Millisecond, nil)

	r.OnSearchStart(ctx, "court")
	r.OnSearchComplete(ctx, "court", 0, 0, time.Millisecond, errors.New("not found"))

	if got := testutil.ToFloat64(r.SearchesInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.SearchesTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.SearchesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("failed searches = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.SearchPaths); got != 1 {
		t.Errorf("path histogram series = %d, want 1", got)
	}
}

func TestCacheHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnCacheHit(ctx, "simulation")
	r.OnCacheHit(ctx, "simulation")
	r.OnCacheMiss(ctx, "simulation")
	r.OnCacheSet(ctx, "simulation", 2048)

	if got := testutil.ToFloat64(r.CacheHitsTotal.WithLabelValues("simulation")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheMissesTotal.WithLabelValues("simulation")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestHTTPHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnRequest(ctx, "POST", "/api/v1/simulations")
	r.OnResponse(ctx, "POST", "/api/v1/simulations", 201, 20*time.Millisecond)
	r.OnRequest(ctx, "POST", "/api/v1/simulations")
	r.OnResponse(ctx, "POST", "/api/v1/simulations", 400, time.Millisecond)

	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/simulations", "201")); got != 1 {
		t.Errorf("201 responses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnCacheMiss(context.Background(), "simulation")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(string(body), `steering_cache_misses_total{key_type="simulation"} 1`) {
		t.Errorf("exposition missing cache counter:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("exposition missing runtime collector")
	}
}
