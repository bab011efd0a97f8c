// Package pkg provides the core libraries for steering analysis of
// cybernetic object graphs.
//
// # Overview
//
// A control graph holds objects (autonomous systems, tools, ...) and directed
// correlations between them. Steering analysis asks which objects can move a
// chosen target, and by how much: it walks the graph backwards from the
// target, scores every influencer by control leverage and turns the ranking
// into recommendations.
//
// # Architecture
//
// The data flow through steering:
//
//	Dataset file (JSON/YAML/TOML) or request body
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [graph] package (arena index with reverse adjacency)
//	         ↓
//	    [influence] package (bounded backward search, aggregation, ranking)
//	         ↓
//	    [steering] package (simulation, recommendations, cached runner)
//	         ↓
//	    table / JSON / DOT / SVG output
//
// # Quick Start
//
//	import "github.com/metasystem/steering/pkg/steering"
//
//	sim, err := steering.Simulate(steering.Request{
//	    Objects:      objects,
//	    Correlations: correlations,
//	    TargetID:     "law",
//	    Goal:         "weaken",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sim.PrimaryRecommendation.Action)
//
// # Main Packages
//
// ## Domain
//
// [cyber] - Object and correlation types, their validation, and the auxiliary
// formulas (total power, axiological integrity, information distortion).
//
// [graph] - Read-only arena index over a dataset. Objects are addressed by
// dense integers and every object keeps its incoming correlations.
//
// [influence] - Path discovery under depth, path-count and strength limits,
// per-influencer aggregation, leverage ranking and recommendations.
//
// [steering] - The library boundary: goal parsing, the JSON-in/JSON-out
// search, full simulations and the cache-aware [steering.Runner].
//
// ## Infrastructure
//
// [cache] - Simulation cache with file (CLI), Redis and MongoDB backends.
//
// [config] - TOML configuration with validated defaults.
//
// [observability] - Hook interfaces for search, cache and HTTP events.
//
// [metrics] - Prometheus collectors implementing the observability hooks.
//
// [errors] - Code-typed errors shared by the CLI and the HTTP API.
//
// ## Output
//
// [io] - Dataset import and export.
//
// [render] - Graphviz influence diagrams (DOT, SVG, PNG).
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...            # All tests
//	go test ./pkg/influence  # Search and ranking only
//	go test -run Example     # Examples only
package pkg
