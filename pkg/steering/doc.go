// Package steering is the entry point for control-leverage queries.
//
// # Library Boundary
//
// [FindInfluencePaths] takes objects, correlations, a target id and a goal
// token and returns the influential nodes ranked by descending control
// leverage. [FindInfluencePathsJSON] does the same over the two JSON payloads
// and returns the encoded ranking.
//
//	nodes, err := steering.FindInfluencePaths(objects, correlations, "law", "strengthen")
//
// The goal must be exactly "strengthen" or "weaken"; anything else fails with
// INVALID_GOAL before the graph is built. An unknown target is not an error
// and yields an empty ranking.
//
// # Simulations
//
// [Simulate] wraps a query in a [Simulation]: the ranking plus a primary
// recommendation, alternatives, warnings and run metadata. Unlike
// FindInfluencePaths it requires the target to be a known object.
//
// # Runner
//
// [Runner] adds caching, logging and observability hooks on top of Simulate
// and is shared by the CLI and the HTTP server. [Runner.SimulateMany] runs
// several targets concurrently over one immutable graph index.
package steering
