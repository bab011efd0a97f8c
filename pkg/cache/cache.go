// Package cache stores encoded simulation results between runs.
//
// # Backends
//
// All backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis strings with native expiry (shared servers)
//   - [MongoCache]: one document per entry with a TTL index
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] turns a dataset hash and the search parameters into a cache key,
// so two runs share an entry only when they would compute the same result:
//
//	key := keyer.SimulationKey(cache.Hash(datasetJSON), cache.SimulationKeyOpts{
//	    Target: "parliament",
//	    Goal:   "strengthen",
//	    MaxDepth: 5, MaxPaths: 100, MinInfluence: 0.1, Top: 5,
//	})
//
// Network backends retry transient failures with [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// SimulationTTL is the default lifetime of a cached simulation.
const SimulationTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired entries
	// are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// SimulationKeyOpts are the search parameters that affect a simulation result.
type SimulationKeyOpts struct {
	Target       string  `json:"target"`
	Goal         string  `json:"goal"`
	MaxDepth     int     `json:"max_depth"`
	MaxPaths     int     `json:"max_paths"`
	MinInfluence float64 `json:"min_influence"`
	Top          int     `json:"top"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SimulationKey returns the key of a simulation over the dataset with
	// the given content hash.
	SimulationKey(datasetHash string, opts SimulationKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "simulation:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SimulationKey hashes the dataset hash together with every option.
func (DefaultKeyer) SimulationKey(datasetHash string, opts SimulationKeyOpts) string {
	return hashKey("simulation", datasetHash, opts)
}
