package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or tenants
// can share one Redis or Mongo backend without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SimulationKey generates a prefixed key for simulation caching.
func (k *ScopedKeyer) SimulationKey(datasetHash string, opts SimulationKeyOpts) string {
	return k.prefix + k.inner.SimulationKey(datasetHash, opts)
}
