package influence

import (
	"math"

	apperrors "github.com/metasystem/steering/pkg/errors"
)

const (
	// MaxDepth is the default maximum number of edges in a path.
	MaxDepth = 5
	// MaxPaths is the default cap on recorded paths per search.
	MaxPaths = 100
	// MinInfluenceThreshold is the default signed strength below which an edge
	// is pruned.
	MinInfluenceThreshold = 0.1
)

// Limits bounds a single search.
type Limits struct {
	MaxDepth     int     `json:"max_depth" toml:"max_depth" validate:"gt=0"`
	MaxPaths     int     `json:"max_paths" toml:"max_paths" validate:"gt=0"`
	MinInfluence float64 `json:"min_influence" toml:"min_influence"`
}

// DefaultLimits returns MaxDepth, MaxPaths and MinInfluenceThreshold.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:     MaxDepth,
		MaxPaths:     MaxPaths,
		MinInfluence: MinInfluenceThreshold,
	}
}

// Validate rejects non-positive depth or path caps and a NaN threshold.
func (l Limits) Validate() error {
	if l.MaxDepth <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidLimits, "max depth must be positive, got %d", l.MaxDepth)
	}
	if l.MaxPaths <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidLimits, "max paths must be positive, got %d", l.MaxPaths)
	}
	if math.IsNaN(l.MinInfluence) {
		return apperrors.New(apperrors.ErrCodeInvalidLimits, "min influence must be a number")
	}
	return nil
}
