package steering

import (
	"time"

	"github.com/google/uuid"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/graph"
	"github.com/metasystem/steering/pkg/influence"
)

// MaxReportedNodes caps the influential nodes embedded in a Simulation.
const MaxReportedNodes = 10

// Request describes one simulation.
type Request struct {
	Objects      []cyber.Object      `json:"objects"`
	Correlations []cyber.Correlation `json:"correlations"`
	TargetID     string              `json:"target_id"`
	Goal         string              `json:"goal"`

	// Top is the number of recommendations including the primary one.
	// Zero means influence.DefaultTop.
	Top int `json:"top,omitempty"`

	// Limits overrides the default search limits when set.
	Limits *influence.Limits `json:"limits,omitempty"`

	// Refresh skips the cache lookup in Runner.Simulate. The fresh result is
	// still stored.
	Refresh bool `json:"-"`
}

// Validate checks the goal, target id, limits and every entity. It returns
// the parsed goal and the effective limits.
func (r *Request) Validate() (cyber.SteeringGoal, influence.Limits, error) {
	goal, err := ParseGoal(r.Goal)
	if err != nil {
		return "", influence.Limits{}, err
	}
	if err := apperrors.ValidateID("target", r.TargetID); err != nil {
		return "", influence.Limits{}, err
	}
	if r.Top < 0 {
		return "", influence.Limits{}, apperrors.New(apperrors.ErrCodeInvalidInput, "top must not be negative, got %d", r.Top)
	}

	limits := influence.DefaultLimits()
	if r.Limits != nil {
		limits = *r.Limits
	}
	if err := limits.Validate(); err != nil {
		return "", influence.Limits{}, err
	}

	if err := cyber.ValidateObjects(r.Objects); err != nil {
		return "", influence.Limits{}, err
	}
	if err := cyber.ValidateCorrelations(r.Correlations); err != nil {
		return "", influence.Limits{}, err
	}
	return goal, limits, nil
}

// Metadata describes how a simulation was computed.
type Metadata struct {
	TotalPathsAnalyzed int     `json:"total_paths_analyzed"`
	MaxDepth           int     `json:"max_depth"`
	ComputationTimeMs  float64 `json:"computation_time_ms"`
}

// Simulation is the result of a steering simulation.
type Simulation struct {
	ID                         string                     `json:"id"`
	TargetObjectID             string                     `json:"target_object_id"`
	TargetObjectName           string                     `json:"target_object_name"`
	Goal                       cyber.SteeringGoal         `json:"goal"`
	InfluentialNodes           []influence.Node           `json:"influential_nodes"`
	PrimaryRecommendation      influence.Recommendation   `json:"primary_recommendation"`
	AlternativeRecommendations []influence.Recommendation `json:"alternative_recommendations"`
	Warnings                   []string                   `json:"warnings"`
	Metadata                   Metadata                   `json:"simulation_metadata"`
}

// Simulate validates req, runs the search and builds recommendations.
// The target must be a known object (OBJECT_NOT_FOUND otherwise).
func Simulate(req Request) (*Simulation, error) {
	goal, limits, err := req.Validate()
	if err != nil {
		return nil, err
	}
	return simulate(graph.Build(req.Objects, req.Correlations), req.TargetID, goal, limits, req.Top)
}

// simulate runs one simulation over a prepared index.
func simulate(g *graph.Index, targetID string, goal cyber.SteeringGoal, limits influence.Limits, top int) (*Simulation, error) {
	start := time.Now()

	target, ok := g.Object(targetID)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeObjectNotFound, "object %q does not exist", targetID)
	}

	nodes, pathCount := rank(g, targetID, goal, limits)
	recs := influence.Recommend(nodes, goal, top)

	if len(nodes) > MaxReportedNodes {
		nodes = nodes[:MaxReportedNodes]
	}

	return &Simulation{
		ID:                         uuid.NewString(),
		TargetObjectID:             targetID,
		TargetObjectName:           target.DisplayName(),
		Goal:                       goal,
		InfluentialNodes:           nodes,
		PrimaryRecommendation:      recs.Primary,
		AlternativeRecommendations: recs.Alternatives,
		Warnings:                   recs.Warnings,
		Metadata: Metadata{
			TotalPathsAnalyzed: pathCount,
			MaxDepth:           limits.MaxDepth,
			ComputationTimeMs:  float64(time.Since(start).Microseconds()) / 1000,
		},
	}, nil
}
