package steering

import (
	"bytes"
	"encoding/json"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/graph"
	"github.com/metasystem/steering/pkg/influence"
	stio "github.com/metasystem/steering/pkg/io"
)

// ParseGoal converts a goal token into a SteeringGoal, failing with
// INVALID_GOAL.
func ParseGoal(goal string) (cyber.SteeringGoal, error) {
	g, err := cyber.ParseSteeringGoal(goal)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidGoal, err, "invalid steering goal")
	}
	return g, nil
}

// FindInfluencePaths builds the graph, searches for influence paths towards
// targetID with the default limits and returns the aggregated nodes ranked by
// descending control leverage.
func FindInfluencePaths(objects []cyber.Object, correlations []cyber.Correlation, targetID, goal string) ([]influence.Node, error) {
	g, err := ParseGoal(goal)
	if err != nil {
		return nil, err
	}
	nodes, _ := rank(graph.Build(objects, correlations), targetID, g, influence.DefaultLimits())
	return nodes, nil
}

// FindInfluencePathsJSON is FindInfluencePaths over JSON payloads. The
// objects and correlations are decoded and validated before any graph work;
// the result is the JSON array of ranked nodes.
func FindInfluencePathsJSON(objectsJSON, correlationsJSON []byte, targetID, goal string) ([]byte, error) {
	g, err := ParseGoal(goal)
	if err != nil {
		return nil, err
	}

	objects, err := stio.ReadObjects(bytes.NewReader(objectsJSON))
	if err != nil {
		return nil, err
	}
	correlations, err := stio.ReadCorrelations(bytes.NewReader(correlationsJSON))
	if err != nil {
		return nil, err
	}

	nodes, _ := rank(graph.Build(objects, correlations), targetID, g, influence.DefaultLimits())
	if nodes == nil {
		nodes = []influence.Node{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to serialize result")
	}
	return data, nil
}

// rank runs search, aggregation and ranking. It also returns the number of
// paths discovered.
func rank(g *graph.Index, targetID string, goal cyber.SteeringGoal, limits influence.Limits) ([]influence.Node, int) {
	paths := influence.FindPaths(g, targetID, goal, limits)
	return influence.Rank(influence.Aggregate(paths, g)), len(paths)
}
