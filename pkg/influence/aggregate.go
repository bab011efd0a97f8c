package influence

import (
	"slices"

	"github.com/metasystem/steering/pkg/cyber"
	"github.com/metasystem/steering/pkg/graph"
)

const (
	// PositiveFeedbackGain multiplies the feedback multiplier once per
	// positive_feedback edge.
	PositiveFeedbackGain = 1.5
	// NegativeFeedbackGain multiplies the feedback multiplier once per
	// negative_feedback edge.
	NegativeFeedbackGain = 0.7
)

// Node is the aggregate of every path headed by one influencer.
type Node struct {
	ObjectID           string  `json:"object_id"`
	ObjectName         string  `json:"object_name"`
	InfluenceStrength  float64 `json:"influence_strength"`
	PathCount          int     `json:"path_count"`
	FeedbackMultiplier float64 `json:"feedback_multiplier"`
	AvailablePower     float64 `json:"available_power"`
	CertaintyScore     float64 `json:"certainty_score"`
	ControlLeverage    float64 `json:"control_leverage"`
	Paths              []Path  `json:"paths"`
}

// FeedbackMultiplier folds relation types into a gain: ×1.5 for every
// positive_feedback and ×0.7 for every negative_feedback occurrence. Other
// relation types are neutral.
func FeedbackMultiplier(types []cyber.RelationType) float64 {
	m := 1.0
	for _, t := range types {
		switch t {
		case cyber.PositiveFeedback:
			m *= PositiveFeedbackGain
		case cyber.NegativeFeedback:
			m *= NegativeFeedbackGain
		}
	}
	return m
}

// ControlLeverage returns availablePower × influence × certainty, where
// influence already includes the feedback multiplier.
func ControlLeverage(availablePower, influence, certainty float64) float64 {
	return availablePower * influence * certainty
}

type group struct {
	id        string
	paths     []Path
	strength  float64
	certainty float64
}

// Aggregate groups paths by their first node and scores each group. Groups
// keep the order in which their influencer was first seen. Paths shorter
// than two nodes and groups whose influencer is not a registered object are
// dropped. The returned nodes own the paths passed in.
func Aggregate(paths []Path, g *graph.Index) []Node {
	var groups []*group
	byID := make(map[string]*group)

	for _, p := range paths {
		if len(p.Path) < 2 {
			continue
		}
		id := p.Path[0]
		grp, ok := byID[id]
		if !ok {
			grp = &group{id: id}
			byID[id] = grp
			groups = append(groups, grp)
		}
		grp.paths = append(grp.paths, p)
		grp.strength += p.TotalStrength
		grp.certainty += p.CertaintyScore
	}

	nodes := make([]Node, 0, len(groups))
	for _, grp := range groups {
		obj, ok := g.Object(grp.id)
		if !ok {
			continue
		}

		n := float64(len(grp.paths))
		strength := grp.strength / n
		certainty := grp.certainty / n

		var types []cyber.RelationType
		for _, p := range grp.paths {
			types = append(types, p.FeedbackTypes...)
		}
		fb := FeedbackMultiplier(types)
		power := obj.EnergyParams.AvailablePower

		nodes = append(nodes, Node{
			ObjectID:           grp.id,
			ObjectName:         obj.DisplayName(),
			InfluenceStrength:  strength,
			PathCount:          len(grp.paths),
			FeedbackMultiplier: fb,
			AvailablePower:     power,
			CertaintyScore:     certainty,
			ControlLeverage:    ControlLeverage(power, strength*fb, certainty),
			Paths:              grp.paths,
		})
	}
	return nodes
}

// Rank sorts nodes in place by descending control leverage and returns them.
// The sort is stable and NaN leverage compares equal to everything.
func Rank(nodes []Node) []Node {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		switch {
		case a.ControlLeverage > b.ControlLeverage:
			return -1
		case a.ControlLeverage < b.ControlLeverage:
			return 1
		}
		return 0
	})
	return nodes
}
