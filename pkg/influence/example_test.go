package influence_test

import (
	"fmt"

	"github.com/metasystem/steering/pkg/cyber"
	"github.com/metasystem/steering/pkg/graph"
	"github.com/metasystem/steering/pkg/influence"
)

func Example() {
	objects := []cyber.Object{
		{ID: "a", Name: "Media", EnergyParams: cyber.EnergyParams{AvailablePower: 10}},
		{ID: "b", Name: "Parliament", EnergyParams: cyber.EnergyParams{AvailablePower: 5}},
		{ID: "c", Name: "Law"},
	}
	correlations := []cyber.Correlation{
		{ID: "r1", SourceID: "b", TargetID: "c", RelationType: cyber.PositiveFeedback, CertaintyScore: 0.9, ImpactFactor: 1.2},
		{ID: "r2", SourceID: "a", TargetID: "b", RelationType: cyber.PositiveFeedback, CertaintyScore: 0.8, ImpactFactor: 1.1},
	}

	g := graph.Build(objects, correlations)
	paths := influence.FindPaths(g, "c", cyber.Strengthen, influence.DefaultLimits())
	for _, n := range influence.Rank(influence.Aggregate(paths, g)) {
		fmt.Printf("%-10s leverage=%.3f paths=%d\n", n.ObjectName, n.ControlLeverage, n.PathCount)
	}
	// Output:
	// Media      leverage=25.245 paths=1
	// Parliament leverage=8.100 paths=1
}

func ExampleFeedbackMultiplier() {
	m := influence.FeedbackMultiplier([]cyber.RelationType{
		cyber.PositiveFeedback,
		cyber.PositiveFeedback,
		cyber.NegativeFeedback,
	})
	fmt.Printf("%.3f\n", m)
	// Output: 1.575
}

func ExampleControlLeverage() {
	fmt.Printf("%.1f\n", influence.ControlLeverage(10, 0.5, 0.8))
	// Output: 4.0
}
