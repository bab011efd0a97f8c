// Package influence discovers and ranks chains of control influence that
// lead to a target object.
//
// # Search
//
// [FindPaths] runs a bounded breadth-first search over the reverse adjacency
// of a [graph.Index], walking "what influences this node" edges away from the
// target. Every surviving edge records one [Path], stored influencer first and
// target last:
//
//	g := graph.Build(objects, correlations)
//	paths := influence.FindPaths(g, "c", cyber.Strengthen, influence.DefaultLimits())
//	nodes := influence.Rank(influence.Aggregate(paths, g))
//
// Strength is the product of impact factors along the chain. An edge whose
// cumulative strength drops below [Limits.MinInfluence] is discarded. The
// comparison is signed, so a negative impact factor prunes the chain even
// when its magnitude is large.
//
// A source already present on the current path is skipped, except when it is
// the target itself: that edge closes a feedback loop. The resulting path and
// every extension of it are flagged [Path.IsFeedbackLoop]. There is no global
// visited set, so the same node can head many distinct paths at different
// depths.
//
// Search stops expanding at [Limits.MaxDepth] and halts as soon as
// [Limits.MaxPaths] paths have been recorded, in breadth-first order with
// edges visited in insertion order.
//
// # Aggregation
//
// [Aggregate] groups paths by their first node and computes one [Node] per
// group:
//
//	influence_strength = mean(total_strength)
//	certainty_score    = mean(certainty_score)
//	feedback_multiplier = 1.5^positive × 0.7^negative
//	control_leverage   = available_power × influence_strength × feedback_multiplier × certainty_score
//
// [Rank] orders the result by descending leverage.
//
// # Goal
//
// The steering goal is carried through the API but does not change discovery
// or scoring. It only selects the verb used by [Recommend].
package influence
