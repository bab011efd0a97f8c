package influence

import (
	"github.com/metasystem/steering/pkg/cyber"
	"github.com/metasystem/steering/pkg/graph"
)

// Path is one discovered chain of influence. Path[0] is the influencer and
// the last element is always the search target.
type Path struct {
	Path           []string             `json:"path"`
	PathNames      []string             `json:"path_names"`
	TotalStrength  float64              `json:"total_strength"`
	FeedbackTypes  []cyber.RelationType `json:"feedback_types"`
	CertaintyScore float64              `json:"certainty_score"`
	Depth          int                  `json:"depth"`
	IsFeedbackLoop bool                 `json:"is_feedback_loop"`
}

// Influencer returns the first node of the path.
func (p Path) Influencer() string {
	if len(p.Path) == 0 {
		return ""
	}
	return p.Path[0]
}

// step is a frontier item. Steps form a tree in an arena; a path is read by
// following parent links from a step back to the root.
type step struct {
	node      int
	edge      int // edge that reached node, -1 for the root
	parent    int // parent step, -1 for the root
	depth     int
	strength  float64
	certainty float64 // running sum of edge certainties
	loop      bool    // the chain has returned to the target
}

type search struct {
	g      *graph.Index
	target int
	limits Limits
	steps  []step
	paths  []Path
}

// FindPaths enumerates influence paths ending at targetID in breadth-first
// order. A path is flagged as a feedback loop when the target occurs in it
// more than once, wherever the repeat sits. An unknown target yields no paths. The goal is accepted for
// interface stability and does not affect the result.
func FindPaths(g *graph.Index, targetID string, goal cyber.SteeringGoal, limits Limits) []Path {
	target, ok := g.Lookup(targetID)
	if !ok || limits.MaxDepth <= 0 || limits.MaxPaths <= 0 {
		return nil
	}

	s := &search{g: g, target: target, limits: limits}
	s.steps = append(s.steps, step{node: target, edge: -1, parent: -1, strength: 1})
	s.run()
	return s.paths
}

func (s *search) run() {
	queue := []int{0}
	for head := 0; head < len(queue); head++ {
		cur := s.steps[queue[head]]
		curIdx := queue[head]

		for _, e := range s.g.Incoming(cur.node) {
			src := s.g.EdgeSource(e)
			if src != s.target && s.onPath(curIdx, src) {
				continue
			}

			edge := s.g.Edge(e)
			strength := cur.strength * edge.ImpactFactor
			if strength < s.limits.MinInfluence {
				continue
			}

			next := step{
				node:      src,
				edge:      e,
				parent:    curIdx,
				depth:     cur.depth + 1,
				strength:  strength,
				certainty: cur.certainty + edge.CertaintyScore,
				loop:      cur.loop || src == s.target,
			}
			s.steps = append(s.steps, next)
			nextIdx := len(s.steps) - 1
			s.paths = append(s.paths, s.record(nextIdx))

			if len(s.paths) >= s.limits.MaxPaths {
				return
			}
			if next.depth < s.limits.MaxDepth {
				queue = append(queue, nextIdx)
			}
		}
	}
}

// onPath reports whether node appears anywhere on the chain ending at step i.
func (s *search) onPath(i, node int) bool {
	for ; i >= 0; i = s.steps[i].parent {
		if s.steps[i].node == node {
			return true
		}
	}
	return false
}

// record materializes the chain ending at step i. Walking parent links
// already yields influencer-first order.
func (s *search) record(i int) Path {
	st := s.steps[i]
	n := st.depth + 1

	p := Path{
		Path:           make([]string, 0, n),
		PathNames:      make([]string, 0, n),
		FeedbackTypes:  make([]cyber.RelationType, 0, st.depth),
		TotalStrength:  st.strength,
		CertaintyScore: st.certainty / float64(st.depth),
		Depth:          st.depth,
		IsFeedbackLoop: st.loop,
	}
	for j := i; j >= 0; j = s.steps[j].parent {
		cur := s.steps[j]
		p.Path = append(p.Path, s.g.ID(cur.node))
		p.PathNames = append(p.PathNames, s.g.Name(cur.node))
		if cur.edge >= 0 {
			p.FeedbackTypes = append(p.FeedbackTypes, s.g.Edge(cur.edge).RelationType)
		}
	}
	return p
}
