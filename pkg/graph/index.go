package graph

import (
	"github.com/metasystem/steering/pkg/cyber"
)

// Node is an arena slot of the index. Object is nil for placeholder nodes,
// which exist only as the unregistered source of an indexed edge.
type Node struct {
	ID     string
	Object *cyber.Object
}

// IsPlaceholder reports whether the node has no backing object.
func (n Node) IsPlaceholder() bool { return n.Object == nil }

// Index is the forward and reverse adjacency of a control graph.
//
// The zero value is an empty graph; use [Build] to create a populated one.
type Index struct {
	nodes  []Node
	lookup map[string]int

	edges []cyber.Correlation
	from  []int // edge -> source node
	to    []int // edge -> target node

	outgoing [][]int // node -> edge indices, keyed by source
	incoming [][]int // node -> edge indices, keyed by target

	objects int
}

// Build indexes objects and correlations. It never fails: duplicate object
// ids are resolved by last write wins and dangling correlation endpoints are
// dropped from the adjacency list they dangle on.
func Build(objects []cyber.Object, correlations []cyber.Correlation) *Index {
	g := &Index{
		nodes:    make([]Node, 0, len(objects)),
		lookup:   make(map[string]int, len(objects)),
		edges:    make([]cyber.Correlation, 0, len(correlations)),
		from:     make([]int, 0, len(correlations)),
		to:       make([]int, 0, len(correlations)),
		outgoing: make([][]int, 0, len(objects)),
		incoming: make([][]int, 0, len(objects)),
	}

	for i := range objects {
		obj := objects[i]
		if idx, ok := g.lookup[obj.ID]; ok {
			g.nodes[idx].Object = &obj
			continue
		}
		g.addNode(obj.ID, &obj)
		g.objects++
	}

	for _, c := range correlations {
		src, srcOK := g.registered(c.SourceID)
		dst, dstOK := g.registered(c.TargetID)
		if !srcOK && !dstOK {
			continue
		}
		if !srcOK {
			src = g.placeholder(c.SourceID)
		}
		if !dstOK {
			dst = g.placeholder(c.TargetID)
		}

		e := len(g.edges)
		g.edges = append(g.edges, c)
		g.from = append(g.from, src)
		g.to = append(g.to, dst)

		if srcOK {
			g.outgoing[src] = append(g.outgoing[src], e)
		}
		if dstOK {
			g.incoming[dst] = append(g.incoming[dst], e)
		}
	}

	return g
}

func (g *Index) addNode(id string, obj *cyber.Object) int {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Object: obj})
	g.outgoing = append(g.outgoing, nil)
	g.incoming = append(g.incoming, nil)
	g.lookup[id] = idx
	return idx
}

// registered returns the node index of id if id belongs to an object.
func (g *Index) registered(id string) (int, bool) {
	idx, ok := g.lookup[id]
	if !ok || g.nodes[idx].Object == nil {
		return 0, false
	}
	return idx, true
}

func (g *Index) placeholder(id string) int {
	if idx, ok := g.lookup[id]; ok {
		return idx
	}
	return g.addNode(id, nil)
}

// Lookup returns the arena index of the node with the given id. Placeholder
// nodes are found as well; use [Index.Object] to require a registered object.
func (g *Index) Lookup(id string) (int, bool) {
	idx, ok := g.lookup[id]
	return idx, ok
}

// Node returns the node at arena index i.
func (g *Index) Node(i int) Node { return g.nodes[i] }

// ID returns the id of the node at arena index i.
func (g *Index) ID(i int) string { return g.nodes[i].ID }

// Name returns the display name of node i, falling back to its id for
// placeholders and objects without a name.
func (g *Index) Name(i int) string {
	if obj := g.nodes[i].Object; obj != nil {
		return obj.DisplayName()
	}
	return g.nodes[i].ID
}

// Object returns the registered object with the given id.
func (g *Index) Object(id string) (*cyber.Object, bool) {
	idx, ok := g.registered(id)
	if !ok {
		return nil, false
	}
	return g.nodes[idx].Object, true
}

// Objects returns the registered objects in first-registration order.
func (g *Index) Objects() []cyber.Object {
	out := make([]cyber.Object, 0, g.objects)
	for _, n := range g.nodes {
		if n.Object != nil {
			out = append(out, *n.Object)
		}
	}
	return out
}

// Incoming returns the edge indices whose target is node i, in insertion
// order. The slice must not be modified.
func (g *Index) Incoming(i int) []int { return g.incoming[i] }

// Outgoing returns the edge indices whose source is node i, in insertion
// order. The slice must not be modified.
func (g *Index) Outgoing(i int) []int { return g.outgoing[i] }

// Edge returns the correlation stored at edge index e.
func (g *Index) Edge(e int) *cyber.Correlation { return &g.edges[e] }

// EdgeSource returns the node index of the source of edge e.
func (g *Index) EdgeSource(e int) int { return g.from[e] }

// EdgeTarget returns the node index of the target of edge e.
func (g *Index) EdgeTarget(e int) int { return g.to[e] }

// In returns the correlations influencing the node with the given id.
func (g *Index) In(id string) []cyber.Correlation {
	idx, ok := g.lookup[id]
	if !ok {
		return nil
	}
	return g.collect(g.incoming[idx])
}

// Out returns the correlations the node with the given id exerts.
func (g *Index) Out(id string) []cyber.Correlation {
	idx, ok := g.lookup[id]
	if !ok {
		return nil
	}
	return g.collect(g.outgoing[idx])
}

func (g *Index) collect(edges []int) []cyber.Correlation {
	if len(edges) == 0 {
		return nil
	}
	out := make([]cyber.Correlation, len(edges))
	for i, e := range edges {
		out[i] = g.edges[e]
	}
	return out
}

// NodeCount returns the number of arena nodes, placeholders included.
func (g *Index) NodeCount() int { return len(g.nodes) }

// ObjectCount returns the number of distinct registered objects.
func (g *Index) ObjectCount() int { return g.objects }

// EdgeCount returns the number of indexed correlations.
func (g *Index) EdgeCount() int { return len(g.edges) }
