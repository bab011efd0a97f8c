// Package graph indexes cybernetic objects and their correlations for
// influence search.
//
// # Overview
//
// An [Index] is built once from a set of [cyber.Object] values and a set of
// [cyber.Correlation] values, and is read-only afterwards. Nodes and edges
// live in arenas addressed by int, so a search can carry small integer
// handles through its frontier instead of id strings:
//
//	g := graph.Build(objects, correlations)
//	c, _ := g.Lookup("target")
//	for _, e := range g.Incoming(c) {
//	    src := g.EdgeSource(e)
//	    fmt.Println(g.Name(src), g.Edge(e).ImpactFactor)
//	}
//
// # Adjacency
//
// Every correlation is indexed twice: in the forward list of its source and
// in the reverse list of its target. An edge is appended to a list only when
// that list's key was registered as an object, so correlations pointing at
// unknown ids are silently dropped from the side they dangle on. Insertion
// order inside each list follows the order of the input correlations.
//
// When a registered target is influenced by an unregistered source, the edge
// is kept in the target's reverse list and the source becomes a placeholder
// node: it has an id and a name (the id itself) but no object and no
// adjacency of its own.
//
// # Duplicates
//
// Objects with duplicate ids do not fail the build: the last one wins and
// keeps the arena slot of the first.
//
// # Concurrency
//
// An Index is immutable after [Build] and safe to share between goroutines.
package graph
