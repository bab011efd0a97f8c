// Package render draws influence rankings as node-link diagrams.
//
// [ToDOT] turns the ranked nodes of a search into Graphviz DOT source: the
// target, every ranked influencer and the intermediate objects on their
// paths. [RenderSVG] and [RenderPNG] lay the graph out with Graphviz
// (compiled in through go-graphviz, no system install needed).
//
//	nodes, _ := steering.FindInfluencePaths(objects, correlations, "law", "weaken")
//	dot := render.ToDOT("law", "Law", nodes, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(dot)
package render
