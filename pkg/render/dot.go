package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/metasystem/steering/pkg/cyber"
	"github.com/metasystem/steering/pkg/influence"
)

// Options configures influence diagram rendering.
type Options struct {
	// Detailed adds influence, certainty and path counts to influencer labels.
	// When false, only the name and leverage are shown.
	Detailed bool

	// MaxNodes limits the influencers drawn, highest leverage first.
	// Zero draws every node.
	MaxNodes int
}

type dotEdge struct {
	from, to string
	rel      cyber.RelationType
}

// ToDOT converts ranked influencers and their paths into Graphviz DOT.
// The target is drawn as a double octagon, influencers carry their leverage,
// and every edge is labelled with its relation type. Edges of feedback loops
// are dashed. The result can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(targetID, targetName string, nodes []influence.Node, opts Options) string {
	if opts.MaxNodes > 0 && len(nodes) > opts.MaxNodes {
		nodes = nodes[:opts.MaxNodes]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if targetName == "" {
		targetName = targetID
	}
	// A target that steers itself through a loop keeps its target styling
	// and carries its leverage in the label.
	targetLabel := targetName
	for _, n := range nodes {
		if n.ObjectID == targetID {
			targetLabel = fmtLabel(n, opts.Detailed)
			break
		}
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=doubleoctagon, fillcolor=lightyellow];\n", targetID, targetLabel)

	names := map[string]string{targetID: targetName}
	for _, n := range nodes {
		if n.ObjectID == targetID {
			continue
		}
		names[n.ObjectID] = n.ObjectName
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.ObjectID, fmtLabel(n, opts.Detailed), leverageColor(n, nodes))
	}

	// Intermediate objects that are not ranked themselves.
	var edges []dotEdge
	seen := make(map[dotEdge]bool)
	loops := make(map[dotEdge]bool)
	for _, n := range nodes {
		for _, p := range n.Paths {
			for i := 0; i+1 < len(p.Path); i++ {
				if _, ok := names[p.Path[i]]; !ok {
					names[p.Path[i]] = p.PathNames[i]
					fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=whitesmoke];\n", p.Path[i], p.PathNames[i])
				}
				e := dotEdge{from: p.Path[i], to: p.Path[i+1], rel: p.FeedbackTypes[i]}
				if p.IsFeedbackLoop {
					loops[e] = true
				}
				if !seen[e] {
					seen[e] = true
					edges = append(edges, e)
				}
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		attrs := []string{fmt.Sprintf("label=%q", e.rel)}
		if loops[e] {
			attrs = append(attrs, "style=dashed")
		}
		if e.rel == cyber.NegativeFeedback {
			attrs = append(attrs, "color=firebrick")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.from, e.to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n influence.Node, detailed bool) string {
	label := fmt.Sprintf("%s\nleverage: %.2f", n.ObjectName, n.ControlLeverage)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\ninfluence: %.2f\ncertainty: %.2f\npaths: %d",
		label, n.InfluenceStrength, n.CertaintyScore, n.PathCount)
}

// leverageColor shades the strongest influencer darkest.
func leverageColor(n influence.Node, nodes []influence.Node) string {
	top := nodes[0].ControlLeverage
	if top <= 0 || n.ControlLeverage <= 0 {
		return "white"
	}
	switch r := n.ControlLeverage / top; {
	case r >= 0.75:
		return "lightcoral"
	case r >= 0.4:
		return "lightsalmon"
	default:
		return "mistyrose"
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
