package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/metasystem/steering/pkg/cyber"
	"github.com/metasystem/steering/pkg/influence"
)

func sampleNodes() []influence.Node {
	return []influence.Node{
		{
			ObjectID: "media", ObjectName: "Media", ControlLeverage: 25.245, PathCount: 1,
			Paths: []influence.Path{{
				Path:          []string{"media", "parliament", "law"},
				PathNames:     []string{"Media", "Parliament", "Law"},
				FeedbackTypes: []cyber.RelationType{cyber.PositiveFeedback, cyber.DirectControl},
				Depth:         2,
			}},
		},
		{
			ObjectID: "law", ObjectName: "Law", ControlLeverage: 2, PathCount: 1,
			Paths: []influence.Path{{
				Path:           []string{"law", "court", "law"},
				PathNames:      []string{"Law", "Court", "Law"},
				FeedbackTypes:  []cyber.RelationType{cyber.NegativeFeedback, cyber.Supply},
				Depth:          2,
				IsFeedbackLoop: true,
			}},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT("law", "Law", sampleNodes(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"law" [label="Law\nleverage: 2.00", shape=doubleoctagon, fillcolor=lightyellow]`,
		`"media" [label="Media\nleverage: 25.25", fillcolor="lightcoral"]`,
		`"parliament" [label="Parliament", fillcolor=whitesmoke]`,
		`"media" -> "parliament" [label="positive_feedback"]`,
		`"parliament" -> "law" [label="direct_control"]`,
		`"law" -> "court" [label="negative_feedback", style=dashed, color=firebrick]`,
		`"court" -> "law" [label="supply", style=dashed]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	decls := regexp.MustCompile(`(?m)^  "law" \[label=`).FindAllString(dot, -1)
	if len(decls) != 1 {
		t.Errorf("target declared %d times, want once:\n%s", len(decls), dot)
	}
}

func TestToDOTOptions(t *testing.T) {
	t.Run("Detailed", func(t *testing.T) {
		dot := ToDOT("law", "Law", sampleNodes(), Options{Detailed: true})
		if !strings.Contains(dot, `paths: 1`) {
			t.Errorf("detailed label missing path count:\n%s", dot)
		}
	})

	t.Run("MaxNodes", func(t *testing.T) {
		dot := ToDOT("law", "Law", sampleNodes(), Options{MaxNodes: 1})
		if strings.Contains(dot, "court") {
			t.Errorf("truncated diagram should not include the second node's path:\n%s", dot)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		dot := ToDOT("law", "", nil, Options{})
		if !strings.Contains(dot, `"law" [label="law"`) || strings.Contains(dot, "->") {
			t.Errorf("empty ranking should draw only the target:\n%s", dot)
		}
	})
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT("law", "Law", sampleNodes(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Parliament") {
		t.Errorf("unexpected SVG output:\n%s", svg)
	}
}
