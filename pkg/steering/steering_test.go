package steering

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/influence"
)

func object(id, name string, power float64) cyber.Object {
	return cyber.Object{
		ID:                id,
		Name:              name,
		SystemClass:       cyber.AutonomousSystem,
		ControlSystemType: cyber.Ideological,
		EnergyParams:      cyber.EnergyParams{AvailablePower: power},
	}
}

func correlation(src, dst string, certainty, impact float64) cyber.Correlation {
	return cyber.Correlation{
		ID:             src + "-" + dst,
		SourceID:       src,
		TargetID:       dst,
		RelationType:   cyber.PositiveFeedback,
		CertaintyScore: certainty,
		ImpactFactor:   impact,
	}
}

// chain is media -> parliament -> law.
func chain() ([]cyber.Object, []cyber.Correlation) {
	return []cyber.Object{
			object("media", "Media", 10),
			object("parliament", "Parliament", 5),
			object("law", "Law", 1),
		}, []cyber.Correlation{
			correlation("parliament", "law", 0.9, 1.2),
			correlation("media", "parliament", 0.8, 1.1),
		}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseGoal(t *testing.T) {
	tests := []struct {
		in      string
		want    cyber.SteeringGoal
		wantErr bool
	}{
		{"strengthen", cyber.Strengthen, false},
		{"weaken", cyber.Weaken, false},
		{"Strengthen", "", true},
		{"", "", true},
		{"destroy", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGoal(tt.in)
			if tt.wantErr {
				if !apperrors.Is(err, apperrors.ErrCodeInvalidGoal) {
					t.Errorf("ParseGoal(%q) error = %v, want INVALID_GOAL", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseGoal(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestFindInfluencePaths(t *testing.T) {
	objects, correlations := chain()
	nodes, err := FindInfluencePaths(objects, correlations, "law", "strengthen")
	if err != nil {
		t.Fatalf("FindInfluencePaths: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].ObjectID != "media" || !near(nodes[0].ControlLeverage, 25.245) {
		t.Errorf("first node = %s (%.4f), want media (25.245)", nodes[0].ObjectID, nodes[0].ControlLeverage)
	}
	if nodes[1].ObjectID != "parliament" || !near(nodes[1].ControlLeverage, 8.1) {
		t.Errorf("second node = %s (%.4f), want parliament (8.1)", nodes[1].ObjectID, nodes[1].ControlLeverage)
	}
}

func TestFindInfluencePathsUnknownTarget(t *testing.T) {
	objects, correlations := chain()
	nodes, err := FindInfluencePaths(objects, correlations, "nobody", "weaken")
	if err != nil {
		t.Fatalf("unknown target should not fail: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("got %d nodes, want 0", len(nodes))
	}
}

func TestFindInfluencePathsInvalidGoal(t *testing.T) {
	objects, correlations := chain()
	_, err := FindInfluencePaths(objects, correlations, "law", "boost")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidGoal) {
		t.Errorf("error = %v, want INVALID_GOAL", err)
	}
}

func TestFindInfluencePathsJSON(t *testing.T) {
	objects, correlations := chain()
	objectsJSON, _ := json.Marshal(objects)
	correlationsJSON, _ := json.Marshal(correlations)

	data, err := FindInfluencePathsJSON(objectsJSON, correlationsJSON, "law", "strengthen")
	if err != nil {
		t.Fatalf("FindInfluencePathsJSON: %v", err)
	}

	var nodes []influence.Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(nodes) != 2 || nodes[0].ObjectID != "media" {
		t.Errorf("nodes = %+v", nodes)
	}
	if !strings.Contains(string(data), `"control_leverage"`) {
		t.Errorf("result should use snake_case keys: %s", data)
	}
}

func TestFindInfluencePathsJSONEmpty(t *testing.T) {
	data, err := FindInfluencePathsJSON([]byte(`[]`), []byte(`[]`), "law", "weaken")
	if err != nil {
		t.Fatalf("FindInfluencePathsJSON: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("got %s, want []", data)
	}
}

func TestFindInfluencePathsJSONErrors(t *testing.T) {
	tests := []struct {
		name         string
		objects      string
		correlations string
		goal         string
		wantCode     apperrors.Code
	}{
		{"BadGoal", `[]`, `[]`, "grow", apperrors.ErrCodeInvalidGoal},
		{"GoalCheckedFirst", `not json`, `[]`, "grow", apperrors.ErrCodeInvalidGoal},
		{"MalformedObjects", `[{`, `[]`, "weaken", apperrors.ErrCodeInvalidObject},
		{"InvalidObject", `[{"id":"a","system_class":"planet","control_system_type":"economic"}]`, `[]`, "weaken", apperrors.ErrCodeInvalidObject},
		{"MalformedCorrelations", `[]`, `{}`, "weaken", apperrors.ErrCodeInvalidCorrelation},
		{"InvalidCorrelation", `[]`, `[{"id":"r","source_id":"a","target_id":"b","relation_type":"gift"}]`, "weaken", apperrors.ErrCodeInvalidCorrelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindInfluencePathsJSON([]byte(tt.objects), []byte(tt.correlations), "law", tt.goal)
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
