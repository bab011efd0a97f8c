package cyber

import (
	"fmt"
	"slices"
)

// SystemClass classifies an object by its autonomy.
type SystemClass string

const (
	AutonomousSystem   SystemClass = "autonomous_system"
	HeteronomousSystem SystemClass = "heteronomous_system"
	Environment        SystemClass = "environment"
	Tool               SystemClass = "tool"
)

// SystemClasses lists every valid SystemClass in declaration order.
var SystemClasses = []SystemClass{AutonomousSystem, HeteronomousSystem, Environment, Tool}

// Valid reports whether c is one of the declared classes.
func (c SystemClass) Valid() bool { return slices.Contains(SystemClasses, c) }

// ControlSystemType names the kind of norms an object is steered by.
type ControlSystemType string

const (
	Cognitive   ControlSystemType = "cognitive"
	Ideological ControlSystemType = "ideological"
	Ethical     ControlSystemType = "ethical"
	Economic    ControlSystemType = "economic"
)

// ControlSystemTypes lists every valid ControlSystemType in declaration order.
var ControlSystemTypes = []ControlSystemType{Cognitive, Ideological, Ethical, Economic}

// Valid reports whether t is one of the declared types.
func (t ControlSystemType) Valid() bool { return slices.Contains(ControlSystemTypes, t) }

// RelationType is the kind of control relation a correlation carries.
type RelationType string

const (
	DirectControl    RelationType = "direct_control"
	PositiveFeedback RelationType = "positive_feedback"
	NegativeFeedback RelationType = "negative_feedback"
	Supply           RelationType = "supply"
)

// RelationTypes lists every valid RelationType in declaration order.
var RelationTypes = []RelationType{DirectControl, PositiveFeedback, NegativeFeedback, Supply}

// Valid reports whether r is one of the declared relation types.
func (r RelationType) Valid() bool { return slices.Contains(RelationTypes, r) }

// SteeringGoal is the direction a simulation wants to push its target.
type SteeringGoal string

const (
	Strengthen SteeringGoal = "strengthen"
	Weaken     SteeringGoal = "weaken"
)

// Valid reports whether g is strengthen or weaken.
func (g SteeringGoal) Valid() bool { return g == Strengthen || g == Weaken }

// Verb returns the imperative used in recommendations ("strengthen", "weaken").
func (g SteeringGoal) Verb() string { return string(g) }

// ParseSteeringGoal converts a wire token into a SteeringGoal.
// Only the exact lowercase tokens "strengthen" and "weaken" are accepted.
func ParseSteeringGoal(s string) (SteeringGoal, error) {
	g := SteeringGoal(s)
	if !g.Valid() {
		return "", fmt.Errorf("invalid goal %q: must be 'strengthen' or 'weaken'", s)
	}
	return g, nil
}

// ParseRelationType converts a wire token into a RelationType.
func ParseRelationType(s string) (RelationType, error) {
	r := RelationType(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid relation type %q", s)
	}
	return r, nil
}

// EnergyParams is the energy profile of an object.
type EnergyParams struct {
	WorkingPower   float64 `json:"working_power" yaml:"working_power" toml:"working_power" bson:"working_power" validate:"gte=0"`
	IdlePower      float64 `json:"idle_power" yaml:"idle_power" toml:"idle_power" bson:"idle_power" validate:"gte=0"`
	AvailablePower float64 `json:"available_power" yaml:"available_power" toml:"available_power" bson:"available_power" validate:"gte=0"`
}

// Object is a node of the control graph.
type Object struct {
	ID                string            `json:"id" yaml:"id" toml:"id" bson:"id" validate:"required,max=256"`
	Name              string            `json:"name" yaml:"name" toml:"name" bson:"name"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" bson:"description,omitempty"`
	SystemClass       SystemClass       `json:"system_class" yaml:"system_class" toml:"system_class" bson:"system_class" validate:"required,system_class"`
	ControlSystemType ControlSystemType `json:"control_system_type" yaml:"control_system_type" toml:"control_system_type" bson:"control_system_type" validate:"required,control_system_type"`
	EnergyParams      EnergyParams      `json:"energy_params" yaml:"energy_params" toml:"energy_params" bson:"energy_params"`

	PowerV   float64 `json:"power_v" yaml:"power_v" toml:"power_v" bson:"power_v"`                                  // v - unit power
	QualityA float64 `json:"quality_a" yaml:"quality_a" toml:"quality_a" bson:"quality_a" validate:"gte=0,lte=1"` // a - quality/efficiency
	MassC    float64 `json:"mass_c" yaml:"mass_c" toml:"mass_c" bson:"mass_c"`                                      // c - quantity/mass

	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty" toml:"created_at,omitempty" bson:"created_at,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (o *Object) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}

// TotalPower returns v × a × c for the object.
func (o *Object) TotalPower() float64 {
	return TotalPower(o.PowerV, o.QualityA, o.MassC)
}

// Correlation is a directed control relation between two objects.
type Correlation struct {
	ID             string       `json:"id" yaml:"id" toml:"id" bson:"id" validate:"required,max=256"`
	SourceID       string       `json:"source_id" yaml:"source_id" toml:"source_id" bson:"source_id" validate:"required,max=256"`
	TargetID       string       `json:"target_id" yaml:"target_id" toml:"target_id" bson:"target_id" validate:"required,max=256"`
	RelationType   RelationType `json:"relation_type" yaml:"relation_type" toml:"relation_type" bson:"relation_type" validate:"required,relation_type"`
	CertaintyScore float64      `json:"certainty_score" yaml:"certainty_score" toml:"certainty_score" bson:"certainty_score"`
	ImpactFactor   float64      `json:"impact_factor" yaml:"impact_factor" toml:"impact_factor" bson:"impact_factor"`
	SourceName     string       `json:"source_name,omitempty" yaml:"source_name,omitempty" toml:"source_name,omitempty" bson:"source_name,omitempty"`
	CreatedAt      string       `json:"created_at,omitempty" yaml:"created_at,omitempty" toml:"created_at,omitempty" bson:"created_at,omitempty"`
}
