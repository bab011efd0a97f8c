// Package cyber defines the cybernetic object model: objects (nodes),
// correlations (directed control relations), their closed enumerations, and
// the scalar formulas of the power and information model.
//
// # Objects and Correlations
//
// An [Object] is a system that can steer or be steered. It carries a
// [SystemClass], a [ControlSystemType], an [EnergyParams] profile and the
// three power parameters v (unit power), a (quality, 0..1) and c (mass).
//
// A [Correlation] is a directed edge from SourceID to TargetID with a
// [RelationType], a certainty score and a signed impact factor that scales
// influence propagated across it.
//
// Both types are immutable values once handed to the graph index. They encode
// to JSON, YAML, TOML and BSON with snake_case field names and the lowercase
// enumeration tokens used on the wire:
//
//	{
//	  "id": "b",
//	  "source_id": "a",
//	  "target_id": "b",
//	  "relation_type": "positive_feedback",
//	  "certainty_score": 0.8,
//	  "impact_factor": 1.1
//	}
//
// Use [ValidateObjects] and [ValidateCorrelations] on decoded payloads; they
// report the first offending element with its index and id.
//
// # Formulas
//
//   - [TotalPower]: P = v × a × c (a zero in any factor collapses power)
//   - [AxiologicalIntegrity]: 1 - |v1 - v2| / 2 for intent vectors in [-1, 1]
//   - [Distortion]: I_in / I_real, 1 for 0/0 and +Inf for x/0
//   - [AnalyzeDistortion]: coefficient plus a neutral/propaganda/suppression
//     label using a 5% tolerance band around 1
package cyber
