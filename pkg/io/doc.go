// Package io reads and writes control-graph datasets.
//
// # Overview
//
// A [Dataset] bundles the objects and correlations of one graph. It can be
// stored as JSON, YAML or TOML; the format is chosen from the file extension
// by [FormatFromPath]:
//
//	.json         JSON (also the default for readers without a path)
//	.yaml, .yml   YAML
//	.toml         TOML
//
// # JSON Format
//
//	{
//	  "objects": [
//	    {
//	      "id": "gov",
//	      "name": "Government",
//	      "system_class": "autonomous_system",
//	      "control_system_type": "ideological",
//	      "energy_params": {"working_power": 50, "idle_power": 10, "available_power": 40},
//	      "power_v": 100, "quality_a": 0.8, "mass_c": 10
//	    }
//	  ],
//	  "correlations": [
//	    {
//	      "id": "r1", "source_id": "media", "target_id": "gov",
//	      "relation_type": "positive_feedback",
//	      "certainty_score": 0.9, "impact_factor": 1.2
//	    }
//	  ]
//	}
//
// YAML and TOML use the same snake_case keys; TOML datasets are arrays of
// tables ([[objects]] and [[correlations]]).
//
// # Separate Payloads
//
// [ReadObjects] and [ReadCorrelations] decode the two bare JSON arrays used
// by the library boundary, where objects and correlations arrive separately.
//
// # Errors
//
// Decoding failures are reported as INVALID_FORMAT, INVALID_OBJECT or
// INVALID_CORRELATION errors from pkg/errors. Validation failures name the
// index and id of the offending element. A missing file is FILE_NOT_FOUND.
package io
