package cyber

import (
	"encoding/json"
	"math"
	"strconv"
)

// DistortionTolerance is the relative band around 1.0 inside which a
// distortion coefficient is considered neutral.
const DistortionTolerance = 0.05

// DistortionClass labels the direction of an information distortion.
type DistortionClass string

const (
	// Neutral means the coefficient lies within DistortionTolerance of 1.
	Neutral DistortionClass = "neutral"
	// Propaganda means the input information overstates reality (Z > 1).
	Propaganda DistortionClass = "propaganda"
	// Suppression means the input information understates reality (Z < 1).
	Suppression DistortionClass = "suppression"
)

// TotalPower returns the total power of a system, P = v × a × c.
//
// The product is deliberate: a system with no quality, no mass or no unit
// power has no power at all.
func TotalPower(v, a, c float64) float64 {
	return v * a * c
}

// AxiologicalIntegrity returns 1 - |v1 - v2| / 2 for two intent vectors in
// [-1, 1] (1 full approval, -1 full negation).
//
// 1.0 means both sources say the same thing, 0.5 means they are unrelated
// and 0.0 is an antinomy.
func AxiologicalIntegrity(v1, v2 float64) float64 {
	return 1 - math.Abs(v1-v2)/2
}

// Distortion returns the information distortion coefficient Z = iIn / iReal.
//
// When iReal is zero the result is 1.0 if iIn is also zero (no information,
// no distortion) and +Inf otherwise.
func Distortion(iIn, iReal float64) float64 {
	if iReal == 0 {
		if iIn == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return iIn / iReal
}

// DistortionAnalysis is the labelled result of [AnalyzeDistortion].
type DistortionAnalysis struct {
	Coefficient    float64         `json:"distortion_coefficient"`
	IsDistorted    bool            `json:"is_distorted"`
	Classification DistortionClass `json:"distortion_type"`
}

// AnalyzeDistortion computes [Distortion] and classifies it. Coefficients
// within DistortionTolerance of 1 are neutral; above the band is propaganda
// and below is suppression.
func AnalyzeDistortion(iIn, iReal float64) DistortionAnalysis {
	z := Distortion(iIn, iReal)

	distorted := math.Abs(z-1) > DistortionTolerance
	class := Neutral
	switch {
	case !distorted:
	case z > 1:
		class = Propaganda
	default:
		class = Suppression
	}

	return DistortionAnalysis{
		Coefficient:    z,
		IsDistorted:    distorted,
		Classification: class,
	}
}

// MarshalJSON encodes non-finite coefficients as the strings "+Inf", "-Inf"
// and "NaN", which encoding/json cannot represent as numbers.
func (d DistortionAnalysis) MarshalJSON() ([]byte, error) {
	type plain DistortionAnalysis
	if !math.IsInf(d.Coefficient, 0) && !math.IsNaN(d.Coefficient) {
		return json.Marshal(plain(d))
	}
	return json.Marshal(struct {
		Coefficient    string          `json:"distortion_coefficient"`
		IsDistorted    bool            `json:"is_distorted"`
		Classification DistortionClass `json:"distortion_type"`
	}{
		Coefficient:    strconv.FormatFloat(d.Coefficient, 'g', -1, 64),
		IsDistorted:    d.IsDistorted,
		Classification: d.Classification,
	})
}
