// Package quantum maps a query FeatureSet onto a unit-normalized state
// vector and derives a qubit estimate and readiness score. The mapping is a
// stylistic analogy to quantum state preparation, not a resource calculation
// for any real quantum device.
package quantum

import (
	"math"

	"github.com/V-Rytham/DBeyond/internal/domain"
	"github.com/V-Rytham/DBeyond/pkg/qmath"
)

// StateDimension is the fixed length of the prepared state vector:
// six feature indicators followed by the raw complexity score.
const StateDimension = 7

// minQubits is the floor returned for degenerate (<=1) dimensionalities.
const minQubits = 1

// StatePrep is the result of preparing one FeatureSet.
type StatePrep struct {
	// StateVector has L2 norm 1 unless every component is zero, in which
	// case the zero vector is returned as the defined fallback.
	StateVector []float64 `json:"state_vector"`

	// QubitEstimate is ceil(log2(StateDimension)), floored at minQubits.
	// A naming heuristic only.
	QubitEstimate int `json:"qubit_estimate"`

	// ReadinessScore is the normalized entropy of the state vector in
	// [0, 1]; more uniform vectors score higher.
	ReadinessScore float64 `json:"readiness_score"`
}

// Preparer converts FeatureSets to StatePreps. Stateless; safe for
// concurrent use.
type Preparer struct{}

// NewPreparer creates a preparer.
func NewPreparer() *Preparer {
	return &Preparer{}
}

// Prepare maps fs onto the state vector in the fixed component order
// [join, subquery, aggregation, group_by, having, window, score], with
// booleans as 1.0/0.0 and the complexity score raw, then L2-normalizes.
// Deterministic; identical FeatureSets produce identical results.
func (p *Preparer) Prepare(fs domain.FeatureSet) StatePrep {
	raw := composeVector(fs)
	state := qmath.Normalize(raw)

	return StatePrep{
		StateVector:    state,
		QubitEstimate:  EstimateQubits(StateDimension),
		ReadinessScore: readiness(state),
	}
}

// EstimateQubits returns the heuristic qubit count for a state vector of
// the given dimensionality: ceil(log2(dim)) for dim > 1, else minQubits.
// Non-decreasing in dim.
func EstimateQubits(dim int) int {
	if dim <= 1 {
		return minQubits
	}
	return qmath.Log2Ceil(dim)
}

// composeVector lays out the feature components in their documented order.
func composeVector(fs domain.FeatureSet) []float64 {
	v := make([]float64, 0, StateDimension)
	v = append(v, boolComponent(fs.HasJoin))
	v = append(v, boolComponent(fs.HasSubquery))
	v = append(v, boolComponent(fs.HasAggregation))
	v = append(v, boolComponent(fs.HasGroupBy))
	v = append(v, boolComponent(fs.HasHaving))
	v = append(v, boolComponent(fs.HasWindowFunction))
	v = append(v, float64(fs.ComplexityScore))
	return v
}

// boolComponent maps a feature indicator to its 1.0/0.0 vector component.
func boolComponent(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// readiness scores how uniform the state vector is: entropy over the
// components divided by the maximum possible entropy, clamped to [0, 1].
func readiness(state []float64) float64 {
	if len(state) < 2 {
		return 0
	}
	maxEntropy := math.Log2(float64(len(state)))
	return qmath.Clamp(qmath.EntropyBits(state)/maxEntropy, 0, 1)
}
