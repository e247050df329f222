package tonal

import (
	"github.com/beatlab/trackmeta/algorithms/chroma"
	"github.com/beatlab/trackmeta/algorithms/common"
	"github.com/beatlab/trackmeta/theory"
)

// Krumhansl-Kessler key profiles: per-pitch-class weights (relative to the
// tonic at index 0) derived from listener probe-tone ratings. A chroma
// vector is scored against each profile at all 12 rotations.
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// KeyEstimationParams tune the profile scoring.
type KeyEstimationParams struct {
	// NormalizationScale divides the best profile score to produce a
	// confidence in [0,1]. Empirically chosen; treat as a tunable, not
	// a law.
	NormalizationScale float64 `json:"normalization_scale"`
}

// DefaultKeyEstimationParams returns the standard scoring parameters.
func DefaultKeyEstimationParams() KeyEstimationParams {
	return KeyEstimationParams{NormalizationScale: 100.0}
}

// KeyEstimationResult is the outcome of scoring one chroma vector.
type KeyEstimationResult struct {
	Key        theory.Key `json:"key"`
	Confidence float64    `json:"confidence"`
	Score      float64    `json:"score"`  // raw best dot product
	Scores     []float64  `json:"scores"` // all 24 scores: 12 major then 12 minor
}

// KeyEstimator estimates a musical key from chroma vectors by profile
// correlation.
type KeyEstimator struct {
	params KeyEstimationParams
}

// NewKeyEstimator creates a key estimator with default parameters.
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{params: DefaultKeyEstimationParams()}
}

// NewKeyEstimatorWithParams creates a key estimator with custom parameters.
func NewKeyEstimatorWithParams(params KeyEstimationParams) *KeyEstimator {
	if params.NormalizationScale <= 0 {
		params.NormalizationScale = DefaultKeyEstimationParams().NormalizationScale
	}
	return &KeyEstimator{params: params}
}

// EstimateKey scores the chroma vector against both mode profiles at all
// 12 rotations and returns the winner. A vector with no contributing
// frames falls back to C major at confidence 0.1: silence has no key,
// but the pipeline contract is to always produce one.
func (ke *KeyEstimator) EstimateKey(vec chroma.Vector) KeyEstimationResult {
	if vec.Frames == 0 || len(vec.Values) != 12 {
		return KeyEstimationResult{
			Key:        theory.Key{Tonic: 0, Mode: theory.KeyModeMajor},
			Confidence: 0.1,
		}
	}

	scores := make([]float64, 24)
	for tonic := 0; tonic < 12; tonic++ {
		scores[tonic] = correlate(vec.Values, majorProfile, tonic)
		scores[tonic+12] = correlate(vec.Values, minorProfile, tonic)
	}

	bestIdx := common.MaxIndex(scores)
	bestScore := scores[bestIdx]
	best := theory.Key{Tonic: theory.PitchClass(bestIdx % 12), Mode: theory.KeyModeMajor}
	if bestIdx >= 12 {
		best.Mode = theory.KeyModeMinor
	}

	return KeyEstimationResult{
		Key:        best,
		Confidence: common.Clamp(bestScore/ke.params.NormalizationScale, 0.0, 1.0),
		Score:      bestScore,
		Scores:     scores,
	}
}

// correlate computes the dot product between a chroma vector and a key
// profile rotated to the candidate tonic: chroma bin pc lines up with
// profile index (pc - tonic) mod 12.
func correlate(chromaValues, profile []float64, tonic int) float64 {
	score := 0.0
	for pc, energy := range chromaValues {
		score += energy * profile[(pc-tonic+12)%12]
	}
	return score
}
