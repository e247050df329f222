package temporal

import (
	"math"

	"github.com/beatlab/trackmeta/algorithms/common"
)

// TempoEstimationParams tune the onset-based tempo estimator.
type TempoEstimationParams struct {
	FrameSize   int     `json:"frame_size"`
	HopSize     int     `json:"hop_size"`
	EnergyFloor float64 `json:"energy_floor"` // minimum frame energy for an onset
	MinOnsets   int     `json:"min_onsets"`   // fewer than this falls back to the default

	// Median inter-onset intervals outside [MinInterval, MaxInterval]
	// seconds are rejected before the final BPM bounds check.
	MinInterval float64 `json:"min_interval"`
	MaxInterval float64 `json:"max_interval"`

	MinBPM int `json:"min_bpm"`
	MaxBPM int `json:"max_bpm"`

	DefaultBPM        int     `json:"default_bpm"`
	DefaultConfidence float64 `json:"default_confidence"`
	SuccessConfidence float64 `json:"success_confidence"`
}

// DefaultTempoEstimationParams returns the standard estimator tuning.
func DefaultTempoEstimationParams() TempoEstimationParams {
	return TempoEstimationParams{
		FrameSize:         1024,
		HopSize:           512,
		EnergyFloor:       0.01,
		MinOnsets:         4,
		MinInterval:       0.25,
		MaxInterval:       1.5,
		MinBPM:            60,
		MaxBPM:            200,
		DefaultBPM:        120,
		DefaultConfidence: 0.3,
		SuccessConfidence: 0.7,
	}
}

// TempoEstimationResult carries a BPM estimate and its confidence.
type TempoEstimationResult struct {
	BPM        int     `json:"bpm"`
	Confidence float64 `json:"confidence"`
	Onsets     int     `json:"onsets"` // onset candidates found
}

// TempoEstimator derives tempo from the spacing of energy onsets. It never
// fails: signals it cannot read rhythmically come back as the default BPM
// at low confidence.
type TempoEstimator struct {
	params TempoEstimationParams
}

// NewTempoEstimator creates a tempo estimator with default parameters.
func NewTempoEstimator() *TempoEstimator {
	return &TempoEstimator{params: DefaultTempoEstimationParams()}
}

// NewTempoEstimatorWithParams creates a tempo estimator with custom parameters.
func NewTempoEstimatorWithParams(params TempoEstimationParams) *TempoEstimator {
	return &TempoEstimator{params: params}
}

// EstimateTempo estimates BPM from mono PCM.
func (te *TempoEstimator) EstimateTempo(samples []float64, sampleRate int) TempoEstimationResult {
	fallback := TempoEstimationResult{
		BPM:        te.params.DefaultBPM,
		Confidence: te.params.DefaultConfidence,
	}

	if sampleRate <= 0 || len(samples) < te.params.FrameSize {
		return fallback
	}

	energies := te.frameEnergies(samples)
	onsetFrames := te.onsetCandidates(energies)
	fallback.Onsets = len(onsetFrames)

	if len(onsetFrames) < te.params.MinOnsets {
		return fallback
	}

	intervals := make([]float64, len(onsetFrames)-1)
	for i := range intervals {
		frames := onsetFrames[i+1] - onsetFrames[i]
		intervals[i] = float64(frames*te.params.HopSize) / float64(sampleRate)
	}

	median := common.Median(intervals)
	if median < te.params.MinInterval || median > te.params.MaxInterval {
		return fallback
	}

	bpm := int(math.Round(60.0 / median))
	if bpm < te.params.MinBPM || bpm > te.params.MaxBPM {
		return fallback
	}

	return TempoEstimationResult{
		BPM:        bpm,
		Confidence: te.params.SuccessConfidence,
		Onsets:     len(onsetFrames),
	}
}

// frameEnergies computes short-time energy (sum of squares) over the
// frame/hop grid.
func (te *TempoEstimator) frameEnergies(samples []float64) []float64 {
	numFrames := (len(samples)-te.params.FrameSize)/te.params.HopSize + 1
	energies := make([]float64, 0, numFrames)

	for start := 0; start+te.params.FrameSize <= len(samples); start += te.params.HopSize {
		energy := 0.0
		for _, s := range samples[start : start+te.params.FrameSize] {
			energy += s * s
		}
		energies = append(energies, energy)
	}

	return energies
}

// onsetCandidates marks frames whose energy exceeds both neighbors and
// the fixed floor. Returns frame indices.
func (te *TempoEstimator) onsetCandidates(energies []float64) []int {
	var onsets []int
	for i := 1; i < len(energies)-1; i++ {
		if energies[i] > energies[i-1] &&
			energies[i] > energies[i+1] &&
			energies[i] > te.params.EnergyFloor {
			onsets = append(onsets, i)
		}
	}
	return onsets
}
