// Package chroma folds spectral energy into the 12 pitch classes. The
// resulting vector is the input to profile-based key estimation.
package chroma

import (
	"math"

	"github.com/beatlab/trackmeta/algorithms/common"
	"github.com/beatlab/trackmeta/algorithms/spectral"
	"github.com/beatlab/trackmeta/algorithms/windowing"
)

// Vector is a 12-bin pitch-class energy histogram averaged over the
// analysis frames that produced it. Built and discarded within a single
// analysis call.
type Vector struct {
	Values []float64 `json:"values"` // 12 elements, index = pitch class
	Frames int       `json:"frames"` // number of frames that contributed energy
}

// ExtractorParams control the framing and the frequency band the
// extractor folds into pitch classes.
type ExtractorParams struct {
	FrameSize int     `json:"frame_size"`
	HopSize   int     `json:"hop_size"`
	MinFreq   float64 `json:"min_freq"`  // Hz, lower edge of the musical band
	MaxFreq   float64 `json:"max_freq"`  // Hz, upper edge
	RMSFloor  float64 `json:"rms_floor"` // frames quieter than this are skipped
}

// DefaultExtractorParams returns the framing used by the analysis
// pipeline: 2048-sample frames with 50% hop, folded over the 80-2000 Hz
// fundamental range.
func DefaultExtractorParams() ExtractorParams {
	return ExtractorParams{
		FrameSize: 2048,
		HopSize:   1024,
		MinFreq:   80.0,
		MaxFreq:   2000.0,
		RMSFloor:  1e-4,
	}
}

// Extractor computes averaged chroma vectors from mono PCM.
type Extractor struct {
	params ExtractorParams
	window *windowing.Hann
	fft    *spectral.FFT
}

// NewExtractor creates an extractor with default parameters.
func NewExtractor() *Extractor {
	return NewExtractorWithParams(DefaultExtractorParams())
}

// NewExtractorWithParams creates an extractor with custom parameters.
func NewExtractorWithParams(params ExtractorParams) *Extractor {
	return &Extractor{
		params: params,
		window: windowing.NewHann(params.FrameSize),
		fft:    spectral.NewFFT(),
	}
}

// Extract computes the averaged chroma vector of a mono signal. A signal
// too short for a single frame yields a zero vector with Frames == 0;
// the caller decides what a tonally empty signal means.
func (e *Extractor) Extract(samples []float64, sampleRate int) Vector {
	accumulated := make([]float64, 12)
	validFrames := 0

	if len(samples) >= e.params.FrameSize && sampleRate > 0 {
		for start := 0; start+e.params.FrameSize <= len(samples); start += e.params.HopSize {
			raw := samples[start : start+e.params.FrameSize]
			if common.RMS(raw) < e.params.RMSFloor {
				continue
			}
			if e.accumulateFrame(e.window.Apply(raw), sampleRate, accumulated) {
				validFrames++
			}
		}
	}

	if validFrames > 0 {
		for pc := range accumulated {
			accumulated[pc] /= float64(validFrames)
		}
	}

	return Vector{Values: accumulated, Frames: validFrames}
}

// accumulateFrame adds one frame's in-band magnitudes to the chroma
// accumulator. Reports whether the frame carried any energy in band.
func (e *Extractor) accumulateFrame(frame []float64, sampleRate int, accumulated []float64) bool {
	magnitudes := e.fft.MagnitudeSpectrum(frame)

	contributed := false
	for bin, magnitude := range magnitudes {
		freq := spectral.BinFrequency(bin, e.params.FrameSize, sampleRate)
		if freq < e.params.MinFreq || freq > e.params.MaxFreq {
			continue
		}
		if magnitude <= 0 {
			continue
		}

		accumulated[FrequencyToPitchClass(freq)] += magnitude
		contributed = true
	}

	return contributed
}

// FrequencyToPitchClass maps a frequency to its equal-tempered pitch
// class via the MIDI note number 69 + 12*log2(f/440).
func FrequencyToPitchClass(freq float64) int {
	midi := 69.0 + 12.0*math.Log2(freq/440.0)
	pc := int(math.Round(midi)) % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}
