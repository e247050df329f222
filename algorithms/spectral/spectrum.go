// Package spectral wraps the FFT and magnitude-spectrum plumbing the
// chroma extractor sits on. All heavy lifting is delegated to
// mjibson/go-dsp, which handles non-power-of-2 sizes.
package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes forward transforms over real-valued frames.
type FFT struct{}

// NewFFT creates a new FFT calculator.
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// MagnitudeSpectrum returns the magnitudes of the non-redundant half of
// the spectrum (bins 0..N/2). Bin k corresponds to frequency
// k*sampleRate/N; callers map bins to frequencies themselves.
func (f *FFT) MagnitudeSpectrum(frame []float64) []float64 {
	if len(frame) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(frame)
	half := len(frame)/2 + 1
	magnitudes := make([]float64, half)
	for k := 0; k < half; k++ {
		magnitudes[k] = cmplx.Abs(spectrum[k])
	}
	return magnitudes
}

// BinFrequency converts a bin index to its center frequency in Hz for a
// frame of the given size.
func BinFrequency(bin, frameSize, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(frameSize)
}
