package windowing

import (
	"fmt"
	"math"
)

// Hann is a precomputed Hann window. The chroma extractor applies one to
// every analysis frame before the DFT to keep spectral leakage from
// smearing energy across pitch-class bins.
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a periodic Hann window of the given size.
func NewHann(size int) *Hann {
	h := &Hann{size: size}
	h.coefficients = make([]float64, size)
	for i := 0; i < size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return h
}

// Apply returns a windowed copy of the frame. Returns nil if the frame
// length does not match the window size.
func (h *Hann) Apply(frame []float64) []float64 {
	if len(frame) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i, v := range frame {
		windowed[i] = v * h.coefficients[i]
	}
	return windowed
}

// ApplyInPlace windows the frame without allocating.
func (h *Hann) ApplyInPlace(frame []float64) error {
	if len(frame) != h.size {
		return fmt.Errorf("frame length (%d) doesn't match window size (%d)", len(frame), h.size)
	}

	for i := range frame {
		frame[i] *= h.coefficients[i]
	}
	return nil
}

// Size returns the window size.
func (h *Hann) Size() int {
	return h.size
}
