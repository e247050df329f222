// Package transcode turns audio files into the mono float64 PCM the
// analysis pipeline consumes. Decoding is an injected capability: the
// estimators themselves never touch files or codecs, so they stay
// platform-independent and unit-testable without a real audio stack.
package transcode

import (
	"time"

	"github.com/beatlab/trackmeta/algorithms/common"
)

// AudioData represents decoded audio ready for analysis.
type AudioData struct {
	PCM        []float64     `json:"-"` // mono samples in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // channel count of the source, pre-downmix
	Duration   time.Duration `json:"duration"`
}

// Decoder is the capability the pipeline needs from an audio backend.
type Decoder interface {
	// DecodeFile decodes an audio file into mono PCM. Unsupported or
	// corrupt input returns an error; the caller owns the fallback
	// (filename-only metadata).
	DecodeFile(path string) (*AudioData, error)
}

// downmix averages interleaved multi-channel samples into mono.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		mono[i] = common.Mean(interleaved[i*channels : (i+1)*channels])
	}
	return mono
}
