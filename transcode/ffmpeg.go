package transcode

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"time"

	"github.com/beatlab/trackmeta/logging"
)

// FFmpegConfig holds configuration for the ffmpeg-backed decoder.
type FFmpegConfig struct {
	FFmpegPath       string        `json:"ffmpeg_path"`
	TargetSampleRate int           `json:"target_sample_rate"`
	Timeout          time.Duration `json:"timeout"`
}

// DefaultFFmpegConfig returns the standard decoder configuration.
func DefaultFFmpegConfig() *FFmpegConfig {
	return &FFmpegConfig{
		FFmpegPath:       "ffmpeg", // assume in PATH
		TargetSampleRate: 44100,
		Timeout:          30 * time.Second,
	}
}

// FFmpegDecoder decodes anything ffmpeg can read (mp3, flac, m4a, ...)
// into mono float64 PCM by piping raw f64le off ffmpeg's stdout.
type FFmpegDecoder struct {
	config *FFmpegConfig
	logger logging.Logger
}

// NewFFmpegDecoder creates an ffmpeg decoder. A nil config uses defaults.
func NewFFmpegDecoder(config *FFmpegConfig) *FFmpegDecoder {
	if config == nil {
		config = DefaultFFmpegConfig()
	}
	return &FFmpegDecoder{
		config: config,
		logger: logging.WithFields(logging.Fields{"component": "ffmpeg_decoder"}),
	}
}

// DecodeFile decodes an audio file via ffmpeg.
func (d *FFmpegDecoder) DecodeFile(path string) (*AudioData, error) {
	ctx := context.Background()
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	args := []string{
		"-i", path,
		"-map", "0:a:0",
		"-ac", "1", // downmix to mono
		"-ar", fmt.Sprintf("%d", d.config.TargetSampleRate),
		"-f", "f64le", // raw float64 little-endian
		"-v", "quiet",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			d.logger.Error(err, "ffmpeg decode failed", logging.Fields{
				"path":   path,
				"stderr": string(exitError.Stderr),
			})
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no samples for %s", path)
	}

	d.logger.Debug("decoded file via ffmpeg", logging.Fields{
		"path":        path,
		"sample_rate": d.config.TargetSampleRate,
		"samples":     len(samples),
	})

	return &AudioData{
		PCM:        samples,
		SampleRate: d.config.TargetSampleRate,
		Channels:   1,
		Duration:   time.Duration(float64(len(samples)) / float64(d.config.TargetSampleRate) * float64(time.Second)),
	}, nil
}

// bytesToFloat64 reinterprets raw f64le bytes as samples, trimming any
// trailing partial sample.
func bytesToFloat64(data []byte) []float64 {
	data = data[:len(data)-(len(data)%8)]
	if len(data) == 0 {
		return nil
	}

	samples := make([]float64, len(data)/8)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}
