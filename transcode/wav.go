package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/beatlab/trackmeta/logging"
)

// WAVDecoder decodes RIFF/WAV files in pure Go. Producers upload WAV
// stems constantly, so this path avoids shelling out for the common case.
type WAVDecoder struct {
	logger logging.Logger
}

// NewWAVDecoder creates a WAV decoder.
func NewWAVDecoder() *WAVDecoder {
	return &WAVDecoder{
		logger: logging.WithFields(logging.Fields{"component": "wav_decoder"}),
	}
}

// DecodeFile reads a WAV file and returns mono float64 PCM.
func (d *WAVDecoder) DecodeFile(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read wav pcm: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("wav file has no audio data: %s", path)
	}

	bitDepth := int(dec.BitDepth)
	if buf.SourceBitDepth > 0 {
		bitDepth = buf.SourceBitDepth
	}
	scale := float64(int64(1) << (bitDepth - 1))

	interleaved := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		interleaved[i] = float64(s) / scale
	}

	channels := buf.Format.NumChannels
	mono := downmix(interleaved, channels)
	sampleRate := buf.Format.SampleRate

	d.logger.Debug("decoded wav file", logging.Fields{
		"path":        path,
		"sample_rate": sampleRate,
		"channels":    channels,
		"samples":     len(mono),
	})

	return &AudioData{
		PCM:        mono,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   time.Duration(float64(len(mono)) / float64(sampleRate) * float64(time.Second)),
	}, nil
}
