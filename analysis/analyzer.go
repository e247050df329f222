package analysis

import (
	"path/filepath"
	"time"

	"github.com/beatlab/trackmeta/algorithms/chroma"
	"github.com/beatlab/trackmeta/algorithms/temporal"
	"github.com/beatlab/trackmeta/algorithms/tonal"
	"github.com/beatlab/trackmeta/filename"
	"github.com/beatlab/trackmeta/logging"
	"github.com/beatlab/trackmeta/theory"
	"github.com/beatlab/trackmeta/transcode"
)

// Config holds the full pipeline configuration.
type Config struct {
	// MinDuration is the shortest signal the estimators get to see.
	// Anything shorter produces the low-confidence defaults instead.
	MinDuration time.Duration `json:"min_duration"`

	// ShortSignalBPMConfidence is attached to the default BPM when the
	// input is too short to analyze.
	ShortSignalBPMConfidence float64 `json:"short_signal_bpm_confidence"`

	// UseTags lets embedded tag frames (title, TBPM, TKEY) fill gaps the
	// filename heuristics left, before reconciliation.
	UseTags bool `json:"use_tags"`

	Tempo      temporal.TempoEstimationParams `json:"tempo"`
	Key        tonal.KeyEstimationParams      `json:"key"`
	Chroma     chroma.ExtractorParams         `json:"chroma"`
	Reconciler ReconcilerParams               `json:"reconciler"`
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		MinDuration:              10 * time.Second,
		ShortSignalBPMConfidence: 0.2,
		UseTags:                  true,
		Tempo:                    temporal.DefaultTempoEstimationParams(),
		Key:                      tonal.DefaultKeyEstimationParams(),
		Chroma:                   chroma.DefaultExtractorParams(),
		Reconciler:               DefaultReconcilerParams(),
	}
}

// Analyzer runs the whole inference pipeline. Stateless between calls:
// multiple tracks may be analyzed in parallel on one Analyzer.
type Analyzer struct {
	config     *Config
	parser     *filename.Parser
	tempo      *temporal.TempoEstimator
	chromaExt  *chroma.Extractor
	keyEst     *tonal.KeyEstimator
	reconciler *Reconciler
	logger     logging.Logger
}

// NewAnalyzer creates an analyzer. A nil config uses defaults.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{
		config:     config,
		parser:     filename.NewParser(),
		tempo:      temporal.NewTempoEstimatorWithParams(config.Tempo),
		chromaExt:  chroma.NewExtractorWithParams(config.Chroma),
		keyEst:     tonal.NewKeyEstimatorWithParams(config.Key),
		reconciler: NewReconcilerWithParams(config.Reconciler),
		logger:     logging.WithFields(logging.Fields{"component": "analyzer"}),
	}
}

// Analyze infers metadata from decoded PCM plus the original filename.
// Given valid PCM it always produces a result and never errors; inputs
// the estimators cannot read degrade to documented defaults.
func (a *Analyzer) Analyze(samples []float64, sampleRate int, name string) TrackMetadata {
	fileEst := estimateFromResult(a.parser.Parse(name))
	signalEst := a.AnalyzeSignal(samples, sampleRate)

	meta := a.reconciler.Reconcile(fileEst, signalEst)
	meta = fillDefaults(meta)

	a.logger.Debug("analysis complete", logging.Fields{
		"name":       name,
		"bpm_source": meta.BPMSource,
		"key_source": meta.KeySource,
		"confidence": meta.Confidence,
	})

	return meta
}

// AnalyzeSignal runs only the signal estimators over mono PCM.
func (a *Analyzer) AnalyzeSignal(samples []float64, sampleRate int) Estimate {
	if sampleRate <= 0 || len(samples) < int(a.config.MinDuration.Seconds()*float64(sampleRate)) {
		bpm := a.config.Tempo.DefaultBPM
		key := theory.Key{Tonic: 0, Mode: theory.KeyModeMajor}
		return Estimate{
			BPM:           &bpm,
			BPMConfidence: a.config.ShortSignalBPMConfidence,
			Key:           &key,
			KeyConfidence: 0.1,
		}
	}

	tempoRes := a.tempo.EstimateTempo(samples, sampleRate)
	keyRes := a.keyEst.EstimateKey(a.chromaExt.Extract(samples, sampleRate))

	bpm := tempoRes.BPM
	key := keyRes.Key
	return Estimate{
		BPM:           &bpm,
		BPMConfidence: tempoRes.Confidence,
		Key:           &key,
		KeyConfidence: keyRes.Confidence,
	}
}

// AnalyzeFile decodes a file and runs the full pipeline. Decode failures
// are not fatal: the documented fallback is the filename-only result.
func (a *Analyzer) AnalyzeFile(decoder transcode.Decoder, path string) TrackMetadata {
	name := filepath.Base(path)
	fileEst := estimateFromResult(a.parser.Parse(name))

	if a.config.UseTags {
		if tags, err := transcode.ReadTags(path); err == nil {
			fileEst = a.mergeTagHints(fileEst, tags)
		}
	}

	audio, err := decoder.DecodeFile(path)
	if err != nil {
		a.logger.Warn("decode failed, falling back to filename heuristics", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		meta := a.reconciler.Reconcile(fileEst, Estimate{})
		return fillDefaults(meta)
	}

	signalEst := a.AnalyzeSignal(audio.PCM, audio.SampleRate)
	return fillDefaults(a.reconciler.Reconcile(fileEst, signalEst))
}

// mergeTagHints lets embedded tag frames claim the fields the filename
// left unset, at the same confidence increments as a filename match.
func (a *Analyzer) mergeTagHints(est Estimate, tags *transcode.Tags) Estimate {
	if est.BPM == nil {
		if bpm := tags.BPMValue(); bpm >= a.parser.MinBPM && bpm <= a.parser.MaxBPM {
			est.BPM = &bpm
			est.BPMConfidence = a.parser.BPMConfidence
		}
	}
	if est.Key == nil {
		if key := filename.ParseKeyToken(tags.Key); key != nil {
			est.Key = key
			est.KeyConfidence = a.parser.KeyConfidence
		}
	}
	return est
}

// estimateFromResult spreads a filename parse over per-field confidences.
func estimateFromResult(res filename.Result) Estimate {
	est := Estimate{BPM: res.BPM, Key: res.Key}
	if res.BPM != nil {
		est.BPMConfidence = res.Confidence
	}
	if res.Key != nil {
		est.KeyConfidence = res.Confidence
	}
	return est
}

// fillDefaults applies the documented last-resort values: BPM 120 and
// C major at trace confidence, so downstream collaborators always get a
// complete record.
func fillDefaults(meta TrackMetadata) TrackMetadata {
	if meta.BPM == nil {
		bpm := 120
		meta.BPM = &bpm
		meta.BPMSource = SourceDefault
	}
	if meta.Key == nil {
		meta.Key = &theory.Key{Tonic: 0, Mode: theory.KeyModeMajor}
		meta.KeySource = SourceDefault
	}
	if meta.Confidence < 0.1 {
		meta.Confidence = 0.1
	}
	return meta
}
