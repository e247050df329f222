// Package analysis assembles the full metadata-inference pipeline: the
// filename heuristics and the signal estimators each produce an Estimate,
// and the reconciliation policy merges them into one TrackMetadata.
package analysis

import (
	"github.com/beatlab/trackmeta/theory"
)

// Source labels which estimator a reconciled field came from. The UI
// displays provenance, so the merge records it instead of blending.
type Source string

const (
	SourceFilename Source = "filename"
	SourceSignal   Source = "signal"
	SourceDefault  Source = "default"
)

// Estimate is one estimator's intermediate result. Consumed immediately
// by reconciliation, never persisted.
type Estimate struct {
	BPM           *int        `json:"bpm,omitempty"`
	BPMConfidence float64     `json:"bpm_confidence"`
	Key           *theory.Key `json:"key,omitempty"`
	KeyConfidence float64     `json:"key_confidence"`
}

// TrackMetadata is the final inferred record handed to persistence and
// UI collaborators.
type TrackMetadata struct {
	BPM        *int        `json:"bpm,omitempty"`
	Key        *theory.Key `json:"key,omitempty"`
	Confidence float64     `json:"confidence"`
	BPMSource  Source      `json:"bpm_source,omitempty"`
	KeySource  Source      `json:"key_source,omitempty"`
}
