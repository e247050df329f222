package analysis

import (
	"github.com/beatlab/trackmeta/algorithms/common"
)

// ReconcilerParams tune the estimate merge.
type ReconcilerParams struct {
	// SignalTrustThreshold: below this signal confidence, a filename
	// value (when present) overrides the signal value for that field.
	SignalTrustThreshold float64 `json:"signal_trust_threshold"`

	// AgreementToleranceBPM: both estimators landing within this many
	// BPM of each other counts as cross-validation. Two variants exist
	// in the wild (3 and 5); this implementation standardizes on 3.
	AgreementToleranceBPM int `json:"agreement_tolerance_bpm"`

	// AgreementBonus is added to the final confidence per agreeing field.
	AgreementBonus float64 `json:"agreement_bonus"`
}

// DefaultReconcilerParams returns the standard merge tuning.
func DefaultReconcilerParams() ReconcilerParams {
	return ReconcilerParams{
		SignalTrustThreshold:  0.6,
		AgreementToleranceBPM: 3,
		AgreementBonus:        0.2,
	}
}

// Reconciler merges a filename estimate with a signal estimate. It is a
// priority/override merge applied independently per field, deliberately
// simple and auditable; the UI shows which source won each field, so
// this must never be replaced with a weighted blend.
type Reconciler struct {
	params ReconcilerParams
}

// NewReconciler creates a reconciler with default parameters.
func NewReconciler() *Reconciler {
	return &Reconciler{params: DefaultReconcilerParams()}
}

// NewReconcilerWithParams creates a reconciler with custom parameters.
func NewReconcilerWithParams(params ReconcilerParams) *Reconciler {
	return &Reconciler{params: params}
}

// Reconcile applies the override rules per field, then rewards agreement:
// the final confidence is the max of the contributing source confidences
// plus any agreement bonus, clamped to [0,1].
func (r *Reconciler) Reconcile(file, signal Estimate) TrackMetadata {
	var meta TrackMetadata

	// BPM: a weak signal estimate yields to an explicit filename claim.
	switch {
	case signal.BPMConfidence < r.params.SignalTrustThreshold && file.BPM != nil:
		meta.BPM = file.BPM
		meta.BPMSource = SourceFilename
	case signal.BPM != nil:
		meta.BPM = signal.BPM
		meta.BPMSource = SourceSignal
	case file.BPM != nil:
		meta.BPM = file.BPM
		meta.BPMSource = SourceFilename
	}

	// Key: same rule, judged on the signal's key confidence.
	switch {
	case signal.KeyConfidence < r.params.SignalTrustThreshold && file.Key != nil:
		meta.Key = file.Key
		meta.KeySource = SourceFilename
	case signal.Key != nil:
		meta.Key = signal.Key
		meta.KeySource = SourceSignal
	case file.Key != nil:
		meta.Key = file.Key
		meta.KeySource = SourceFilename
	}

	confidence := maxConfidence(file, signal)

	if r.bpmAgreement(file, signal) {
		confidence += r.params.AgreementBonus
	}
	if keyAgreement(file, signal) {
		confidence += r.params.AgreementBonus
	}

	meta.Confidence = common.Clamp(confidence, 0.0, 1.0)
	return meta
}

// bpmAgreement holds when both estimators produced a BPM and the two
// values land within tolerance of each other.
func (r *Reconciler) bpmAgreement(file, signal Estimate) bool {
	if file.BPM == nil || signal.BPM == nil {
		return false
	}
	diff := *file.BPM - *signal.BPM
	if diff < 0 {
		diff = -diff
	}
	return diff <= r.params.AgreementToleranceBPM
}

// keyAgreement requires both estimators to name the same key exactly.
func keyAgreement(file, signal Estimate) bool {
	return file.Key != nil && signal.Key != nil && *file.Key == *signal.Key
}

func maxConfidence(file, signal Estimate) float64 {
	best := file.BPMConfidence
	for _, c := range []float64{file.KeyConfidence, signal.BPMConfidence, signal.KeyConfidence} {
		if c > best {
			best = c
		}
	}
	return best
}
