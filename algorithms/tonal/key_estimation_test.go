package tonal

import (
	"testing"

	"github.com/beatlab/trackmeta/algorithms/chroma"
	"github.com/beatlab/trackmeta/theory"
)

// chromaWithMass builds a chroma vector with unit energy at the given
// pitch classes and a small noise floor elsewhere.
func chromaWithMass(pcs ...int) chroma.Vector {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 0.05
	}
	for _, pc := range pcs {
		values[pc] = 1.0
	}
	return chroma.Vector{Values: values, Frames: 10}
}

func TestEstimateKeyTriads(t *testing.T) {
	ke := NewKeyEstimator()

	tests := []struct {
		name string
		vec  chroma.Vector
		want theory.Key
	}{
		{
			name: "C major triad",
			vec:  chromaWithMass(0, 4, 7),
			want: theory.Key{Tonic: 0, Mode: theory.KeyModeMajor},
		},
		{
			name: "A minor triad",
			vec:  chromaWithMass(9, 0, 4),
			want: theory.Key{Tonic: 9, Mode: theory.KeyModeMinor},
		},
		{
			name: "G major triad",
			vec:  chromaWithMass(7, 11, 2),
			want: theory.Key{Tonic: 7, Mode: theory.KeyModeMajor},
		},
		{
			name: "F minor triad",
			vec:  chromaWithMass(5, 8, 0),
			want: theory.Key{Tonic: 5, Mode: theory.KeyModeMinor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ke.EstimateKey(tt.vec)
			if res.Key != tt.want {
				t.Errorf("key = %s, want %s", res.Key, tt.want)
			}
			if res.Confidence <= 0 || res.Confidence > 1 {
				t.Errorf("confidence %v outside (0, 1]", res.Confidence)
			}
			if len(res.Scores) != 24 {
				t.Errorf("got %d scores, want 24", len(res.Scores))
			}
		})
	}
}

func TestEstimateKeyTransposed(t *testing.T) {
	ke := NewKeyEstimator()

	// A major triad transposed to every root must come back with the
	// matching tonic.
	for tonic := 0; tonic < 12; tonic++ {
		vec := chromaWithMass(tonic, (tonic+4)%12, (tonic+7)%12)
		res := ke.EstimateKey(vec)

		want := theory.Key{Tonic: theory.PitchClass(tonic), Mode: theory.KeyModeMajor}
		if res.Key != want {
			t.Errorf("triad on %d: key = %s, want %s", tonic, res.Key, want)
		}
	}
}

func TestEstimateKeyEmptyVector(t *testing.T) {
	ke := NewKeyEstimator()

	tests := []struct {
		name string
		vec  chroma.Vector
	}{
		{"zero frames", chroma.Vector{Values: make([]float64, 12), Frames: 0}},
		{"nil values", chroma.Vector{Frames: 5}},
		{"wrong length", chroma.Vector{Values: make([]float64, 7), Frames: 5}},
	}

	want := theory.Key{Tonic: 0, Mode: theory.KeyModeMajor}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ke.EstimateKey(tt.vec)
			if res.Key != want {
				t.Errorf("key = %s, want C major", res.Key)
			}
			if res.Confidence != 0.1 {
				t.Errorf("confidence = %v, want 0.1", res.Confidence)
			}
		})
	}
}

func TestEstimateKeyConfidenceScaling(t *testing.T) {
	vec := chromaWithMass(0, 4, 7)

	loose := NewKeyEstimatorWithParams(KeyEstimationParams{NormalizationScale: 1000.0})
	tight := NewKeyEstimatorWithParams(KeyEstimationParams{NormalizationScale: 10.0})

	if l, h := loose.EstimateKey(vec).Confidence, tight.EstimateKey(vec).Confidence; l >= h {
		t.Errorf("larger scale should lower confidence: %v >= %v", l, h)
	}
}

func TestNewKeyEstimatorWithParamsRejectsZeroScale(t *testing.T) {
	ke := NewKeyEstimatorWithParams(KeyEstimationParams{})
	res := ke.EstimateKey(chromaWithMass(0, 4, 7))

	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Errorf("confidence %v outside (0, 1] with defaulted scale", res.Confidence)
	}
}
