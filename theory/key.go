package theory

import "strings"

// PitchClass is one of the 12 equal-tempered semitone classes (0=C .. 11=B).
// All arithmetic on pitch classes is modulo 12.
type PitchClass int

// KeyMode represents major or minor mode
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

func (m KeyMode) String() string {
	if m == KeyModeMinor {
		return "minor"
	}
	return "major"
}

// Key is a musical key: a tonic pitch class plus a mode.
type Key struct {
	Tonic PitchClass `json:"tonic"`
	Mode  KeyMode    `json:"mode"`
}

// pitchClassNames is the canonical (sharp) spelling for each pitch class.
var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// flatEquivalents maps flat spellings onto the canonical sharp table.
var flatEquivalents = map[string]string{
	"db": "C#", "eb": "D#", "gb": "F#", "ab": "G#", "bb": "A#",
	"cb": "B", "fb": "E",
}

// Valid reports whether the tonic is a real pitch class.
func (k Key) Valid() bool {
	return k.Tonic >= 0 && k.Tonic < 12
}

// Name returns the canonical name of the tonic ("C#", "A", ...).
func (k Key) Name() string {
	if !k.Valid() {
		return ""
	}
	return pitchClassNames[k.Tonic]
}

// String returns e.g. "F# minor".
func (k Key) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return k.Name() + " " + k.Mode.String()
}

// Transpose returns the key moved by the given number of semitones,
// wrapping within the pitch-class circle. Mode is unchanged.
func (k Key) Transpose(semitones int) Key {
	t := (int(k.Tonic) + semitones) % 12
	if t < 0 {
		t += 12
	}
	return Key{Tonic: PitchClass(t), Mode: k.Mode}
}

// PitchClassName returns the canonical name for a pitch class, or "" when
// the class is out of range.
func PitchClassName(pc PitchClass) string {
	if pc < 0 || pc > 11 {
		return ""
	}
	return pitchClassNames[pc]
}

// ParsePitchClass resolves a note name to its pitch class. Both sharp and
// flat spellings are accepted ("Db" and "C#" map to the same class), as is
// the ASCII "s" suffix sometimes used for sharps in filenames ("Cs").
// Returns -1 when the name is not a note.
func ParsePitchClass(name string) PitchClass {
	n := strings.TrimSpace(strings.ToLower(name))
	if n == "" {
		return -1
	}
	if strings.HasSuffix(n, "s") && len(n) == 2 {
		n = n[:1] + "#"
	}
	if canonical, ok := flatEquivalents[n]; ok {
		n = strings.ToLower(canonical)
	}
	for pc, canonical := range pitchClassNames {
		if strings.EqualFold(n, canonical) {
			return PitchClass(pc)
		}
	}
	return -1
}

// RelativeKey returns the relative major/minor of a key: the key sharing
// its signature (A minor for C major, and back).
func RelativeKey(k Key) Key {
	if k.Mode == KeyModeMajor {
		rel := k.Transpose(9)
		rel.Mode = KeyModeMinor
		return rel
	}
	rel := k.Transpose(3)
	rel.Mode = KeyModeMajor
	return rel
}

// DominantKey returns the key a perfect fifth above (same mode).
func DominantKey(k Key) Key {
	return k.Transpose(7)
}

// SubdominantKey returns the key a perfect fourth above (same mode).
func SubdominantKey(k Key) Key {
	return k.Transpose(5)
}

// ParallelKey returns the same tonic in the opposite mode.
func ParallelKey(k Key) Key {
	k.Mode ^= 1
	return k
}
