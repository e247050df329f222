// Package filename extracts candidate tempo and key metadata from the
// free-text names producers give their uploads ("Midnight_128bpm_Fmin.wav").
// Parsing is pure string heuristics: no I/O, no randomness, never an error.
package filename

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/beatlab/trackmeta/theory"
)

// Result holds whatever the heuristics could claim from a filename.
// Unmatched fields stay nil; Confidence sums the per-axis increments
// and is clamped to [0,1].
type Result struct {
	BPM        *int        `json:"bpm,omitempty"`
	Key        *theory.Key `json:"key,omitempty"`
	Confidence float64     `json:"confidence"`
}

// BPM patterns are tried in order; the first whose captured integer lands
// in [MinBPM,MaxBPM] wins. Order matters: an explicit "bpm" suffix beats a
// bare digit token, and that ordering is how overlapping BPM/key tokens
// get resolved.
var bpmPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2,3})[_\s-]?bpm`),
	regexp.MustCompile(`bpm[_\s-]?(\d{2,3})`),
	regexp.MustCompile(`(?:^|[\s_.()\[\]-])(\d{2,3})(?:[\s_.()\[\]-]|$)`),
}

// Key patterns, also ordered: a qualified key ("fmin", "a#major", "dm")
// beats an accidental-only token ("f#", "eb", "cs").
var keyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^a-z0-9])([a-g])([#bs]?)[\s_-]?(major|minor|maj|min|m)(?:[^a-z0-9]|$)`),
	regexp.MustCompile(`(?:^|[^a-z0-9])([a-g])([#bs])(?:[^a-z0-9]|$)`),
}

var minorIndicator = regexp.MustCompile(`(?:^|[^a-z0-9])min(?:or)?(?:[^a-z0-9]|$)`)

// Parser applies the ordered heuristics with configurable confidence
// increments. The zero increment values are not useful; construct via
// NewParser.
type Parser struct {
	// BPMConfidence and KeyConfidence are added to the total for each
	// axis that matched. Two observed variants exist in the wild (0.5
	// and 0.6); this implementation standardizes on 0.5.
	BPMConfidence float64
	KeyConfidence float64

	// MinBPM and MaxBPM bound what a captured integer may claim.
	MinBPM int
	MaxBPM int
}

// NewParser returns a parser with the standard increments and BPM bounds.
func NewParser() *Parser {
	return &Parser{
		BPMConfidence: 0.5,
		KeyConfidence: 0.5,
		MinBPM:        60,
		MaxBPM:        200,
	}
}

// Parse extracts BPM and key candidates from a filename. Deterministic:
// the same name always produces the same Result.
func (p *Parser) Parse(name string) Result {
	var result Result

	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" {
		return result
	}

	if bpm, ok := p.matchBPM(base); ok {
		result.BPM = &bpm
		result.Confidence += p.BPMConfidence
	}

	if key, ok := p.matchKey(base); ok {
		result.Key = &key
		result.Confidence += p.KeyConfidence
	}

	if result.Confidence > 1.0 {
		result.Confidence = 1.0
	}

	return result
}

func (p *Parser) matchBPM(base string) (int, bool) {
	for _, pattern := range bpmPatterns {
		m := pattern.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		bpm, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if bpm >= p.MinBPM && bpm <= p.MaxBPM {
			return bpm, true
		}
	}
	return 0, false
}

func (p *Parser) matchKey(base string) (theory.Key, bool) {
	for _, pattern := range keyPatterns {
		m := pattern.FindStringSubmatch(base)
		if m == nil {
			continue
		}

		pc := theory.ParsePitchClass(m[1] + normalizeAccidental(m[2]))
		if pc < 0 {
			continue
		}

		mode := theory.KeyModeMajor
		qualifier := ""
		if len(m) > 3 {
			qualifier = m[3]
		}
		switch {
		case qualifier == "min" || qualifier == "minor" || qualifier == "m":
			mode = theory.KeyModeMinor
		case qualifier == "":
			// No qualifier on the matched token; a minor indicator
			// elsewhere in the name still classifies it minor.
			if minorIndicator.MatchString(base) {
				mode = theory.KeyModeMinor
			}
		}

		return theory.Key{Tonic: pc, Mode: mode}, true
	}
	return theory.Key{}, false
}

// normalizeAccidental folds the ASCII "s" sharp spelling into "#".
// Flats are handled downstream by theory.ParsePitchClass.
func normalizeAccidental(acc string) string {
	if acc == "s" {
		return "#"
	}
	return acc
}

var defaultParser = NewParser()

// Parse runs the default parser. Kept as a package-level convenience since
// the standard increments are what both analysis paths use.
func Parse(name string) Result {
	return defaultParser.Parse(name)
}

// ParseKeyToken interprets a standalone key string the way embedded tag
// frames spell them ("Fm", "F#", "Eb minor"). Returns nil when the token
// is not a key.
func ParseKeyToken(token string) *theory.Key {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return nil
	}

	mode := theory.KeyModeMajor
	switch {
	case strings.HasSuffix(t, "minor"):
		mode = theory.KeyModeMinor
		t = strings.TrimSuffix(t, "minor")
	case strings.HasSuffix(t, "min"):
		mode = theory.KeyModeMinor
		t = strings.TrimSuffix(t, "min")
	case strings.HasSuffix(t, "major"):
		t = strings.TrimSuffix(t, "major")
	case strings.HasSuffix(t, "maj"):
		t = strings.TrimSuffix(t, "maj")
	case strings.HasSuffix(t, "m") && len(t) > 1:
		mode = theory.KeyModeMinor
		t = strings.TrimSuffix(t, "m")
	}

	pc := theory.ParsePitchClass(strings.TrimSpace(t))
	if pc < 0 {
		return nil
	}
	return &theory.Key{Tonic: pc, Mode: mode}
}
