package transcode

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Tags are the text frames embedded metadata can seed the heuristic
// estimator with. Empty fields mean the frame was absent.
type Tags struct {
	Title string `json:"title,omitempty"`
	BPM   string `json:"bpm,omitempty"`
	Key   string `json:"key,omitempty"`
}

// ReadTags pulls the title, tempo and initial-key frames out of a file's
// embedded metadata (ID3, MP4 atoms, Vorbis comments). Files without
// readable tags return an error; missing individual frames do not.
func ReadTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open for tags: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	t := &Tags{Title: m.Title()}

	raw := m.Raw()
	t.BPM = rawTextFrame(raw, "TBPM", "bpm", "BPM", "tmpo")
	t.Key = rawTextFrame(raw, "TKEY", "initialkey", "INITIALKEY", "KEY", "key")

	return t, nil
}

// BPMValue parses the tempo frame as an integer, truncating fractional
// tempos the way ID3 writers round-trip them. Returns 0 when absent or
// unparseable.
func (t *Tags) BPMValue() int {
	s := strings.TrimSpace(t.BPM)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// rawTextFrame returns the first present frame among names, stringified.
func rawTextFrame(raw map[string]interface{}, names ...string) string {
	for _, name := range names {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case fmt.Stringer:
			return strings.TrimSpace(val.String())
		}
	}
	return ""
}
