package theory

import "testing"

func TestCompatibleKeysNeverSelfNeverDuplicate(t *testing.T) {
	for tonic := 0; tonic < 12; tonic++ {
		for _, mode := range []KeyMode{KeyModeMajor, KeyModeMinor} {
			k := Key{Tonic: PitchClass(tonic), Mode: mode}

			for _, variant := range []struct {
				name string
				keys []Key
			}{
				{"minimal", CompatibleKeys(k)},
				{"extended", CompatibleKeysExtended(k)},
			} {
				seen := make(map[Key]struct{})
				for _, c := range variant.keys {
					if c == k {
						t.Errorf("%s CompatibleKeys(%v) contains the input key", variant.name, k)
					}
					if _, dup := seen[c]; dup {
						t.Errorf("%s CompatibleKeys(%v) contains duplicate %v", variant.name, k, c)
					}
					seen[c] = struct{}{}
				}
			}
		}
	}
}

func TestCompatibleKeysRelativeRoundTrip(t *testing.T) {
	// If a major key lists R as its relative minor, R must list the
	// original major key back.
	for tonic := 0; tonic < 12; tonic++ {
		major := Key{Tonic: PitchClass(tonic), Mode: KeyModeMajor}
		rel := RelativeKey(major)

		if !containsKey(CompatibleKeys(major), rel) {
			t.Fatalf("CompatibleKeys(%v) missing relative %v", major, rel)
		}
		if !containsKey(CompatibleKeys(rel), major) {
			t.Errorf("CompatibleKeys(%v) missing round-trip relative %v", rel, major)
		}
	}
}

func TestCompatibleKeysFMinor(t *testing.T) {
	fMinor := Key{Tonic: 5, Mode: KeyModeMinor}

	want := []Key{
		{Tonic: 8, Mode: KeyModeMajor},  // relative major (Ab)
		{Tonic: 0, Mode: KeyModeMinor},  // perfect fifth (C minor)
		{Tonic: 10, Mode: KeyModeMinor}, // perfect fourth (Bb minor)
	}

	got := CompatibleKeys(fMinor)
	if len(got) != len(want) {
		t.Fatalf("CompatibleKeys(F minor) = %v, want %v", got, want)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("CompatibleKeys(F minor)[%d] = %v, want %v", i, got[i], k)
		}
	}
}

func TestCompatibleKeysExtendedCMajor(t *testing.T) {
	cMajor := Key{Tonic: 0, Mode: KeyModeMajor}

	want := []Key{
		{Tonic: 9, Mode: KeyModeMinor}, // relative (A minor)
		{Tonic: 7, Mode: KeyModeMajor}, // fifth (G major)
		{Tonic: 5, Mode: KeyModeMajor}, // fourth (F major)
		{Tonic: 2, Mode: KeyModeMinor}, // ii (D minor)
		{Tonic: 4, Mode: KeyModeMinor}, // iii (E minor)
	}

	got := CompatibleKeysExtended(cMajor)
	if len(got) != len(want) {
		t.Fatalf("CompatibleKeysExtended(C major) = %v, want %v", got, want)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("CompatibleKeysExtended(C major)[%d] = %v, want %v", i, got[i], k)
		}
	}
}

func TestCompatibleKeysInvalidInput(t *testing.T) {
	invalid := Key{Tonic: 12, Mode: KeyModeMajor}
	if got := CompatibleKeys(invalid); len(got) != 0 {
		t.Errorf("CompatibleKeys(invalid) = %v, want empty", got)
	}
	if got := CompatibleKeysExtended(invalid); len(got) != 0 {
		t.Errorf("CompatibleKeysExtended(invalid) = %v, want empty", got)
	}
}

func TestAreCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want bool
	}{
		{"same key", Key{0, KeyModeMajor}, Key{0, KeyModeMajor}, true},
		{"relative", Key{0, KeyModeMajor}, Key{9, KeyModeMinor}, true},
		{"fifth", Key{0, KeyModeMajor}, Key{7, KeyModeMajor}, true},
		{"fourth", Key{0, KeyModeMajor}, Key{5, KeyModeMajor}, true},
		{"tritone clash", Key{0, KeyModeMajor}, Key{6, KeyModeMajor}, false},
		{"invalid", Key{13, KeyModeMajor}, Key{0, KeyModeMajor}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AreCompatible(tt.a, tt.b); got != tt.want {
				t.Errorf("AreCompatible(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func containsKey(keys []Key, k Key) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}
