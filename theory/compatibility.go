package theory

// CompatibleKeys returns the keys that mix harmonically with k, in a fixed
// order: the relative key, the perfect fifth, then the perfect fourth. The
// input key itself is excluded and duplicates are removed. An invalid key
// yields an empty slice rather than an error.
func CompatibleKeys(k Key) []Key {
	return compatible(k, false)
}

// CompatibleKeysExtended widens the wheel with two more diatonic neighbors:
// the ii and iii minors for a major key, the bVII and bVI majors for a
// minor key. Ordering and dedup rules match CompatibleKeys.
func CompatibleKeysExtended(k Key) []Key {
	return compatible(k, true)
}

func compatible(k Key, extended bool) []Key {
	if !k.Valid() {
		return []Key{}
	}

	var candidates []Key
	if k.Mode == KeyModeMajor {
		candidates = []Key{
			RelativeKey(k),
			DominantKey(k),
			SubdominantKey(k),
		}
		if extended {
			ii := k.Transpose(2)
			ii.Mode = KeyModeMinor
			iii := k.Transpose(4)
			iii.Mode = KeyModeMinor
			candidates = append(candidates, ii, iii)
		}
	} else {
		candidates = []Key{
			RelativeKey(k),
			DominantKey(k),
			SubdominantKey(k),
		}
		if extended {
			bVII := k.Transpose(10)
			bVII.Mode = KeyModeMajor
			bVI := k.Transpose(8)
			bVI.Mode = KeyModeMajor
			candidates = append(candidates, bVII, bVI)
		}
	}

	seen := map[Key]struct{}{k: {}}
	result := make([]Key, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}

	return result
}

// AreCompatible reports whether two keys mix well: identical keys count as
// compatible, as does membership in each other's compatibility set.
func AreCompatible(a, b Key) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	if a == b {
		return true
	}
	for _, c := range CompatibleKeys(a) {
		if c == b {
			return true
		}
	}
	return false
}
