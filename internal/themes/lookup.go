package themes

import (
	"fmt"
	"strings"
)

// maxAmbiguous caps the separators permuted by lookupCandidates; longer
// names are only tried literally.
const maxAmbiguous = 12

// themeLookup is the part of the host API the binder resolves values with.
type themeLookup interface {
	Theme(path string) (any, bool)
}

// lookupCandidates returns name followed by every other spelling obtained by
// swapping "-" and "." at each separator position.
//
//	lookupCandidates("gray-800") == ["gray-800", "gray.800"]
func lookupCandidates(name string) []string {
	var positions []int
	for i := 0; i < len(name); i++ {
		if name[i] == '-' || name[i] == '.' {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 || len(positions) > maxAmbiguous {
		return []string{name}
	}

	out := []string{name}
	raw := []byte(name)
	for mask := 1; mask < 1<<len(positions); mask++ {
		b := make([]byte, len(raw))
		copy(b, raw)
		for bit, pos := range positions {
			if mask&(1<<bit) == 0 {
				continue
			}
			if b[pos] == '-' {
				b[pos] = '.'
			} else {
				b[pos] = '-'
			}
		}
		out = append(out, string(b))
	}
	return out
}

// resolveValue looks name up under key, trying every separator spelling.
// It returns the value and the path that matched.
func resolveValue(theme themeLookup, key, name string) (string, string, bool) {
	for _, candidate := range lookupCandidates(name) {
		path := key + "." + candidate
		v, ok := theme.Theme(path)
		if !ok {
			continue
		}
		if s, ok := scalar(v); ok {
			return s, path, true
		}
	}
	return "", "", false
}

// scalar turns a theme value into its string form; maps resolve to their
// DEFAULT entry.
func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := scalar(item)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), true
	case map[string]any:
		for _, key := range []string{"DEFAULT", "default"} {
			if d, ok := v[key]; ok {
				return scalar(d)
			}
		}
		return "", false
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
