package host

import "strings"

// themeAliases lists theme keys that default to another key when the theme
// tree does not define them.
var themeAliases = map[string]string{
	"backgroundColor":    "colors",
	"borderColor":        "colors",
	"divideColor":        "borderColor",
	"textColor":          "colors",
	"placeholderColor":   "colors",
	"ringColor":          "colors",
	"gradientColorStops": "colors",
	"gradientFromColor":  "gradientColorStops",
	"gradientViaColor":   "gradientColorStops",
	"gradientToColor":    "gradientColorStops",
}

// Theme looks up a dotted path in the theme tree. Keys may themselves
// contain dots ("spacing.0.5"), so every split of the path is tried,
// longest key first.
func (h *Host) Theme(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	segs := strings.Split(path, ".")
	root := segs[0]

	for seen := 0; seen < len(themeAliases)+1; seen++ {
		if top, ok := h.settings.Theme[root]; ok {
			if len(segs) == 1 {
				return top, true
			}
			return resolve(top, segs[1:])
		}
		next, ok := themeAliases[root]
		if !ok {
			return nil, false
		}
		root = next
	}
	return nil, false
}

func resolve(node any, segs []string) (any, bool) {
	if len(segs) == 0 {
		return node, true
	}
	tree, ok := node.(map[string]any)
	if !ok {
		return nil, false
	}
	for n := len(segs); n > 0; n-- {
		child, ok := tree[strings.Join(segs[:n], ".")]
		if !ok {
			continue
		}
		if v, ok := resolve(child, segs[n:]); ok {
			return v, true
		}
	}
	return nil, false
}
