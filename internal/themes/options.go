// Package themes generates theme-scoped variants ("dark:bg-gray-900") and
// binds theme-specific semantic values to CSS custom properties consumed by
// semantic utilities ("bg-primary").
package themes

import "strings"

// Fallback selects how the first theme behaves when no other theme is active.
type Fallback int

const (
	// FallbackOff emits no fallback rules.
	FallbackOff Fallback = iota
	// FallbackOn scopes the first theme to the base selector negating every
	// sibling theme selector.
	FallbackOn
	// FallbackCompact scopes the first theme to the bare base selector and
	// relies on cascade order.
	FallbackCompact
)

func (f Fallback) String() string {
	switch f {
	case FallbackOn:
		return "true"
	case FallbackCompact:
		return "compact"
	default:
		return "false"
	}
}

// Theme is a named activation condition.
type Theme struct {
	Name       string
	Selector   string
	MediaQuery string
	// Semantics maps utility keys to semantic trees. nil means the theme
	// declares no semantics at all.
	Semantics []UtilitySemantics
}

// UtilitySemantics is the semantic tree of one utility key ("colors",
// "textColor", "fontFamily").
type UtilitySemantics struct {
	Key  string
	Tree Semantic
}

// Utility describes how a semantic variable becomes a utility class.
type Utility struct {
	Prefix   string // class prefix, "bg"
	Property string // declared property, "background-color"
	// Suffix is appended to the class selector (" > * + *", "::placeholder").
	Suffix string
	// OpacityVariable and OpacityPlugin enable the rgba form: the variable is
	// referenced when the opacity core plugin is enabled.
	OpacityVariable string
	OpacityPlugin   string
	// ThemeKey is the host theme key values are resolved against, defaults
	// to the utility key.
	ThemeKey string
}

// NamedUtility is a custom utility descriptor keyed by utility key.
type NamedUtility struct {
	Key string
	Utility
}

// SelectorTransform rewrites a single rule selector.
type SelectorTransform func(selector string) (string, error)

// VariantSpec is a user variant combined with every theme.
type VariantSpec struct {
	Name      string
	Transform SelectorTransform
}

// Options configures one plugin invocation.
type Options struct {
	// Group, when set, registers umbrella variants running every theme.
	Group string
	// BaseSelector overrides the derived base selector; "" is a valid value.
	BaseSelector *string
	Fallback     Fallback
	// Themes in declaration order; the first one is the fallback candidate.
	Themes    []Theme
	Utilities []NamedUtility
	Variants  []VariantSpec
}

// ParseFallback maps the configuration spellings false, true and compact.
func ParseFallback(s string) (Fallback, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no", "off":
		return FallbackOff, true
	case "true", "yes", "on":
		return FallbackOn, true
	case "compact":
		return FallbackCompact, true
	}
	return FallbackOff, false
}
