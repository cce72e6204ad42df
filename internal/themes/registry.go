package themes

import (
	"fmt"

	"github.com/yacobolo/themevariants/internal/cssom"
	"github.com/yacobolo/themevariants/internal/selector"
)

// RootSelector is the base selector used when any theme has a selector and
// none is configured.
const RootSelector = ":root"

// scope holds the prefixes a theme's rules get in each activation branch.
type scope struct {
	fallback   string            // prefix of the fallback theme's rules
	media      string            // prefix inside a media-query theme's block
	activation map[string]string // theme -> prefix of its selector branch
}

// registry is the validated, derived state of one invocation. It is
// read-only once built.
type registry struct {
	themes      []*Theme
	group       string
	base        string
	hasSelector bool
	fallback    *Theme
	compact     bool
	media       map[string]*cssom.AtRule

	variants  scope // prefixes for utility variants
	variables scope // prefixes for custom-property blocks
}

func newRegistry(opts Options, diag *diagnostics) (*registry, error) {
	r := &registry{
		group:   opts.Group,
		compact: opts.Fallback == FallbackCompact,
		media:   make(map[string]*cssom.AtRule),
	}

	seen := make(map[string]bool, len(opts.Themes))
	for i := range opts.Themes {
		t := opts.Themes[i]
		key := fmt.Sprintf("themes.%s", t.Name)

		if t.Name == "" {
			return nil, configError(CodeThemeActivation, fmt.Sprintf("themes[%d]", i),
				"give every theme a name", "theme has no name")
		}
		if seen[t.Name] {
			return nil, configError(CodeDuplicateTheme, key,
				"declare every theme once", "theme %q is declared twice", t.Name)
		}
		seen[t.Name] = true

		if t.Selector == "" && t.MediaQuery == "" {
			return nil, configError(CodeThemeActivation, key,
				`add a "selector" (e.g. ".theme-dark"), a "mediaQuery" (e.g. "@media (prefers-color-scheme: dark)") or both`,
				"theme %q has neither a selector nor a media query", t.Name)
		}
		if t.Selector != "" {
			if _, err := selector.Intersection(t.Selector); err != nil {
				return nil, configError(CodeInvalidSelector, key+".selector",
					"use a single valid CSS selector such as \".theme-dark\" or \"[data-theme=dark]\"",
					"theme %q has an invalid selector %q: %v", t.Name, t.Selector, err)
			}
			r.hasSelector = true
		}
		if t.MediaQuery != "" {
			at, err := cssom.ParseMediaQuery(t.MediaQuery)
			if err != nil {
				return nil, configError(CodeInvalidMediaQuery, key+".mediaQuery",
					`write a full at-rule header such as "@media (prefers-color-scheme: dark)"`,
					"theme %q: %v", t.Name, err)
			}
			r.media[t.Name] = at
		}
		if err := checkSemantics(key+".semantics", t.Semantics); err != nil {
			return nil, err
		}

		r.themes = append(r.themes, &t)
	}

	if r.group != "" && seen[r.group] {
		return nil, configError(CodeGroupCollision, "group",
			"rename the group or the theme so they differ",
			"group %q has the same name as a theme", r.group)
	}
	if err := checkMixedSemantics(r.themes); err != nil {
		return nil, err
	}

	switch {
	case opts.BaseSelector != nil:
		r.base = *opts.BaseSelector
		if r.base != "" {
			if _, err := selector.Intersection(r.base); err != nil {
				return nil, configError(CodeInvalidSelector, "baseSelector",
					`use a single selector such as "html" or ":root"`,
					"invalid base selector %q: %v", r.base, err)
			}
		}
	case r.hasSelector:
		r.base = RootSelector
	}

	if len(r.themes) == 0 {
		diag.warn(CodeNoThemes, "no themes are configured, no variants will be generated", nil)
		return r, nil
	}

	if opts.Fallback != FallbackOff {
		r.fallback = r.themes[0]

		if len(r.themes) == 1 {
			msg := fmt.Sprintf("fallback is enabled with the single theme %q, which is therefore always active under %q", r.fallback.Name, r.base)
			if r.base == "" {
				msg = fmt.Sprintf("fallback is enabled with the single theme %q and no base selector, its variants apply unconditionally", r.fallback.Name)
			}
			diag.warn(CodeSingleThemeFallback, msg, map[string]string{"theme": r.fallback.Name})
		}
		if r.hasSelector && r.base == "" {
			diag.warn(CodeFallbackEmptyBase,
				"fallback is enabled for selector themes but the base selector is empty, sibling negations have nothing to attach to",
				map[string]string{"baseSelector": ""})
		}
	}

	var err error
	if r.variants, err = r.scopeFor(r.base, false); err != nil {
		return nil, err
	}
	varBase := r.base
	if varBase == "" {
		varBase = RootSelector
	}
	if r.variables, err = r.scopeFor(varBase, true); err != nil {
		return nil, err
	}
	return r, nil
}

// scopeFor derives the activation prefixes under base. Variable blocks
// always need a selector, so withBase keeps base on media blocks even
// without a fallback theme.
func (r *registry) scopeFor(base string, withBase bool) (scope, error) {
	s := scope{activation: make(map[string]string, len(r.themes))}

	for _, t := range r.themes {
		if t.Selector == "" {
			continue
		}
		prefix, err := selector.Intersection(base, t.Selector)
		if err != nil {
			return s, configError(CodeInvalidSelector, fmt.Sprintf("themes.%s.selector", t.Name),
				"make the theme selector compatible with the base selector",
				"cannot combine base selector %q with %q: %v", base, t.Selector, err)
		}
		s.activation[t.Name] = prefix
	}

	if r.fallback != nil {
		prefix := base
		if !r.compact {
			var err error
			if prefix, err = r.negation(base, r.fallback); err != nil {
				return s, configError(CodeInvalidSelector, "baseSelector",
					"make the theme selectors compatible with the base selector",
					"cannot build the fallback selector: %v", err)
			}
		}
		s.fallback = prefix
	}

	switch {
	case r.fallback != nil && base != "":
		// Media blocks yield to every explicitly selected theme, the
		// fallback theme included, in both fallback modes.
		prefix, err := r.negation(base, nil)
		if err != nil {
			return s, configError(CodeInvalidSelector, "baseSelector",
				"make the theme selectors compatible with the base selector",
				"cannot build the media query selector: %v", err)
		}
		s.media = prefix
	case withBase:
		s.media = base
	}
	return s, nil
}

// negation returns base followed by :not() for every theme selector except
// the one of skip. Selectors sharing a leading compound keep it once outside
// the negations: "html.a", "html.b" give "html:not(.a):not(.b)".
func (r *registry) negation(base string, skip *Theme) (string, error) {
	var siblings []string
	for _, t := range r.themes {
		if t != skip && t.Selector != "" {
			siblings = append(siblings, t.Selector)
		}
	}

	parts := []string{base}
	if common, diffs, ok := distillSiblings(siblings); ok {
		parts = append(parts, common)
		siblings = diffs
	}
	for _, s := range siblings {
		parts = append(parts, ":not("+s+")")
	}
	return selector.Intersection(parts...)
}

func distillSiblings(siblings []string) (string, []string, bool) {
	if len(siblings) < 2 {
		return "", nil, false
	}
	common, diffs, err := selector.Distill(siblings)
	if err != nil || common == "" {
		return "", nil, false
	}
	for _, d := range diffs {
		if d == "" {
			return "", nil, false
		}
		sel, err := selector.Parse(d)
		if err != nil || len(sel) != 1 || sel[0].HasCombinator() {
			return "", nil, false
		}
	}
	return common, diffs, true
}

// activate emits a theme's branches in order: the fallback branch, then the
// media-query branch, then the selector branch. build renders the theme's
// rules under a prefix, "" meaning unprefixed.
func (r *registry) activate(t *Theme, s scope, build func(prefix string) ([]cssom.Node, error)) ([]cssom.Node, error) {
	var out []cssom.Node

	isFallback := r.fallback == t
	if isFallback {
		nodes, err := build(s.fallback)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
		if r.compact {
			return out, nil
		}
	}

	if at, ok := r.media[t.Name]; ok {
		nodes, err := build(s.media)
		if err != nil {
			return nil, err
		}
		out = append(out, at.Wrap(nodes))
	}

	if t.Selector != "" {
		nodes, err := build(s.activation[t.Name])
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func checkSemantics(key string, semantics []UtilitySemantics) error {
	seen := make(map[string]bool, len(semantics))
	for _, us := range semantics {
		if seen[us.Key] {
			return configError(CodeDuplicateVariable, key+"."+us.Key,
				"merge the two definitions", "utility %q is defined twice", us.Key)
		}
		seen[us.Key] = true
		if err := checkTree(key+"."+us.Key, us.Tree); err != nil {
			return err
		}
	}
	return nil
}

func checkTree(key string, tree Semantic) error {
	if tree.IsLeaf() {
		return nil
	}
	hasDefault := false
	for _, e := range tree.Children {
		if e.Segment.IsDefault() {
			if hasDefault {
				return configError(CodeAmbiguousDefault, key,
					`keep a single "DEFAULT" entry`,
					`both "DEFAULT" and "default" are set`)
			}
			hasDefault = true
		}
		if err := checkTree(key+"."+e.Segment.String(), e.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkMixedSemantics(themes []*Theme) error {
	var with, without []string
	for _, t := range themes {
		if t.Semantics != nil {
			with = append(with, t.Name)
		} else {
			without = append(without, t.Name)
		}
	}
	if len(with) > 0 && len(without) > 0 {
		return configError(CodeMixedSemantics, fmt.Sprintf("themes.%s.semantics", without[0]),
			"define semantics for every theme or for none",
			"themes %v define semantics but %v do not", with, without)
	}
	return nil
}
