package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/themevariants/internal/cssom"
	"github.com/yacobolo/themevariants/internal/host"
)

func names(u *FlatUtility) []string {
	var out []string
	for _, v := range u.Variables {
		out = append(out, v.Name)
	}
	return out
}

func TestFlattenCollapsesDefault(t *testing.T) {
	tree := Node(
		Entry("primary", Node(
			Entry("DEFAULT", Leaf("blue-500")),
			Entry("faint", Node(
				Entry("DEFAULT", Leaf("blue-400")),
				Entry("400", Leaf("blue-100")),
			)),
		)),
	)
	flat := Flatten([]Theme{{Name: "light", Semantics: []UtilitySemantics{{Key: "colors", Tree: tree}}}})

	u := flat.Utility("colors")
	require.NotNil(t, u)
	assert.Equal(t, []string{"primary", "primary-faint", "primary-faint-400"}, names(u))

	value, ok := u.Variable("primary-faint").Source("light")
	assert.True(t, ok)
	assert.Equal(t, "blue-400", value)
}

func TestFlattenRootDefault(t *testing.T) {
	tree := Node(Entry("default", Leaf("gray-700")), Entry("muted", Leaf("gray-500")))
	flat := Flatten([]Theme{{Name: "light", Semantics: []UtilitySemantics{{Key: "borderColor", Tree: tree}}}})

	assert.Equal(t, []string{DefaultName, "muted"}, names(flat.Utility("borderColor")))
	assert.Equal(t, "borderColor", flat.Utilities[0].Key)
}

func TestFlattenKeepsThemeOrder(t *testing.T) {
	semantics := func(v string) []UtilitySemantics {
		return []UtilitySemantics{{Key: "colors", Tree: Node(Entry("primary", Leaf(v)))}}
	}
	flat := Flatten([]Theme{
		{Name: "dark", Semantics: semantics("white")},
		{Name: "light", Semantics: semantics("black")},
	})

	assert.Equal(t, []ThemeSource{
		{Theme: "dark", Value: "white"},
		{Theme: "light", Value: "black"},
	}, flat.Utility("colors").Variable("primary").Sources)
}

func TestSeedAliases(t *testing.T) {
	flat := Flatten([]Theme{{Name: "light", Semantics: []UtilitySemantics{
		{Key: "colors", Tree: Node(Entry("primary", Leaf("blue-500")))},
		{Key: "textColor", Tree: Node(Entry("body", Leaf("gray-900")))},
		{Key: "gradientColorStops", Tree: Node(Entry("start", Leaf("pink-500")))},
		{Key: "fontFamily", Tree: Node(Entry("body", Leaf("sans")))},
	}}})

	seeded := seedAliases(flat)

	var keys []string
	for _, u := range seeded.Utilities {
		keys = append(keys, u.Key)
	}
	assert.Equal(t, []string{
		"backgroundColor", "borderColor", "divideColor", "placeholderColor", "ringColor",
		"textColor",
		"gradientFromColor", "gradientViaColor", "gradientToColor",
		"fontFamily",
	}, keys)
	assert.Nil(t, seeded.Utility("colors"))
	assert.Equal(t, []string{"body"}, names(seeded.Utility("textColor")))

	// seeded copies are independent of the source
	seeded.Utility("backgroundColor").Variables[0].Sources[0].Value = "changed"
	assert.Equal(t, "blue-500", seeded.Utility("borderColor").Variables[0].Sources[0].Value)
}

func TestSemanticScenario(t *testing.T) {
	h := host.New(host.Settings{
		Theme: map[string]any{
			"colors": map[string]any{
				"gray":  map[string]any{"900": "#1a202c"},
				"white": "#ffffff",
			},
			"fontFamily": map[string]any{
				"sans":  []any{"Inter", "sans-serif"},
				"serif": []any{"Georgia", "serif"},
			},
		},
		CorePlugins:  map[string]bool{"textOpacity": false},
		VariantOrder: map[string][]string{host.DefaultOrder: {}},
	}, nil)

	colors := func(v string) UtilitySemantics {
		return UtilitySemantics{Key: "colors", Tree: Node(Entry("primary", Leaf(v)))}
	}
	fonts := func(v string) UtilitySemantics {
		return UtilitySemantics{Key: "fontFamily", Tree: Node(Entry("body", Leaf(v)))}
	}

	res, err := Apply(h, Options{Themes: []Theme{
		{Name: "light", Selector: ".theme-light", Semantics: []UtilitySemantics{colors("gray-900"), fonts("sans")}},
		{Name: "dark", Selector: ".theme-dark", Semantics: []UtilitySemantics{colors("white"), fonts("serif")}},
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "body"}, res.Variables)

	sheet, err := h.Build()
	require.NoError(t, err)

	light := sheet.Nodes[0].(*cssom.Rule)
	assert.Equal(t, ":root.theme-light", light.Selector)
	assert.Equal(t, []cssom.Decl{
		{Property: "--primary", Value: "26, 32, 44"},
		{Property: "--body", Value: "Inter, sans-serif"},
	}, light.Decls)

	dark := sheet.Nodes[1].(*cssom.Rule)
	assert.Equal(t, ":root.theme-dark", dark.Selector)
	assert.Equal(t, "255, 255, 255", dark.Decls[0].Value)

	css := sheet.String()
	assert.Contains(t, css, ".bg-primary {\n  background-color: rgba(var(--primary), var(--bg-opacity, 1));\n}")
	assert.Contains(t, css, ".text-primary {\n  color: rgb(var(--primary));\n}")
	assert.Contains(t, css, ".divide-primary > * + * {\n  border-color: rgba(var(--primary), var(--divide-opacity, 1));\n}")
	assert.Contains(t, css, ".placeholder-primary::placeholder {")
	assert.Contains(t, css, ".font-body {\n  font-family: var(--body);\n}")

	assert.Equal(t, []string{
		"backgroundColor", "borderColor", "divideColor", "textColor", "placeholderColor", "ringColor", "fontFamily",
	}, h.Groups())
}

func TestSemanticFallbackBlocks(t *testing.T) {
	h := host.New(host.Settings{Theme: map[string]any{
		"colors": map[string]any{"black": "#000", "white": "#fff"},
	}}, nil)

	colors := func(v string) []UtilitySemantics {
		return []UtilitySemantics{{Key: "colors", Tree: Node(Entry("DEFAULT", Leaf(v)))}}
	}
	_, err := Apply(h, Options{
		Fallback: FallbackOn,
		Themes: []Theme{
			{Name: "light", MediaQuery: "@media (prefers-color-scheme: light)", Semantics: colors("black")},
			{Name: "dark", Selector: ".dark", Semantics: colors("white")},
		},
	}, nil)
	require.NoError(t, err)

	sheet, err := h.Build()
	require.NoError(t, err)

	base := cssom.String(sheet.Nodes[:3])
	assert.Equal(t, `:root:not(.dark) {
  --bg: 0, 0, 0;
  --border: 0, 0, 0;
  --divide: 0, 0, 0;
  --text: 0, 0, 0;
  --placeholder: 0, 0, 0;
  --ring: 0, 0, 0;
}

@media (prefers-color-scheme: light) {
  :root:not(.dark) {
    --bg: 0, 0, 0;
    --border: 0, 0, 0;
    --divide: 0, 0, 0;
    --text: 0, 0, 0;
    --placeholder: 0, 0, 0;
    --ring: 0, 0, 0;
  }
}

:root.dark {
  --bg: 255, 255, 255;
  --border: 255, 255, 255;
  --divide: 255, 255, 255;
  --text: 255, 255, 255;
  --placeholder: 255, 255, 255;
  --ring: 255, 255, 255;
}
`, base)
	assert.Contains(t, sheet.String(), ".bg {\n  background-color: rgba(var(--bg), var(--bg-opacity, 1));\n}")
}

func TestMixedValuesStayVerbatim(t *testing.T) {
	h := host.New(host.Settings{Theme: map[string]any{
		"colors": map[string]any{"white": "#fff", "current": "currentColor"},
	}}, nil)

	colors := func(v string) []UtilitySemantics {
		return []UtilitySemantics{{Key: "textColor", Tree: Node(Entry("ink", Leaf(v)))}}
	}
	_, err := Apply(h, Options{Themes: []Theme{
		{Name: "light", Selector: ".light", Semantics: colors("white")},
		{Name: "dark", Selector: ".dark", Semantics: colors("current")},
	}}, nil)
	require.NoError(t, err)

	sheet, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, "#fff", sheet.Nodes[0].(*cssom.Rule).Decls[0].Value)
	assert.Equal(t, "currentColor", sheet.Nodes[1].(*cssom.Rule).Decls[0].Value)
	assert.Contains(t, sheet.String(), ".text-ink {\n  color: var(--ink);\n}")
}

func TestNamedColorsBecomeChannels(t *testing.T) {
	h := host.New(host.Settings{Theme: map[string]any{
		"colors": map[string]any{"paper": "white", "ink": "rebeccapurple"},
	}}, nil)

	colors := func(v string) []UtilitySemantics {
		return []UtilitySemantics{{Key: "backgroundColor", Tree: Node(Entry("surface", Leaf(v)))}}
	}
	_, err := Apply(h, Options{Themes: []Theme{
		{Name: "light", Selector: ".light", Semantics: colors("paper")},
		{Name: "dark", Selector: ".dark", Semantics: colors("ink")},
	}}, nil)
	require.NoError(t, err)

	sheet, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, "255, 255, 255", sheet.Nodes[0].(*cssom.Rule).Decls[0].Value)
	assert.Equal(t, "102, 51, 153", sheet.Nodes[1].(*cssom.Rule).Decls[0].Value)
	assert.Contains(t, sheet.String(), ".bg-surface {\n  background-color: rgba(var(--surface), var(--bg-opacity, 1));\n}")
}

func TestCustomUtility(t *testing.T) {
	h := host.New(host.Settings{
		Theme:        map[string]any{"colors": map[string]any{"red": "#f00", "blue": "#00f"}},
		VariantOrder: map[string][]string{host.DefaultOrder: {"dark"}},
	}, nil)

	semantics := func(v string) []UtilitySemantics {
		return []UtilitySemantics{{Key: "caretColor", Tree: Node(Entry("accent", Leaf(v)))}}
	}
	_, err := Apply(h, Options{
		Themes: []Theme{
			{Name: "light", Selector: ".light", Semantics: semantics("red")},
			{Name: "dark", Selector: ".dark", Semantics: semantics("blue")},
		},
		Utilities: []NamedUtility{{Key: "caretColor", Utility: Utility{Prefix: "caret", Property: "caret-color", ThemeKey: "colors"}}},
	}, nil)
	require.NoError(t, err)

	sheet, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{":root.light", ":root.dark", ".caret-accent", `:root.dark .dark\:caret-accent`}, selectors(t, sheet.Nodes))
}

func TestDisabledUtilitiesAreSkipped(t *testing.T) {
	h := host.New(host.Settings{
		Theme:       map[string]any{"colors": map[string]any{"white": "#fff"}},
		CorePlugins: map[string]bool{"borderColor": false, "divideColor": false, "placeholderColor": false, "ringColor": false, "textColor": false},
	}, nil)
	_, err := Apply(h, Options{Themes: []Theme{
		{Name: "light", Selector: ".light", Semantics: []UtilitySemantics{{Key: "colors", Tree: Node(Entry("paper", Leaf("white")))}}},
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"backgroundColor"}, h.Groups())
}
