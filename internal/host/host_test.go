package host

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/themevariants/internal/cssom"
)

func prefixVariant(name string, group bool) Variant {
	return Variant{
		Name:  name,
		Group: group,
		Apply: func(ctx VariantContext) ([]cssom.Node, error) {
			err := cssom.WalkRules(ctx.Nodes, func(r *cssom.Rule) error {
				r.Selector = "." + name + ctx.Separator + r.Selector[1:]
				return nil
			})
			return ctx.Nodes, err
		},
	}
}

func TestBuildOrder(t *testing.T) {
	h := New(Settings{}, nil)
	require.NoError(t, h.AddVariant(prefixVariant("dark", false)))
	require.NoError(t, h.AddVariant(prefixVariant("themes", true)))

	h.AddBase(cssom.NewRule(":root", cssom.Decl{Property: "--x", Value: "1"}))
	h.AddUtilities("backgroundColor", cssom.NewRule(".bg-red", cssom.Decl{Property: "color", Value: "red"}))
	h.AddUtilities("textColor", cssom.NewRule(".text-red", cssom.Decl{Property: "color", Value: "red"}))

	sheet, err := h.Build()
	require.NoError(t, err)

	var selectors []string
	require.NoError(t, cssom.WalkRules(sheet.Nodes, func(r *cssom.Rule) error {
		selectors = append(selectors, r.Selector)
		return nil
	}))
	assert.Equal(t, []string{":root", ".bg-red", ".dark:bg-red", ".text-red", ".dark:text-red"}, selectors)
	assert.Equal(t, []string{"backgroundColor", "textColor"}, h.Groups())
	assert.Equal(t, []string{"dark", "themes"}, h.Variants())
}

func TestBuildVariantOrder(t *testing.T) {
	h := New(Settings{
		Separator: "_",
		VariantOrder: map[string][]string{
			"textColor":  {"themes"},
			DefaultOrder: {},
		},
	}, nil)
	require.NoError(t, h.AddVariant(prefixVariant("dark", false)))
	require.NoError(t, h.AddVariant(prefixVariant("themes", true)))
	h.AddUtilities("backgroundColor", cssom.NewRule(".bg-red"))
	h.AddUtilities("textColor", cssom.NewRule(".text-red"))

	sheet, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, cssom.CountRules(sheet.Nodes))
	assert.Contains(t, sheet.String(), ".themes_text-red")
	assert.NotContains(t, sheet.String(), "dark")
}

func TestBuildDoesNotMutateUtilities(t *testing.T) {
	h := New(Settings{}, nil)
	require.NoError(t, h.AddVariant(prefixVariant("dark", false)))
	h.AddUtilities("g", cssom.NewRule(".a"))

	first, err := h.Build()
	require.NoError(t, err)
	second, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown variant in order", func(t *testing.T) {
		h := New(Settings{VariantOrder: map[string][]string{"g": {"missing"}}}, nil)
		h.AddUtilities("g", cssom.NewRule(".a"))
		_, err := h.Build()
		assert.ErrorContains(t, err, `unknown variant "missing"`)
	})

	t.Run("variant failure is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		h := New(Settings{}, nil)
		require.NoError(t, h.AddVariant(Variant{Name: "bad", Apply: func(VariantContext) ([]cssom.Node, error) {
			return nil, boom
		}}))
		h.AddUtilities("g", cssom.NewRule(".a"))
		_, err := h.Build()
		assert.ErrorIs(t, err, boom)
	})
}

func TestAddVariantRejectsDuplicates(t *testing.T) {
	h := New(Settings{}, nil)
	require.NoError(t, h.AddVariant(prefixVariant("dark", false)))
	assert.Error(t, h.AddVariant(prefixVariant("dark", false)))
	assert.Error(t, h.AddVariant(Variant{Name: "nofunc"}))
}

func TestCorePluginEnabled(t *testing.T) {
	h := New(Settings{CorePlugins: map[string]bool{"ringColor": false}}, nil)
	assert.False(t, h.CorePluginEnabled("ringColor"))
	assert.True(t, h.CorePluginEnabled("textColor"))
	assert.Equal(t, DefaultSeparator, h.Separator())
}

func TestTheme(t *testing.T) {
	h := New(Settings{Theme: map[string]any{
		"colors": map[string]any{
			"red":   map[string]any{"500": "#ef4444"},
			"white": "#fff",
		},
		"borderColor": map[string]any{"muted": "#ccc"},
		"spacing":     map[string]any{"0.5": "0.125rem"},
	}}, nil)

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"colors.red.500", "#ef4444", true},
		{"textColor.white", "#fff", true},
		{"gradientFromColor.red.500", "#ef4444", true},
		{"borderColor.muted", "#ccc", true},
		{"borderColor.white", nil, false},
		{"divideColor.muted", "#ccc", true},
		{"spacing.0.5", "0.125rem", true},
		{"colors.blue", nil, false},
		{"colors.white.500", nil, false},
		{"unknown", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := h.Theme(tt.path)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
