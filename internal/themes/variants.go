package themes

import (
	"fmt"
	"strings"

	"github.com/yacobolo/themevariants/internal/cssom"
	"github.com/yacobolo/themevariants/internal/host"
	"github.com/yacobolo/themevariants/internal/selector"
)

// VariantSeparator joins theme and variant in registered variant names
// ("dark:hover"). Class names use the host separator instead.
const VariantSeparator = ":"

func pseudo(p string) SelectorTransform {
	return func(sel string) (string, error) {
		return selector.AppendPseudo(sel, p)
	}
}

func parent(p string) SelectorTransform {
	return func(sel string) (string, error) {
		return selector.AddParent(sel, p)
	}
}

// BuiltinVariants are combined with every theme, in this order, after the
// identity variant.
var BuiltinVariants = []VariantSpec{
	{Name: "active", Transform: pseudo(":active")},
	{Name: "disabled", Transform: pseudo(":disabled")},
	{Name: "even", Transform: pseudo(":nth-child(even)")},
	{Name: "first", Transform: pseudo(":first-child")},
	{Name: "focus", Transform: pseudo(":focus")},
	{Name: "focus-within", Transform: pseudo(":focus-within")},
	{Name: "hover", Transform: pseudo(":hover")},
	{Name: "last", Transform: pseudo(":last-child")},
	{Name: "odd", Transform: pseudo(":nth-child(odd)")},
	{Name: "visited", Transform: pseudo(":visited")},
	{Name: "group-active", Transform: parent(".group:active")},
	{Name: "group-focus", Transform: parent(".group:focus")},
	{Name: "group-focus-within", Transform: parent(".group:focus-within")},
	{Name: "group-hover", Transform: parent(".group:hover")},
}

// TemplateVariant builds a variant from a template where "&" stands for the
// incoming selector: "&:hover, &:focus", ".rtl &".
func TemplateVariant(name, template string) (VariantSpec, error) {
	if !strings.Contains(template, "&") {
		return VariantSpec{}, configError(CodeInvalidVariant, "variants."+name,
			`reference the utility selector with "&", e.g. "&:hover"`,
			"template %q does not contain \"&\"", template)
	}
	if _, err := selector.Parse(strings.ReplaceAll(template, "&", ".x")); err != nil {
		return VariantSpec{}, configError(CodeInvalidVariant, "variants."+name,
			"write the template as a selector list",
			"template %q is not a valid selector: %v", template, err)
	}

	return VariantSpec{Name: name, Transform: func(sel string) (string, error) {
		alternatives, err := selector.Alternatives(sel)
		if err != nil {
			return "", err
		}
		out := make([]string, 0, len(alternatives))
		for _, alt := range alternatives {
			out = append(out, strings.ReplaceAll(template, "&", alt))
		}
		return selector.Normalize(strings.Join(out, ", "))
	}}, nil
}

// variantSet returns the builtins followed by the user variants; the
// identity variant is implicit.
func variantSet(user []VariantSpec) ([]VariantSpec, error) {
	set := make([]VariantSpec, 0, len(BuiltinVariants)+len(user))
	set = append(set, BuiltinVariants...)

	seen := make(map[string]bool, len(set))
	for _, v := range set {
		seen[v.Name] = true
	}
	for _, v := range user {
		key := "variants." + v.Name
		switch {
		case v.Name == "" || v.Transform == nil:
			return nil, configError(CodeInvalidVariant, key,
				"give the variant a name and a selector transform", "variant is incomplete")
		case strings.Contains(v.Name, VariantSeparator):
			return nil, configError(CodeInvalidVariant, key,
				"drop the \":\" from the variant name", "variant name %q contains %q", v.Name, VariantSeparator)
		case seen[v.Name]:
			return nil, configError(CodeInvalidVariant, key,
				"choose a name that is not already a variant", "variant %q already exists", v.Name)
		}
		seen[v.Name] = true
		set = append(set, v)
	}
	return set, nil
}

// variantName is "theme" for the identity variant, "theme:variant" otherwise.
func variantName(target string, v *VariantSpec) string {
	if v == nil {
		return target
	}
	return target + VariantSeparator + v.Name
}

// generator renders theme variants of utility rules.
type generator struct {
	reg *registry
}

// registrations returns every host variant: each theme, then the group,
// combined with the identity variant and then each of variants.
func (g *generator) registrations(variants []VariantSpec) []host.Variant {
	var out []host.Variant

	targets := make([][]*Theme, 0, len(g.reg.themes)+1)
	names := make([]string, 0, len(g.reg.themes)+1)
	for _, t := range g.reg.themes {
		targets = append(targets, []*Theme{t})
		names = append(names, t.Name)
	}
	if g.reg.group != "" {
		targets = append(targets, g.reg.themes)
		names = append(names, g.reg.group)
	}

	specs := make([]*VariantSpec, 0, len(variants)+1)
	specs = append(specs, nil)
	for i := range variants {
		specs = append(specs, &variants[i])
	}

	for _, v := range specs {
		for i, themes := range targets {
			out = append(out, host.Variant{
				Name:  variantName(names[i], v),
				Group: names[i] == g.reg.group,
				Apply: g.variantFunc(themes, v),
			})
		}
	}
	return out
}

// variantFunc runs the variant for each theme in turn and concatenates the
// results. ctx.Nodes is only read.
func (g *generator) variantFunc(themes []*Theme, v *VariantSpec) host.VariantFunc {
	return func(ctx host.VariantContext) ([]cssom.Node, error) {
		var out []cssom.Node
		for _, t := range themes {
			nodes, err := g.render(ctx, t, v)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	}
}

func (g *generator) render(ctx host.VariantContext, t *Theme, v *VariantSpec) ([]cssom.Node, error) {
	classPrefix := selector.EscapeClass(t.Name + ctx.Separator)
	if v != nil {
		classPrefix += selector.EscapeClass(v.Name + ctx.Separator)
	}

	renamed, err := rewrite(ctx.Nodes, func(sel string) (string, error) {
		out, err := selector.RenameClass(sel, func(class string) string {
			return classPrefix + class
		})
		if err != nil || v == nil {
			return out, err
		}
		return v.Transform(out)
	})
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", t.Name, err)
	}

	return g.reg.activate(t, g.reg.variants, func(prefix string) ([]cssom.Node, error) {
		return rewrite(renamed, func(sel string) (string, error) {
			return selector.AddParent(sel, prefix)
		})
	})
}

// rewrite returns a copy of nodes with every rule selector passed through fn.
func rewrite(nodes []cssom.Node, fn func(string) (string, error)) ([]cssom.Node, error) {
	out := cssom.Clone(nodes)
	err := cssom.WalkRules(out, func(r *cssom.Rule) error {
		sel, err := fn(r.Selector)
		if err != nil {
			return fmt.Errorf("selector %q: %w", r.Selector, err)
		}
		r.Selector = sel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
