package themes

import (
	"fmt"
	"strings"

	"github.com/yacobolo/themevariants/internal/cssom"
	"github.com/yacobolo/themevariants/internal/host"
	"github.com/yacobolo/themevariants/internal/selector"
)

// boundVariable is a custom property with one resolved value per theme,
// aligned with the registry's theme order.
type boundVariable struct {
	name    string // without the leading "--"
	utility string
	color   bool
	values  []string
}

func (b *boundVariable) sameValues(other *boundVariable) bool {
	if b.color != other.color || len(b.values) != len(other.values) {
		return false
	}
	for i := range b.values {
		if b.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// semanticUtilities are the utility classes emitted for one utility key.
type semanticUtilities struct {
	key   string
	nodes []cssom.Node
}

type binding struct {
	variables []*boundVariable
	utilities []semanticUtilities
}

// bind resolves every flattened variable for every theme against the host
// theme and prepares the utilities consuming them. Nothing is registered
// with the host here.
func bind(r *registry, flat *Flattened, table utilityTable, api host.API) (*binding, error) {
	b := &binding{}
	byName := make(map[string]*boundVariable)

	for _, u := range flat.Utilities {
		desc, ok := table.lookup(u.Key)
		if !ok {
			return nil, configError(CodeUnknownUtility, "semantics."+u.Key,
				`use a known utility key such as "colors", "textColor" or "fontFamily", or describe it under "utilities"`,
				"utility %q is not known", u.Key)
		}
		if !api.CorePluginEnabled(u.Key) {
			continue
		}

		group := semanticUtilities{key: u.Key}
		for _, v := range u.Variables {
			bv, err := resolveVariable(r, api, u.Key, desc, v)
			if err != nil {
				return nil, err
			}

			if prev, ok := byName[bv.name]; ok {
				if !prev.sameValues(bv) {
					return nil, configError(CodeDuplicateVariable, fmt.Sprintf("semantics.%s.%s", u.Key, v.Name),
						"rename one of the two semantic names",
						"variable --%s is also defined by %q with different values", bv.name, prev.utility)
				}
				bv = prev
			} else {
				byName[bv.name] = bv
				b.variables = append(b.variables, bv)
			}

			group.nodes = append(group.nodes, utilityRule(api, desc, v.Name, bv))
		}
		if len(group.nodes) > 0 {
			b.utilities = append(b.utilities, group)
		}
	}
	return b, nil
}

func resolveVariable(r *registry, api host.API, key string, desc Utility, v *Variable) (*boundVariable, error) {
	bv := &boundVariable{
		name:    v.Name,
		utility: key,
		values:  make([]string, len(r.themes)),
	}
	if v.Name == DefaultName {
		bv.name = desc.Prefix
	}

	color := true
	colors := make([]string, len(r.themes))
	for i, t := range r.themes {
		ref, ok := v.Source(t.Name)
		if !ok {
			return nil, configError(CodeMissingReference, fmt.Sprintf("themes.%s.semantics.%s", t.Name, key),
				fmt.Sprintf("add %q under %s for theme %q", v.Name, key, t.Name),
				"theme %q never defines the semantic variable %q", t.Name, v.Name)
		}

		value, _, ok := resolveValue(api, desc.ThemeKey, ref)
		if !ok {
			return nil, configError(CodeUnresolvedValue, fmt.Sprintf("themes.%s.semantics.%s.%s", t.Name, key, v.Name),
				fmt.Sprintf("define %q under theme.%s or reference an existing value", ref, desc.ThemeKey),
				"variable %q of theme %q references %q, which was not found as %s.%s",
				v.Name, t.Name, ref, desc.ThemeKey, strings.Join(lookupCandidates(ref), " or "))
		}
		bv.values[i] = value

		if c, ok := parseColor(value); ok {
			colors[i] = rgbChannels(c)
		} else {
			color = false
		}
	}

	if color {
		bv.color = true
		bv.values = colors
	}
	return bv, nil
}

func utilityRule(api host.API, desc Utility, name string, bv *boundVariable) *cssom.Rule {
	ref := "var(--" + bv.name + ")"
	value := ref
	switch {
	case bv.color && desc.OpacityVariable != "" && api.CorePluginEnabled(desc.OpacityPlugin):
		value = fmt.Sprintf("rgba(%s, var(%s, 1))", ref, desc.OpacityVariable)
	case bv.color:
		value = fmt.Sprintf("rgb(%s)", ref)
	}

	sel := "." + selector.EscapeClass(desc.className(name)) + desc.Suffix
	return cssom.NewRule(sel, cssom.Decl{Property: desc.Property, Value: value})
}

// baseBlocks renders one custom-property block per theme, scoped like the
// theme's variants.
func (b *binding) baseBlocks(r *registry) ([]cssom.Node, error) {
	if len(b.variables) == 0 {
		return nil, nil
	}

	var out []cssom.Node
	for i, t := range r.themes {
		decls := make([]cssom.Decl, len(b.variables))
		for j, v := range b.variables {
			decls[j] = cssom.Decl{Property: "--" + v.name, Value: v.values[i]}
		}

		nodes, err := r.activate(t, r.variables, func(prefix string) ([]cssom.Node, error) {
			d := make([]cssom.Decl, len(decls))
			copy(d, decls)
			return []cssom.Node{cssom.NewRule(prefix, d...)}, nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}
