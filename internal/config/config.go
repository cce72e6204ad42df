// Package config decodes the plugin sections of a .themevariants.yaml file.
// Mapping order is significant (the first theme is the fallback theme), so
// the file is walked as yaml.v3 nodes instead of being decoded into maps.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/themevariants/internal/host"
	"github.com/yacobolo/themevariants/internal/themes"
)

// File is the decoded plugin configuration.
type File struct {
	Host    host.Settings
	Plugins []themes.Options
}

// Load reads and decodes path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML document. Keys it does not know are left to other
// readers of the same file. Problems in independent sections are all
// reported, combined with multierr.
func Parse(data []byte) (*File, error) {
	f := &File{}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "expected a mapping at the top level")
	}

	var errs error
	forEach(root, func(key string, value *yaml.Node) {
		var err error
		switch key {
		case "separator":
			f.Host.Separator, err = scalar(value)
		case "corePlugins":
			f.Host.CorePlugins, err = decodeCorePlugins(value)
		case "theme":
			var tree any
			if tree, err = decodeValue(value); err == nil {
				m, ok := tree.(map[string]any)
				if !ok && tree != nil {
					err = nodeError(value, "theme must be a mapping")
				}
				f.Host.Theme = m
			}
		case "variantOrder":
			f.Host.VariantOrder, err = decodeVariantOrder(value)
		case "plugins":
			f.Plugins, err = decodePlugins(value)
		default:
			return
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	if errs != nil {
		return nil, errs
	}
	return f, nil
}

func decodeCorePlugins(n *yaml.Node) (map[string]bool, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		s, err := scalar(value)
		if err == nil {
			out[key], err = strconv.ParseBool(s)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, nodeError(value, "expected true or false")))
		}
	})
	return out, errs
}

func decodeVariantOrder(n *yaml.Node) (map[string][]string, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		names, err := stringList(value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		out[key] = names
	})
	return out, errs
}

func decodePlugins(n *yaml.Node) ([]themes.Options, error) {
	if err := expect(n, yaml.SequenceNode); err != nil {
		return nil, err
	}
	out := make([]themes.Options, 0, len(n.Content))
	var errs error
	for i, item := range n.Content {
		opts, err := decodePlugin(resolve(item))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("[%d]: %w", i, err))
			continue
		}
		out = append(out, opts)
	}
	return out, errs
}

func decodePlugin(n *yaml.Node) (themes.Options, error) {
	var opts themes.Options
	if err := expect(n, yaml.MappingNode); err != nil {
		return opts, err
	}

	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		var err error
		switch key {
		case "group":
			opts.Group, err = scalar(value)
		case "baseSelector":
			var s string
			if s, err = scalar(value); err == nil {
				opts.BaseSelector = &s
			}
		case "fallback":
			var s string
			if s, err = scalar(value); err == nil {
				var ok bool
				if opts.Fallback, ok = themes.ParseFallback(s); !ok {
					err = nodeError(value, "fallback must be true, false or compact, got %q", s)
				}
			}
		case "themes":
			opts.Themes, err = decodeThemes(value)
		case "utilities":
			opts.Utilities, err = decodeUtilities(value)
		case "variants":
			opts.Variants, err = decodeVariants(value)
		default:
			err = nodeError(value, "unknown plugin option %q", key)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return opts, errs
}

func decodeThemes(n *yaml.Node) ([]themes.Theme, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}

	var out []themes.Theme
	var errs error
	forEach(n, func(name string, value *yaml.Node) {
		theme, err := decodeTheme(name, value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		out = append(out, theme)
	})
	return out, errs
}

func decodeTheme(name string, n *yaml.Node) (themes.Theme, error) {
	theme := themes.Theme{Name: name}
	if err := expect(n, yaml.MappingNode); err != nil {
		return theme, err
	}

	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		var err error
		switch key {
		case "selector":
			theme.Selector, err = scalar(value)
		case "mediaQuery":
			theme.MediaQuery, err = scalar(value)
		case "semantics":
			theme.Semantics, err = decodeSemantics(value)
		default:
			err = nodeError(value, "unknown theme option %q", key)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return theme, errs
}

func decodeSemantics(n *yaml.Node) ([]themes.UtilitySemantics, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}
	out := []themes.UtilitySemantics{}
	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		tree, err := decodeSemantic(value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		out = append(out, themes.UtilitySemantics{Key: key, Tree: tree})
	})
	return out, errs
}

func decodeSemantic(n *yaml.Node) (themes.Semantic, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return themes.Leaf(n.Value), nil
	case yaml.MappingNode:
		var entries []themes.SemanticEntry
		var err error
		forEach(n, func(key string, value *yaml.Node) {
			if err != nil {
				return
			}
			var child themes.Semantic
			if child, err = decodeSemantic(value); err != nil {
				err = fmt.Errorf("%s: %w", key, err)
				return
			}
			entries = append(entries, themes.Entry(key, child))
		})
		return themes.Node(entries...), err
	}
	return themes.Semantic{}, nodeError(n, "semantic values must be strings or mappings")
}

func decodeUtilities(n *yaml.Node) ([]themes.NamedUtility, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}
	var out []themes.NamedUtility
	var errs error
	forEach(n, func(key string, value *yaml.Node) {
		var u themes.Utility
		if err := value.Decode(&utilityYAML{&u}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		out = append(out, themes.NamedUtility{Key: key, Utility: u})
	})
	return out, errs
}

// utilityYAML maps the YAML spelling of a utility descriptor.
type utilityYAML struct{ u *themes.Utility }

func (y *utilityYAML) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Prefix          string `yaml:"prefix"`
		Property        string `yaml:"property"`
		Suffix          string `yaml:"suffix"`
		OpacityVariable string `yaml:"opacityVariable"`
		OpacityPlugin   string `yaml:"opacityPlugin"`
		ThemeKey        string `yaml:"themeKey"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	*y.u = themes.Utility{
		Prefix:          raw.Prefix,
		Property:        raw.Property,
		Suffix:          raw.Suffix,
		OpacityVariable: raw.OpacityVariable,
		OpacityPlugin:   raw.OpacityPlugin,
		ThemeKey:        raw.ThemeKey,
	}
	return nil
}

func decodeVariants(n *yaml.Node) ([]themes.VariantSpec, error) {
	if err := expect(n, yaml.MappingNode); err != nil {
		return nil, err
	}
	var out []themes.VariantSpec
	var errs error
	forEach(n, func(name string, value *yaml.Node) {
		tmpl, err := scalar(value)
		if err == nil {
			var v themes.VariantSpec
			if v, err = themes.TemplateVariant(name, tmpl); err == nil {
				out = append(out, v)
				return
			}
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
	})
	return out, errs
}

// decodeValue converts a node into string, []any and map[string]any values.
// Scalars stay strings so "800" and "0.5" keep their spelling.
func decodeValue(n *yaml.Node) (any, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		var err error
		forEach(n, func(key string, value *yaml.Node) {
			if err != nil {
				return
			}
			out[key], err = decodeValue(value)
		})
		return out, err
	}
	return nil, nodeError(n, "unsupported value")
}

// forEach calls fn for every key of a mapping node, in document order.
func forEach(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, resolve(n.Content[i+1]))
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func scalar(n *yaml.Node) (string, error) {
	if err := expect(n, yaml.ScalarNode); err != nil {
		return "", err
	}
	return strings.TrimSpace(n.Value), nil
}

func stringList(n *yaml.Node) ([]string, error) {
	if err := expect(n, yaml.SequenceNode); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := scalar(resolve(item))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

var errKind = errors.New("unexpected value type")

var kindNames = map[yaml.Kind]string{
	yaml.ScalarNode:   "a scalar",
	yaml.SequenceNode: "a list",
	yaml.MappingNode:  "a mapping",
}

func expect(n *yaml.Node, kind yaml.Kind) error {
	if n.Kind == kind {
		return nil
	}
	return fmt.Errorf("line %d: expected %s: %w", n.Line, kindNames[kind], errKind)
}

func nodeError(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
