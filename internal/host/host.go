// Package host is a minimal utility-class framework: it owns utility groups
// parsed from CSS, a theme value tree, a variant registry and a base layer,
// and renders them into one stylesheet. Plugins talk to it through API.
package host

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yacobolo/themevariants/internal/cssom"
)

// DefaultSeparator separates variant prefixes from class names ("dark:bg-red").
const DefaultSeparator = ":"

// DefaultOrder is the VariantOrder key applying to groups without their own list.
const DefaultOrder = "*"

// VariantContext is handed to a variant function.
type VariantContext struct {
	Group     string       // utility group being rendered
	Nodes     []cssom.Node // private copy of the group's utilities
	Separator string
}

// VariantFunc turns a group's utilities into the variant's rules. It must not
// keep references to ctx.Nodes.
type VariantFunc func(ctx VariantContext) ([]cssom.Node, error)

// Variant is a named variant registration.
type Variant struct {
	Name  string
	Apply VariantFunc
	// Group marks umbrella variants (all themes at once); they are only
	// rendered where a variant order names them.
	Group bool
}

// API is what a plugin may use.
type API interface {
	AddVariant(v Variant) error
	AddBase(nodes ...cssom.Node)
	AddUtilities(group string, nodes ...cssom.Node)
	Theme(path string) (any, bool)
	Separator() string
	CorePluginEnabled(name string) bool
}

// Settings configures a Host.
type Settings struct {
	Separator    string
	Theme        map[string]any
	CorePlugins  map[string]bool     // explicit switches, anything missing is enabled
	VariantOrder map[string][]string // group -> variant names, DefaultOrder for the rest
}

type utilityGroup struct {
	name  string
	nodes []cssom.Node
}

// Host implements API and renders the final stylesheet.
type Host struct {
	settings Settings
	log      *zap.Logger

	base       []cssom.Node
	groups     []*utilityGroup
	groupIdx   map[string]*utilityGroup
	variants   []Variant
	variantIdx map[string]int
}

var _ API = (*Host)(nil)

// New creates a host. A nil logger disables logging.
func New(settings Settings, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	if settings.Separator == "" {
		settings.Separator = DefaultSeparator
	}
	return &Host{
		settings:   settings,
		log:        log.Named("host"),
		groupIdx:   make(map[string]*utilityGroup),
		variantIdx: make(map[string]int),
	}
}

// AddVariant registers a variant; names must be unique.
func (h *Host) AddVariant(v Variant) error {
	if v.Name == "" || v.Apply == nil {
		return fmt.Errorf("variant registration needs a name and a function")
	}
	if _, exists := h.variantIdx[v.Name]; exists {
		return fmt.Errorf("variant %q is already registered", v.Name)
	}
	h.variantIdx[v.Name] = len(h.variants)
	h.variants = append(h.variants, v)
	h.log.Debug("Registered variant", zap.String("variant", v.Name), zap.Bool("group", v.Group))
	return nil
}

// AddBase appends global declarations to the base layer.
func (h *Host) AddBase(nodes ...cssom.Node) {
	h.base = append(h.base, nodes...)
}

// AddUtilities appends utilities to a group, creating it on first use.
func (h *Host) AddUtilities(group string, nodes ...cssom.Node) {
	g, ok := h.groupIdx[group]
	if !ok {
		g = &utilityGroup{name: group}
		h.groupIdx[group] = g
		h.groups = append(h.groups, g)
	}
	g.nodes = append(g.nodes, nodes...)
}

// Separator returns the configured class-name separator.
func (h *Host) Separator() string {
	return h.settings.Separator
}

// CorePluginEnabled reports whether a utility family is enabled.
func (h *Host) CorePluginEnabled(name string) bool {
	enabled, ok := h.settings.CorePlugins[name]
	return !ok || enabled
}

// Variants returns the registered variant names in registration order.
func (h *Host) Variants() []string {
	names := make([]string, len(h.variants))
	for i, v := range h.variants {
		names[i] = v.Name
	}
	return names
}

// Groups returns the utility group names in creation order.
func (h *Host) Groups() []string {
	names := make([]string, len(h.groups))
	for i, g := range h.groups {
		names[i] = g.name
	}
	return names
}

// Build renders base declarations, then every utility group followed by its
// variants in order.
func (h *Host) Build() (*cssom.Sheet, error) {
	sheet := &cssom.Sheet{Nodes: cssom.Clone(h.base)}

	for _, g := range h.groups {
		sheet.Nodes = append(sheet.Nodes, cssom.Clone(g.nodes)...)

		for _, name := range h.orderFor(g.name) {
			idx, ok := h.variantIdx[name]
			if !ok {
				return nil, fmt.Errorf("variant order for %q names unknown variant %q", g.name, name)
			}
			v := h.variants[idx]

			out, err := v.Apply(VariantContext{
				Group:     g.name,
				Nodes:     cssom.Clone(g.nodes),
				Separator: h.settings.Separator,
			})
			if err != nil {
				return nil, fmt.Errorf("variant %q on %q: %w", name, g.name, err)
			}
			sheet.Nodes = append(sheet.Nodes, out...)
		}

		h.log.Debug("Rendered utility group", zap.String("group", g.name), zap.Int("nodes", len(sheet.Nodes)))
	}

	return sheet, nil
}

func (h *Host) orderFor(group string) []string {
	if order, ok := h.settings.VariantOrder[group]; ok {
		return order
	}
	if order, ok := h.settings.VariantOrder[DefaultOrder]; ok {
		return order
	}

	var names []string
	for _, v := range h.variants {
		if !v.Group {
			names = append(names, v.Name)
		}
	}
	return names
}
