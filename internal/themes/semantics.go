package themes

import "strings"

// DefaultName is the variable name of a root-level DEFAULT entry. It renders
// as the bare utility prefix.
const DefaultName = "DEFAULT"

// Segment is one key of a semantic tree path.
type Segment struct {
	name      string
	isDefault bool
}

// Default is the segment denoting a level's own value.
var Default = Segment{isDefault: true}

// Name returns a plain segment.
func Name(name string) Segment {
	return Segment{name: name}
}

// ParseSegment maps "DEFAULT" and "default" to Default.
func ParseSegment(key string) Segment {
	if key == "DEFAULT" || key == "default" {
		return Default
	}
	return Name(key)
}

// IsDefault reports whether s is the Default segment.
func (s Segment) IsDefault() bool { return s.isDefault }

func (s Segment) String() string {
	if s.isDefault {
		return DefaultName
	}
	return s.name
}

// Semantic is either a leaf naming a host theme value ("gray-800") or a node
// holding further entries.
type Semantic struct {
	Leaf     string
	Children []SemanticEntry
	isNode   bool
}

// SemanticEntry is a keyed child of a semantic node.
type SemanticEntry struct {
	Segment Segment
	Value   Semantic
}

// Leaf returns a leaf semantic.
func Leaf(value string) Semantic {
	return Semantic{Leaf: value}
}

// Node returns a node semantic with the given entries in order.
func Node(entries ...SemanticEntry) Semantic {
	return Semantic{Children: entries, isNode: true}
}

// Entry is shorthand for a plain-named SemanticEntry.
func Entry(key string, value Semantic) SemanticEntry {
	return SemanticEntry{Segment: ParseSegment(key), Value: value}
}

// IsLeaf reports whether s is a leaf.
func (s Semantic) IsLeaf() bool { return !s.isNode }

// ThemeSource is the value name a theme binds a variable to.
type ThemeSource struct {
	Theme string
	Value string
}

// Variable is a flattened semantic variable with its per-theme sources in
// theme declaration order.
type Variable struct {
	Name    string
	Sources []ThemeSource
}

// Source returns the value name bound by theme.
func (v *Variable) Source(theme string) (string, bool) {
	for _, s := range v.Sources {
		if s.Theme == theme {
			return s.Value, true
		}
	}
	return "", false
}

func (v *Variable) bind(theme, value string) {
	for i := range v.Sources {
		if v.Sources[i].Theme == theme {
			v.Sources[i].Value = value
			return
		}
	}
	v.Sources = append(v.Sources, ThemeSource{Theme: theme, Value: value})
}

func (v *Variable) clone() *Variable {
	sources := make([]ThemeSource, len(v.Sources))
	copy(sources, v.Sources)
	return &Variable{Name: v.Name, Sources: sources}
}

// FlatUtility holds the variables of one utility key in first-seen order.
type FlatUtility struct {
	Key       string
	Variables []*Variable
	index     map[string]*Variable
}

// Variable returns the variable with the given name.
func (u *FlatUtility) Variable(name string) *Variable {
	return u.index[name]
}

func (u *FlatUtility) variable(name string) *Variable {
	if v, ok := u.index[name]; ok {
		return v
	}
	v := &Variable{Name: name}
	u.index[name] = v
	u.Variables = append(u.Variables, v)
	return v
}

// Flattened is the flattened semantics of all themes.
type Flattened struct {
	Utilities []*FlatUtility
	index     map[string]*FlatUtility
}

func newFlattened() *Flattened {
	return &Flattened{index: make(map[string]*FlatUtility)}
}

// Utility returns the flattened utility with the given key.
func (f *Flattened) Utility(key string) *FlatUtility {
	return f.index[key]
}

func (f *Flattened) utility(key string) *FlatUtility {
	if u, ok := f.index[key]; ok {
		return u
	}
	u := &FlatUtility{Key: key, index: make(map[string]*Variable)}
	f.index[key] = u
	f.Utilities = append(f.Utilities, u)
	return u
}

// Flatten turns every theme's semantic trees into variables. Path segments
// join with "-" and Default segments collapse into their parent's name.
func Flatten(themes []Theme) *Flattened {
	f := newFlattened()
	for _, theme := range themes {
		for _, us := range theme.Semantics {
			flattenInto(f.utility(us.Key), theme.Name, "", us.Tree)
		}
	}
	return f
}

func flattenInto(u *FlatUtility, theme, prefix string, tree Semantic) {
	if tree.IsLeaf() {
		name := prefix
		if name == "" {
			name = DefaultName
		}
		u.variable(name).bind(theme, tree.Leaf)
		return
	}

	for _, entry := range tree.Children {
		name := prefix
		if !entry.Segment.IsDefault() {
			name = joinName(prefix, entry.Segment.name)
		}
		flattenInto(u, theme, name, entry.Value)
	}
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

// colour families seeding utilities that do not define their own semantics
var aliasSeeds = []struct {
	source  string
	targets []string
}{
	{"colors", []string{"backgroundColor", "borderColor", "divideColor", "textColor", "placeholderColor", "ringColor"}},
	{"gradientColorStops", []string{"gradientFromColor", "gradientViaColor", "gradientToColor"}},
}

// seedAliases replaces the generic colors and gradientColorStops keys by
// copies under every utility that lacks its own definition.
func seedAliases(f *Flattened) *Flattened {
	out := newFlattened()
	for _, u := range f.Utilities {
		targets := aliasTargets(u.Key)
		if targets == nil {
			if out.Utility(u.Key) == nil {
				out.adopt(u.Key, u.Variables)
			}
			continue
		}
		for _, target := range targets {
			if f.Utility(target) != nil || out.Utility(target) != nil {
				continue
			}
			out.adopt(target, u.Variables)
		}
	}
	return out
}

func aliasTargets(key string) []string {
	for _, seed := range aliasSeeds {
		if seed.source == key {
			return seed.targets
		}
	}
	return nil
}

func (f *Flattened) adopt(key string, vars []*Variable) {
	u := f.utility(key)
	for _, v := range vars {
		c := v.clone()
		u.index[c.Name] = c
		u.Variables = append(u.Variables, c)
	}
}

// String renders the variable as "name{theme=value ...}" for diagnostics.
func (v *Variable) String() string {
	var sb strings.Builder
	sb.WriteString(v.Name)
	sb.WriteByte('{')
	for i, s := range v.Sources {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Theme)
		sb.WriteByte('=')
		sb.WriteString(s.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}
