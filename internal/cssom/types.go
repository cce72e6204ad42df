// Package cssom is the small CSS object model the host and the theme plugin
// exchange: rules with ordered declarations, at-rules wrapping further nodes,
// and a deterministic writer.
package cssom

// Node is a top-level or nested stylesheet item: *Rule or *AtRule.
type Node interface {
	// Clone returns a deep copy, so transforms never touch a shared original.
	Clone() Node
	isNode()
}

// Decl is a single declaration; order inside a rule is preserved.
type Decl struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a qualified rule: a selector with its declarations.
type Rule struct {
	Selector string
	Decls    []Decl
}

// AtRule is an at-rule such as "@media (prefers-color-scheme: dark) { ... }".
// Statement at-rules (@import) have Block == false and no Nodes.
type AtRule struct {
	Name   string // without "@"
	Params string
	Block  bool
	Nodes  []Node
}

func (*Rule) isNode()   {}
func (*AtRule) isNode() {}

// Clone implements Node.
func (r *Rule) Clone() Node {
	decls := make([]Decl, len(r.Decls))
	copy(decls, r.Decls)
	return &Rule{Selector: r.Selector, Decls: decls}
}

// Clone implements Node.
func (a *AtRule) Clone() Node {
	return &AtRule{Name: a.Name, Params: a.Params, Block: a.Block, Nodes: Clone(a.Nodes)}
}

// NewRule builds a rule from property/value pairs.
func NewRule(selector string, decls ...Decl) *Rule {
	return &Rule{Selector: selector, Decls: decls}
}

// Wrap returns a copy of the at-rule holding nodes.
func (a *AtRule) Wrap(nodes []Node) *AtRule {
	return &AtRule{Name: a.Name, Params: a.Params, Block: true, Nodes: nodes}
}

// Clone deep-copies a node list.
func Clone(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// WalkRules calls fn for every rule, descending into at-rules.
func WalkRules(nodes []Node, fn func(*Rule) error) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Rule:
			if err := fn(n); err != nil {
				return err
			}
		case *AtRule:
			if err := WalkRules(n.Nodes, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// CountRules returns the number of rules in nodes, nested ones included.
func CountRules(nodes []Node) int {
	count := 0
	_ = WalkRules(nodes, func(*Rule) error {
		count++
		return nil
	})
	return count
}
