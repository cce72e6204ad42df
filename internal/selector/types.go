// Package selector implements the selector algebra used to scope utility
// rules to themes: parsing, canonical serialisation, intersection, distilling
// a common prefix out of related selectors, and prefixing parents.
package selector

import "strings"

// Kind identifies the type of a selector node.
type Kind int

const (
	KindTag           Kind = iota // html
	KindUniversal                 // *
	KindNesting                   // &
	KindID                        // #app
	KindClass                     // .bg-red
	KindAttribute                 // [data-theme="dark"]
	KindPseudoClass               // :hover, :not(.a)
	KindPseudoElement             // ::placeholder
	KindCombinator                // " ", ">", "+", "~"
)

// Combinator values stored in Node.Value for KindCombinator nodes.
const (
	Descendant      = " "
	Child           = ">"
	NextSibling     = "+"
	LaterSibling    = "~"
	selectorPseudos = "not is where has matches"
)

// Node is a single component of a selector branch.
type Node struct {
	Kind  Kind
	Value string // name without sigil; raw (escaped) form is preserved
	Func  bool   // functional pseudo, e.g. :not(...)
	Args  List   // parsed arguments of selector-taking pseudos
	Raw   string // canonical arguments of other functional pseudos
}

// Selector is one comma-separated alternative: an ordered run of nodes.
type Selector struct {
	Nodes []Node
}

// List is a comma-separated selector list.
type List []Selector

// String renders the node in canonical form.
func (n Node) String() string {
	switch n.Kind {
	case KindTag:
		return n.Value
	case KindUniversal:
		return "*"
	case KindNesting:
		return "&"
	case KindID:
		return "#" + n.Value
	case KindClass:
		return "." + n.Value
	case KindAttribute:
		return "[" + n.Value + "]"
	case KindPseudoClass, KindPseudoElement:
		prefix := ":"
		if n.Kind == KindPseudoElement {
			prefix = "::"
		}
		if !n.Func {
			return prefix + n.Value
		}
		args := n.Raw
		if n.Args != nil {
			args = n.Args.String()
		}
		return prefix + n.Value + "(" + args + ")"
	case KindCombinator:
		if n.Value == Descendant {
			return " "
		}
		return " " + n.Value + " "
	}
	return ""
}

// String renders the branch in canonical form.
func (s Selector) String() string {
	var sb strings.Builder
	for i, n := range s.Nodes {
		if i == 0 && n.Kind == KindCombinator {
			// relative selector, as in :has(> img)
			sb.WriteString(strings.TrimLeft(n.String(), " "))
			continue
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}

// String renders the list with alternatives joined by ", ".
func (l List) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Compounds splits the branch at its combinators.
func (s Selector) Compounds() [][]Node {
	var out [][]Node
	start := 0
	for i, n := range s.Nodes {
		if n.Kind == KindCombinator {
			out = append(out, s.Nodes[start:i])
			start = i + 1
		}
	}
	return append(out, s.Nodes[start:])
}

// HasCombinator reports whether the branch spans more than one compound.
func (s Selector) HasCombinator() bool {
	for _, n := range s.Nodes {
		if n.Kind == KindCombinator {
			return true
		}
	}
	return false
}

func (s Selector) clone() Selector {
	nodes := make([]Node, len(s.Nodes))
	copy(nodes, s.Nodes)
	return Selector{Nodes: nodes}
}

func isSelectorPseudo(name string) bool {
	for _, p := range strings.Fields(selectorPseudos) {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}
