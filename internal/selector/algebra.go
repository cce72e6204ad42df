package selector

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Intersection merges single-branch selectors into one branch matching all of
// them, e.g. Intersection(":root", "html.dark") == "html:root.dark".
// Empty arguments are skipped.
func Intersection(selectors ...string) (string, error) {
	var merged []Node
	for _, s := range selectors {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sel, err := parseSingle(s)
		if err != nil {
			return "", err
		}
		merged = append(merged, sel.Nodes...)
	}
	if len(merged) == 0 {
		return "", nil
	}

	out, err := hoistType(merged)
	if err != nil {
		return "", err
	}
	return Selector{Nodes: out}.String(), nil
}

// hoistType moves the type selector of the leading compound to its front.
// A compound may carry a single type selector; a universal selector is
// dropped when a tag is present.
func hoistType(nodes []Node) ([]Node, error) {
	end := len(nodes)
	for i, n := range nodes {
		if n.Kind == KindCombinator {
			end = i
			break
		}
	}

	var typ *Node
	rest := make([]Node, 0, len(nodes))
	for i := 0; i < end; i++ {
		n := nodes[i]
		if n.Kind != KindTag && n.Kind != KindUniversal {
			rest = append(rest, n)
			continue
		}
		switch {
		case typ == nil:
			typ = &nodes[i]
		case n.Kind == KindUniversal:
		case typ.Kind == KindUniversal:
			typ = &nodes[i]
		case !strings.EqualFold(typ.Value, n.Value):
			return nil, fmt.Errorf("cannot intersect type selectors %q and %q", typ.Value, n.Value)
		}
	}

	out := make([]Node, 0, len(nodes))
	if typ != nil {
		out = append(out, *typ)
	}
	out = append(out, rest...)
	return append(out, nodes[end:]...), nil
}

// Distill factors the nodes shared by every selector out of them. Candidates
// are the nodes of the first selector's leading compound, in order. It
// returns the common part and, per input, what is left once it is removed.
//
//	Distill([]string{"html.theme-light", "html.theme-dark"})
//	// "html", [".theme-light", ".theme-dark"]
func Distill(selectors []string) (string, []string, error) {
	if len(selectors) == 0 {
		return "", nil, nil
	}

	parsed := make([]Selector, len(selectors))
	for i, s := range selectors {
		sel, err := parseSingle(s)
		if err != nil {
			return "", nil, err
		}
		parsed[i] = sel.clone()
	}

	var common []Node
	first := parsed[0].Compounds()[0]
	for _, candidate := range first {
		key := candidate.String()

		found := make([]int, len(parsed))
		shared := true
		for i, sel := range parsed {
			found[i] = indexOf(sel.Nodes, key)
			if found[i] < 0 {
				shared = false
				break
			}
		}
		if !shared {
			continue
		}

		common = append(common, candidate)
		for i := range parsed {
			nodes := parsed[i].Nodes
			parsed[i].Nodes = append(nodes[:found[i]:found[i]], nodes[found[i]+1:]...)
		}
	}

	different := make([]string, len(parsed))
	for i, sel := range parsed {
		different[i] = sel.String()
	}
	return Selector{Nodes: common}.String(), different, nil
}

func indexOf(nodes []Node, key string) int {
	for i, n := range nodes {
		if n.Kind != KindCombinator && n.String() == key {
			return i
		}
	}
	return -1
}

// AddParent prefixes parent as an ancestor of every alternative of selector:
// AddParent(".a, .b", "#p") == "#p .a, #p .b". A parent list yields the cross
// product. An empty parent returns selector unchanged.
func AddParent(selector, parent string) (string, error) {
	if strings.TrimSpace(parent) == "" {
		return selector, nil
	}

	list, err := Parse(selector)
	if err != nil {
		return "", err
	}
	parents, err := Parse(parent)
	if err != nil {
		return "", fmt.Errorf("parent: %w", err)
	}

	out := make(List, 0, len(list)*len(parents))
	for _, par := range parents {
		for _, sel := range list {
			nodes := make([]Node, 0, len(par.Nodes)+1+len(sel.Nodes))
			nodes = append(nodes, par.Nodes...)
			nodes = append(nodes, Node{Kind: KindCombinator, Value: Descendant})
			nodes = append(nodes, sel.Nodes...)
			out = append(out, Selector{Nodes: nodes})
		}
	}
	return out.String(), nil
}

// RenameClass rewrites the first class of every alternative with rename.
// Alternatives without a class are left as they are.
func RenameClass(selector string, rename func(class string) string) (string, error) {
	list, err := Parse(selector)
	if err != nil {
		return "", err
	}
	for i, sel := range list {
		sel = sel.clone()
		for j, n := range sel.Nodes {
			if n.Kind == KindClass {
				sel.Nodes[j].Value = rename(n.Value)
				break
			}
		}
		list[i] = sel
	}
	return list.String(), nil
}

// AppendPseudo attaches pseudo (":hover", ":nth-child(odd)") to the compound
// holding the first class of every alternative, ahead of any pseudo-element.
// Alternatives without a class get it on their last compound.
func AppendPseudo(selector, pseudo string) (string, error) {
	list, err := Parse(selector)
	if err != nil {
		return "", err
	}
	extra, err := parseSingle(pseudo)
	if err != nil {
		return "", fmt.Errorf("pseudo: %w", err)
	}
	if extra.HasCombinator() {
		return "", fmt.Errorf("pseudo %q must be a simple selector", pseudo)
	}

	for i, sel := range list {
		at := insertionPoint(sel.Nodes)
		nodes := make([]Node, 0, len(sel.Nodes)+len(extra.Nodes))
		nodes = append(nodes, sel.Nodes[:at]...)
		nodes = append(nodes, extra.Nodes...)
		nodes = append(nodes, sel.Nodes[at:]...)
		list[i] = Selector{Nodes: nodes}
	}
	return list.String(), nil
}

func insertionPoint(nodes []Node) int {
	start := 0
	for i, n := range nodes {
		if n.Kind == KindClass {
			start = i
			break
		}
		if n.Kind == KindCombinator {
			start = i + 1
		}
	}

	for i := start; i < len(nodes); i++ {
		if nodes[i].Kind == KindCombinator || nodes[i].Kind == KindPseudoElement {
			return i
		}
	}
	return len(nodes)
}

// Alternatives splits a selector list into its canonical alternatives.
func Alternatives(selector string) ([]string, error) {
	list, err := Parse(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.String()
	}
	return out, nil
}

// EscapeClass escapes a raw class name for use after a "." in a selector:
// EscapeClass("dark:hover:") == `dark\:hover\:`.
func EscapeClass(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case i == 0 && unicode.IsDigit(r):
			fmt.Fprintf(&sb, `\3%c `, r)
		case r == '-' || r == '_' || r >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

var errMultiple = errors.New("expected a single selector, got a list")

func parseSingle(s string) (Selector, error) {
	list, err := Parse(s)
	if err != nil {
		return Selector{}, err
	}
	if len(list) != 1 {
		return Selector{}, fmt.Errorf("%q: %w", s, errMultiple)
	}
	return list[0], nil
}
