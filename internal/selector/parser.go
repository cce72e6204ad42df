package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrEmpty is returned for selectors without any node.
var ErrEmpty = errors.New("empty selector")

type token struct {
	tt   css.TokenType
	data string
}

// parser walks a pre-lexed token stream
type parser struct {
	toks []token
	pos  int
}

// Parse parses a selector list such as "html.dark .a, .b:hover".
func Parse(s string) (List, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", s, err)
	}

	p := &parser{toks: toks}
	list, err := p.parseList(false)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", s, err)
	}
	if p.pos < len(p.toks) {
		return nil, fmt.Errorf("selector %q: unexpected %q", s, p.toks[p.pos].data)
	}
	return list, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// selectors that are constant at compile time.
func MustParse(s string) List {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Normalize parses and re-serialises a selector list.
func Normalize(s string) (string, error) {
	l, err := Parse(s)
	if err != nil {
		return "", err
	}
	return l.String(), nil
}

func tokenize(s string) ([]token, error) {
	lexer := css.NewLexer(parse.NewInputString(s))

	var toks []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return toks, nil
		}

		switch tt {
		case css.BadStringToken, css.BadURLToken:
			return nil, fmt.Errorf("malformed token %q", string(data))
		case css.CommentToken:
			continue
		}
		toks = append(toks, token{tt: tt, data: string(data)})
	}
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// parseList reads comma-separated branches until EOF or a closing parenthesis.
// Relative lists (the argument of :has) may start with a combinator.
func (p *parser) parseList(relative bool) (List, error) {
	var list List
	for {
		sel, err := p.parseSelector(relative)
		if err != nil {
			return nil, err
		}
		list = append(list, sel)

		t, ok := p.peek()
		if !ok || t.tt != css.CommaToken {
			return list, nil
		}
		p.pos++
	}
}

func (p *parser) parseSelector(relative bool) (Selector, error) {
	var nodes []Node
	pendingSpace := false

loop:
	for {
		t, ok := p.peek()
		if !ok {
			break
		}

		switch {
		case t.tt == css.WhitespaceToken:
			p.pos++
			if len(nodes) > 0 {
				pendingSpace = true
			}
		case t.tt == css.CommaToken, t.tt == css.RightParenthesisToken:
			break loop
		case t.tt == css.DelimToken && (t.data == Child || t.data == NextSibling || t.data == LaterSibling):
			p.pos++
			if len(nodes) == 0 && !relative {
				return Selector{}, fmt.Errorf("combinator %q without a left-hand selector", t.data)
			}
			if len(nodes) > 0 && nodes[len(nodes)-1].Kind == KindCombinator {
				return Selector{}, fmt.Errorf("consecutive combinators before %q", t.data)
			}
			nodes = append(nodes, Node{Kind: KindCombinator, Value: t.data})
			pendingSpace = false
		default:
			if pendingSpace && nodes[len(nodes)-1].Kind != KindCombinator {
				nodes = append(nodes, Node{Kind: KindCombinator, Value: Descendant})
			}
			pendingSpace = false

			n, err := p.parseSimple()
			if err != nil {
				return Selector{}, err
			}
			nodes = append(nodes, n)
		}
	}

	if len(nodes) == 0 {
		return Selector{}, ErrEmpty
	}
	if nodes[len(nodes)-1].Kind == KindCombinator {
		return Selector{}, fmt.Errorf("dangling combinator %q", nodes[len(nodes)-1].Value)
	}
	return Selector{Nodes: nodes}, nil
}

func (p *parser) parseSimple() (Node, error) {
	t, _ := p.next()

	switch t.tt {
	case css.IdentToken:
		return Node{Kind: KindTag, Value: t.data}, nil
	case css.HashToken:
		return Node{Kind: KindID, Value: strings.TrimPrefix(t.data, "#")}, nil
	case css.LeftBracketToken:
		return p.parseAttribute()
	case css.ColonToken:
		return p.parsePseudo()
	case css.DelimToken:
		switch t.data {
		case "*":
			return Node{Kind: KindUniversal, Value: "*"}, nil
		case "&":
			return Node{Kind: KindNesting, Value: "&"}, nil
		case ".":
			name, ok := p.next()
			if !ok || name.tt != css.IdentToken {
				return Node{}, errors.New("expected class name after \".\"")
			}
			return Node{Kind: KindClass, Value: name.data}, nil
		}
	}
	return Node{}, fmt.Errorf("unexpected %q", t.data)
}

func (p *parser) parseAttribute() (Node, error) {
	var raw []token
	for {
		t, ok := p.next()
		if !ok {
			return Node{}, errors.New("unterminated attribute selector")
		}
		switch t.tt {
		case css.RightBracketToken:
			value := joinRaw(raw)
			if value == "" {
				return Node{}, errors.New("empty attribute selector")
			}
			return Node{Kind: KindAttribute, Value: value}, nil
		case css.LeftBracketToken, css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken:
			return Node{}, fmt.Errorf("unexpected %q in attribute selector", t.data)
		}
		raw = append(raw, t)
	}
}

func (p *parser) parsePseudo() (Node, error) {
	kind := KindPseudoClass
	if t, ok := p.peek(); ok && t.tt == css.ColonToken {
		p.pos++
		kind = KindPseudoElement
	}

	t, ok := p.next()
	if !ok {
		return Node{}, errors.New("expected pseudo-class name after \":\"")
	}

	switch t.tt {
	case css.IdentToken:
		return Node{Kind: kind, Value: t.data}, nil
	case css.FunctionToken:
		name := strings.TrimSuffix(t.data, "(")
		inner, err := p.collectArgs()
		if err != nil {
			return Node{}, fmt.Errorf(":%s(): %w", name, err)
		}

		n := Node{Kind: kind, Value: name, Func: true}
		if kind == KindPseudoClass && isSelectorPseudo(name) {
			sub := &parser{toks: inner}
			args, err := sub.parseList(strings.EqualFold(name, "has"))
			if err != nil {
				return Node{}, fmt.Errorf(":%s(): %w", name, err)
			}
			if sub.pos < len(sub.toks) {
				return Node{}, fmt.Errorf(":%s(): unexpected %q", name, sub.toks[sub.pos].data)
			}
			n.Args = args
			return n, nil
		}

		n.Raw = joinRaw(inner)
		if n.Raw == "" {
			return Node{}, fmt.Errorf(":%s(): missing argument", name)
		}
		return n, nil
	}
	return Node{}, fmt.Errorf("unexpected %q after \":\"", t.data)
}

// collectArgs consumes tokens up to the parenthesis closing the current
// function token and returns them without the closing parenthesis.
func (p *parser) collectArgs() ([]token, error) {
	var inner []token
	depth := 1
	for {
		t, ok := p.next()
		if !ok {
			return nil, errors.New("unterminated function")
		}
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return inner, nil
			}
		case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken:
			return nil, fmt.Errorf("unexpected %q", t.data)
		}
		inner = append(inner, t)
	}
}

// joinRaw concatenates token data; every whitespace run becomes one space.
func joinRaw(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.tt == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.data)
	}
	return strings.TrimSpace(sb.String())
}
