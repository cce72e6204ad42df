package cssom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/themevariants/internal/selector"
)

// parserState tracks the open at-rule blocks while walking the grammar
type parserState struct {
	root    []Node
	stack   []*AtRule
	rule    *Rule
	pending []string // selectors of a group seen before the last comma
}

// Parse parses a stylesheet into nodes. Comments are dropped.
func Parse(content string) ([]Node, error) {
	p := css.NewParser(parse.NewInputString(content), false)
	state := &parserState{}

	for {
		gt, _, data := p.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse css: %w", err)
			}
			if len(state.stack) > 0 || state.rule != nil {
				return nil, errors.New("parse css: unexpected end of input, missing \"}\"")
			}
			return state.root, nil

		case css.AtRuleGrammar:
			state.append(&AtRule{
				Name:   strings.TrimPrefix(string(data), "@"),
				Params: joinTokens(p.Values(), true),
			})

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:   strings.TrimPrefix(string(data), "@"),
				Params: joinTokens(p.Values(), true),
				Block:  true,
			}
			state.append(at)
			state.stack = append(state.stack, at)

		case css.EndAtRuleGrammar:
			if len(state.stack) == 0 {
				return nil, errors.New("parse css: unbalanced \"}\"")
			}
			state.stack = state.stack[:len(state.stack)-1]

		case css.QualifiedRuleGrammar:
			state.pending = append(state.pending, selectorText(data, p.Values()))

		case css.BeginRulesetGrammar:
			parts := append(state.pending, selectorText(data, p.Values()))
			state.pending = nil
			rule := &Rule{Selector: normalizeSelector(strings.Join(parts, ", "))}
			state.append(rule)
			state.rule = rule

		case css.EndRulesetGrammar:
			state.rule = nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if state.rule == nil {
				return nil, fmt.Errorf("parse css: declaration %q outside of a rule", string(data))
			}
			state.rule.Decls = append(state.rule.Decls, newDecl(string(data), p.Values()))
		}
	}
}

func (s *parserState) append(n Node) {
	if len(s.stack) == 0 {
		s.root = append(s.root, n)
		return
	}
	top := s.stack[len(s.stack)-1]
	top.Nodes = append(top.Nodes, n)
}

// newDecl builds a declaration, splitting off a trailing !important
func newDecl(property string, values []css.Token) Decl {
	value := joinTokens(values, false)
	important := false
	if i := strings.LastIndex(value, "!"); i >= 0 && strings.EqualFold(strings.TrimSpace(value[i+1:]), "important") {
		important = true
		value = strings.TrimSpace(value[:i])
	}
	return Decl{Property: property, Value: value, Important: important}
}

// selectorText joins the selector tokens. The grammar drops whitespace
// around delimiters, so this reads ".a,.b" or ".x>*+*" until normalized.
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range values {
		if t.TokenType == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sb.String()), ","))
}

// normalizeSelector re-spaces combinators and lists. Keyframe selectors
// ("50%") are not selectors and are kept as written.
func normalizeSelector(s string) string {
	if n, err := selector.Normalize(s); err == nil {
		return n
	}
	return s
}

// joinTokens renders grammar values, restoring the space after commas and,
// for at-rule params, after a feature name's colon: "(min-width: 640px)".
func joinTokens(tokens []css.Token, featureColon bool) string {
	var sb strings.Builder
	prev := css.WhitespaceToken
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			sb.WriteByte(' ')
			prev = css.WhitespaceToken
			continue
		}
		if prev == css.CommaToken || prev == css.ColonToken && featureColon {
			sb.WriteByte(' ')
		}
		sb.Write(t.Data)
		if t.TokenType == css.ColonToken && prev != css.IdentToken {
			// pseudo-class in selector(), not a feature
			prev = css.WhitespaceToken
			continue
		}
		prev = t.TokenType
	}
	return strings.TrimSpace(sb.String())
}
