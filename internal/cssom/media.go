package cssom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseMediaQuery parses an at-rule header such as
// "@media (prefers-color-scheme: dark)" into an empty block at-rule.
// Only the header is accepted: a block, a semicolon or unbalanced
// parentheses make it an error.
func ParseMediaQuery(query string) (*AtRule, error) {
	lexer := css.NewLexer(parse.NewInputString(strings.TrimSpace(query)))

	tt, data := lexer.Next()
	if tt != css.AtKeywordToken {
		return nil, fmt.Errorf("media query %q must start with an at-keyword such as @media", query)
	}
	name := strings.TrimPrefix(string(data), "@")
	if !strings.EqualFold(name, "media") && !strings.EqualFold(name, "supports") {
		return nil, fmt.Errorf("media query %q: unsupported at-rule @%s", query, name)
	}

	var sb strings.Builder
	depth := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("media query %q: %w", query, err)
			}
			break
		}

		switch tt {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("media query %q: unbalanced \")\"", query)
			}
		case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken, css.BadStringToken, css.BadURLToken:
			return nil, fmt.Errorf("media query %q: unexpected %q", query, string(data))
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			sb.WriteByte(' ')
			continue
		}
		sb.Write(data)
	}

	if depth != 0 {
		return nil, fmt.Errorf("media query %q: unbalanced \"(\"", query)
	}
	params := strings.TrimSpace(sb.String())
	if params == "" {
		return nil, fmt.Errorf("media query %q has no condition", query)
	}
	return &AtRule{Name: strings.ToLower(name), Params: params, Block: true}, nil
}
