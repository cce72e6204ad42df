package cssom

import (
	"fmt"
	"io"
	"strings"
)

// Sheet is an ordered list of top-level nodes.
type Sheet struct {
	Nodes []Node
}

// WriteTo writes the sheet to w, implementing io.WriterTo. Top-level items
// are separated by a blank line; declaration order is kept as is.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for i, n := range s.Nodes {
		if i > 0 {
			cw.printf("\n")
		}
		writeNode(cw, n, 0)
		if cw.err != nil {
			break
		}
	}
	return cw.n, cw.err
}

// String returns the CSS text of the sheet.
func (s *Sheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// String renders nodes as CSS text.
func String(nodes []Node) string {
	return (&Sheet{Nodes: nodes}).String()
}

func writeNode(w *countingWriter, n Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := n.(type) {
	case *Rule:
		w.printf("%s%s {\n", indent, n.Selector)
		for _, d := range n.Decls {
			w.printf("%s  %s\n", indent, d.String())
		}
		w.printf("%s}\n", indent)

	case *AtRule:
		head := "@" + n.Name
		if n.Params != "" {
			head += " " + n.Params
		}
		if !n.Block {
			w.printf("%s%s;\n", indent, head)
			return
		}
		w.printf("%s%s {\n", indent, head)
		for i, child := range n.Nodes {
			if i > 0 {
				w.printf("\n")
			}
			writeNode(w, child, depth+1)
		}
		w.printf("%s}\n", indent)
	}
}

// String renders the declaration with its trailing semicolon.
func (d Decl) String() string {
	if d.Important {
		return fmt.Sprintf("%s: %s !important;", d.Property, d.Value)
	}
	return fmt.Sprintf("%s: %s;", d.Property, d.Value)
}

// countingWriter remembers the first error so the writer code stays linear
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	n, err := fmt.Fprintf(c.w, format, args...)
	c.n += int64(n)
	c.err = err
}
