package cssom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	nodes, err := Parse(`
/* utilities */
.bg-red { background-color: red; }
.a, .b { margin: 0 auto !important; --x: 1px }
@media (min-width: 640px) {
  .sm\:p-4 { padding: 1rem; }
}
@import "base.css";
`)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	rule, ok := nodes[0].(*Rule)
	require.True(t, ok)
	assert.Equal(t, ".bg-red", rule.Selector)
	assert.Equal(t, []Decl{{Property: "background-color", Value: "red"}}, rule.Decls)

	group := nodes[1].(*Rule)
	assert.Equal(t, ".a, .b", group.Selector)
	require.Len(t, group.Decls, 2)
	assert.Equal(t, Decl{Property: "margin", Value: "0 auto", Important: true}, group.Decls[0])
	assert.Equal(t, "--x", group.Decls[1].Property)
	assert.Equal(t, "1px", group.Decls[1].Value)

	media := nodes[2].(*AtRule)
	assert.Equal(t, "media", media.Name)
	assert.Equal(t, "(min-width: 640px)", media.Params)
	require.Len(t, media.Nodes, 1)
	assert.Equal(t, `.sm\:p-4`, media.Nodes[0].(*Rule).Selector)

	imp := nodes[3].(*AtRule)
	assert.False(t, imp.Block)
	assert.Equal(t, "import", imp.Name)
}

func TestParseKeepsSpacing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "child and sibling combinators",
			input: ".space-x-2 > * + * { margin-left: 0.5rem; }",
			want:  ".space-x-2 > * + * {\n  margin-left: 0.5rem;\n}\n",
		},
		{
			name:  "squashed list",
			input: ".a,.b>.c { color: red; }",
			want:  ".a, .b > .c {\n  color: red;\n}\n",
		},
		{
			name:  "media feature",
			input: "@media screen and (min-width:640px) { .a { color: red; } }",
			want:  "@media screen and (min-width: 640px) {\n  .a {\n    color: red;\n  }\n}\n",
		},
		{
			name:  "declaration list",
			input: ".font-sans { font-family: ui-sans-serif , system-ui; }",
			want:  ".font-sans {\n  font-family: ui-sans-serif, system-ui;\n}\n",
		},
		{
			name:  "arithmetic keeps its spaces",
			input: ".w { width: calc(100% - 1rem); }",
			want:  ".w {\n  width: calc(100% - 1rem);\n}\n",
		},
		{
			name:  "keyframe selectors stay as written",
			input: "@keyframes spin { to { transform: rotate(360deg); } }",
			want:  "@keyframes spin {\n  to {\n    transform: rotate(360deg);\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, String(nodes))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := []Node{
		NewRule(".a", Decl{Property: "color", Value: "red"}),
		(&AtRule{Name: "media", Params: "print"}).Wrap([]Node{NewRule(".b")}),
	}

	copied := Clone(original)
	require.NoError(t, WalkRules(copied, func(r *Rule) error {
		r.Selector = "changed"
		return nil
	}))
	copied[0].(*Rule).Decls[0].Value = "blue"

	assert.Equal(t, ".a", original[0].(*Rule).Selector)
	assert.Equal(t, "red", original[0].(*Rule).Decls[0].Value)
	assert.Equal(t, ".b", original[1].(*AtRule).Nodes[0].(*Rule).Selector)
	assert.Equal(t, 2, CountRules(copied))
}

func TestWrite(t *testing.T) {
	sheet := &Sheet{Nodes: []Node{
		NewRule(".bg-red", Decl{Property: "background-color", Value: "red"}),
		(&AtRule{Name: "media", Params: "(prefers-color-scheme: dark)"}).Wrap([]Node{
			NewRule(`:root .dark\:bg-red`, Decl{Property: "background-color", Value: "red", Important: true}),
		}),
	}}

	want := `.bg-red {
  background-color: red;
}

@media (prefers-color-scheme: dark) {
  :root .dark\:bg-red {
    background-color: red !important;
  }
}
`
	assert.Equal(t, want, sheet.String())
}

func TestParseMediaQuery(t *testing.T) {
	at, err := ParseMediaQuery("@media (prefers-color-scheme: dark)")
	require.NoError(t, err)
	assert.Equal(t, "media", at.Name)
	assert.Equal(t, "(prefers-color-scheme: dark)", at.Params)

	at, err = ParseMediaQuery("  @media   screen and (min-width:640px) ")
	require.NoError(t, err)
	assert.Equal(t, "screen and (min-width:640px)", at.Params)

	bad := []string{
		"(prefers-color-scheme: dark)",
		"@media",
		"@media (prefers-color-scheme: dark",
		"@media print { .a { color: red } }",
		"@font-face",
	}
	for _, q := range bad {
		_, err := ParseMediaQuery(q)
		assert.Error(t, err, q)
	}
}
