package themevariants

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", formatFlag: "json", quiet: true, expected: OutputIssues},
		{name: "explicit issues format", formatFlag: "issues", expected: OutputIssues},
		{name: "explicit summary format", formatFlag: "summary", expected: OutputSummary},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "empty falls back to default", formatFlag: "", expected: OutputIssues},
		{name: "unknown falls back to default", formatFlag: "markdown", expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func sampleResult() *GenerateResult {
	return &GenerateResult{
		FilesScanned:      3,
		FilesSkipped:      1,
		UtilityGroups:     2,
		Variants:          30,
		Variables:         2,
		SemanticUtilities: 14,
		RulesGenerated:    64,
		Plugins: []PluginSummary{
			{Group: "themes", Themes: []string{"light", "dark"}, Variants: 30, Variables: []string{"primary", "surface"}},
		},
		Issues: []Issue{
			{FromPlugin: "plugins[1]", Code: "no-themes", Text: "no themes", Severity: SeverityWarning, Pos: IssuePos{Filename: "a.yaml"}},
			{FromPlugin: "plugins[0]", Code: "single-theme-fallback", Text: "single theme", Severity: SeverityWarning, Pos: IssuePos{Filename: "a.yaml"}},
		},
	}
}

func TestReporterPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintIssues(append(sampleResult().Issues, Issue{
		Code:     "theme-activation",
		Text:     `theme "x" has neither a selector nor a media query`,
		Severity: SeverityError,
		Key:      "themes.x",
		Fix:      `add a "selector"`,
		Pos:      IssuePos{Filename: "a.yaml"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `a.yaml: themes.x: error: theme "x" has neither a selector nor a media query (theme-activation)`, lines[0])
	assert.Equal(t, "\tfix: add a \"selector\"", lines[1])
	assert.Equal(t, "a.yaml: plugins[0]: warning: single theme (single-theme-fallback)", lines[2])
	assert.Equal(t, "a.yaml: plugins[1]: warning: no themes (no-themes)", lines[3])
}

func TestReporterPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}
	r.PrintSummary(*sampleResult())

	out := buf.String()
	assert.Contains(t, out, "2 issues:\n")
	assert.Contains(t, out, "* no-themes: 1\n* single-theme-fallback: 1\n")
	assert.Contains(t, out, "Hint:")
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 issue", pluralizeCount(1, "issue", "issues"))
	assert.Equal(t, "0 issues", pluralizeCount(0, "issue", "issues"))
	assert.Equal(t, "2 warnings", pluralizeCount(2, "warning", "warnings"))
}

func TestWriteOutputSummary(t *testing.T) {
	var buf bytes.Buffer
	NewVerboseReporter(&buf, false).PrintStatistics(*sampleResult())
	NewVerboseReporter(&buf, false).PrintPlugins(*sampleResult())

	out := buf.String()
	assert.Contains(t, out, "Files Scanned:      3 (1 skipped)\n")
	assert.Contains(t, out, "Rules Generated:    64\n")
	assert.NotContains(t, out, "Written:")
	assert.Contains(t, out, "plugins[0] (group themes): themes light, dark, 30 variants\n")
	assert.Contains(t, out, "  variables: --primary, --surface\n")
}

func TestWriteOutputIssuesWithoutFindings(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, &GenerateResult{}, OutputIssues, false)
	assert.Empty(t, buf.String())
}

func TestRenderStyle(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}
