package themevariants

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectConfig = `
theme:
  colors:
    red: "#f56565"
    gray:
      900: "#1a202c"
    white: "#ffffff"
variantOrder:
  "*": [light, dark]
plugins:
  - baseSelector: html
    fallback: true
    themes:
      light:
        selector: .theme-light
        semantics:
          colors:
            primary: gray-900
      dark:
        selector: .theme-dark
        semantics:
          colors:
            primary: white
`

// writeProject lays out a config file and utility inputs in a temp dir.
func writeProject(t *testing.T, config string, inputs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".themevariants.yaml"), []byte(config), 0o644))
	for name, css := range inputs {
		path := filepath.Join(dir, "styles", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(css), 0o644))
	}
	return dir
}

func TestGenerate(t *testing.T) {
	dir := writeProject(t, projectConfig, map[string]string{
		"backgroundColor.css": ".bg-red { background-color: #f56565; }",
		"textColor.css":       ".text-red { color: #f56565; }",
	})
	output := filepath.Join(dir, "dist", "themes.css")

	result, err := Generate(Config{
		ConfigFile: filepath.Join(dir, ".themevariants.yaml"),
		Inputs:     []string{filepath.Join(dir, "styles", "*.css")},
		Output:     output,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 0, result.FilesSkipped)
	assert.Equal(t, []PluginSummary{{
		Themes:    []string{"light", "dark"},
		Variants:  result.Variants,
		Variables: []string{"primary"},
	}}, result.Plugins)
	assert.Equal(t, 1, result.Variables)
	assert.Positive(t, result.SemanticUtilities)
	assert.Empty(t, result.Issues)

	css := result.CSS
	assert.Contains(t, css, "html:not(.theme-dark) {\n  --primary: 26, 32, 44;\n}")
	assert.Contains(t, css, "html.theme-dark {\n  --primary: 255, 255, 255;\n}")
	assert.Contains(t, css, `html:not(.theme-dark) .light\:bg-red`)
	assert.Contains(t, css, `html.theme-dark .dark\:text-red`)
	assert.Contains(t, css, ".bg-primary {\n  background-color: rgba(var(--primary), var(--bg-opacity, 1));\n}")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, css, string(written))
	assert.Equal(t, int64(len(written)), result.BytesWritten)
}

func TestGenerateSkipsOutputFile(t *testing.T) {
	dir := writeProject(t, projectConfig, map[string]string{
		"backgroundColor.css": ".bg-red { background-color: red; }",
	})
	output := filepath.Join(dir, "styles", "themes.css")
	cfg := Config{
		ConfigFile: filepath.Join(dir, ".themevariants.yaml"),
		Inputs:     []string{filepath.Join(dir, "styles", "*.css")},
		Output:     output,
	}

	_, err := Generate(cfg)
	require.NoError(t, err)

	// The second run must not read its own previous output back in.
	result, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesDiscovered)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
}

func TestGenerateStdout(t *testing.T) {
	dir := writeProject(t, projectConfig, map[string]string{
		"backgroundColor.css": ".bg-red { background-color: red; }",
	})

	result, err := Generate(Config{
		ConfigFile: filepath.Join(dir, ".themevariants.yaml"),
		Inputs:     []string{filepath.Join(dir, "styles", "*.css")},
		Output:     "-",
	})
	require.NoError(t, err)
	assert.Zero(t, result.BytesWritten)
	assert.NotEmpty(t, result.CSS)
	assert.NoFileExists(t, filepath.Join(dir, "-"))
}

func TestGenerateStrict(t *testing.T) {
	config := `
plugins:
  - fallback: true
    themes:
      light: {selector: .theme-light}
`
	dir := writeProject(t, config, map[string]string{
		"backgroundColor.css": ".bg-red { background-color: red; }",
	})
	cfg := Config{
		ConfigFile: filepath.Join(dir, ".themevariants.yaml"),
		Inputs:     []string{filepath.Join(dir, "styles", "*.css")},
	}

	result, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "single-theme-fallback", result.Issues[0].Code)
	assert.Equal(t, "plugins[0]", result.Issues[0].FromPlugin)
	assert.Equal(t, cfg.ConfigFile, result.Issues[0].Pos.Filename)

	cfg.Strict = true
	result, err = Generate(cfg)
	require.ErrorIs(t, err, ErrStrict)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Warnings())
}

func TestGenerateConfigError(t *testing.T) {
	config := `
plugins:
  - themes:
      light: {}
`
	dir := writeProject(t, config, nil)
	file := filepath.Join(dir, ".themevariants.yaml")

	_, err := Generate(Config{ConfigFile: file})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugins[0]")

	issue, ok := IssueFromError(err, file)
	require.True(t, ok)
	assert.Equal(t, "theme-activation", issue.Code)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.NotEmpty(t, issue.Fix)
	assert.Equal(t, file, issue.Pos.Filename)
}

func TestGenerateMissingConfig(t *testing.T) {
	_, err := Generate(Config{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)

	_, ok := IssueFromError(err, "missing.yaml")
	assert.False(t, ok)
}

func TestGroupName(t *testing.T) {
	assert.Equal(t, "backgroundColor", groupName("styles/backgroundColor.css"))
	assert.Equal(t, "textColor", groupName("/abs/textColor.css"))
	assert.Equal(t, "plain", groupName("plain"))
}

func TestWriteJSON(t *testing.T) {
	result := &GenerateResult{
		FilesScanned: 2,
		Variables:    1,
		Plugins:      []PluginSummary{{Themes: []string{"light", "dark"}, Variants: 30}},
		Issues: []Issue{{
			FromPlugin: "plugins[0]",
			Code:       "single-theme-fallback",
			Text:       "fallback is enabled with the single theme",
			Severity:   SeverityWarning,
			Pos:        IssuePos{Filename: ".themevariants.yaml"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, 1, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.Warnings)
	assert.Equal(t, 0, out.Summary.Errors)
	assert.Equal(t, 2, out.Summary.FilesScanned)
	assert.Equal(t, []string{}, out.Plugins[0].Variables)
	assert.Equal(t, "plugins[0]", out.Issues[0].Plugin)
}
