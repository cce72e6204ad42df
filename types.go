package themevariants

import "go.uber.org/zap"

// Config controls a generation run.
type Config struct {
	ConfigFile string   // ".themevariants.yaml", holds theme, variantOrder and plugins
	Inputs     []string // ["styles/utilities/*.css"] (doublestar globs)
	Output     string   // "dist/themes.css"; "" or "-" keeps the CSS in the result only
	Strict     bool     // warnings fail the run
	Logger     *zap.Logger
}

// GenerateResult contains generation stats and findings.
type GenerateResult struct {
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int // gitignored inputs and the output file itself

	UtilityGroups     int
	Variants          int
	Variables         int
	SemanticUtilities int
	RulesGenerated    int
	Plugins           []PluginSummary

	Output       string
	BytesWritten int64
	CSS          string

	Issues []Issue
}

// PluginSummary describes one plugin entry of the config file.
type PluginSummary struct {
	Group     string
	Themes    []string
	Variants  int
	Variables []string
}

// Warnings returns the number of warning issues.
func (r *GenerateResult) Warnings() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// OutputFormat represents the report format
type OutputFormat string

const (
	// OutputIssues shows only diagnostics (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and plugins only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows diagnostics, statistics and plugins
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
