package themevariants

import (
	"errors"
	"sort"

	"github.com/yacobolo/themevariants/internal/themes"
)

// Issue is a single configuration finding
type Issue struct {
	FromPlugin string            `json:"FromPlugin"` // "plugins[0]"
	Code       string            `json:"Code"`       // "single-theme-fallback"
	Text       string            `json:"Text"`       // human readable message
	Severity   string            `json:"Severity"`   // "warning", "error"
	Key        string            `json:"Key,omitempty"`
	Fix        string            `json:"Fix,omitempty"`
	Context    map[string]string `json:"Context,omitempty"`
	Pos        IssuePos          `json:"Pos"`
}

// IssuePos locates the configuration an issue was found in
type IssuePos struct {
	Filename string `json:"Filename"` // ".themevariants.yaml"
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

func issueFromDiagnostic(d themes.Diagnostic, file string, plugin int) Issue {
	return Issue{
		FromPlugin: pluginContext(plugin),
		Code:       d.Code,
		Text:       d.Message,
		Severity:   string(d.Severity),
		Context:    d.Context,
		Pos:        IssuePos{Filename: file},
	}
}

// IssueFromError turns a configuration error returned by Generate into an
// Issue carrying its key and suggested fix.
func IssueFromError(err error, file string) (Issue, bool) {
	var cfgErr *themes.ConfigError
	if !errors.As(err, &cfgErr) {
		return Issue{}, false
	}
	return Issue{
		Code:     cfgErr.Code,
		Text:     cfgErr.Message,
		Severity: SeverityError,
		Key:      cfgErr.Key,
		Fix:      cfgErr.Fix,
		Pos:      IssuePos{Filename: file},
	}, true
}

// sortIssues orders issues by file, then plugin, then code
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].FromPlugin != issues[j].FromPlugin {
			return issues[i].FromPlugin < issues[j].FromPlugin
		}
		return issues[i].Code < issues[j].Code
	})
}
