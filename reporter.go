package themevariants

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Reporter prints diagnostics one per line
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter; forceColors enables colors even without a TTY
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(forceColors),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues sorted by file, plugin and code
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sortIssues(sorted)

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue:
//
//	.themevariants.yaml: plugins[0]: warning: message (code)
//		fix: ...
func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.FromPlugin != "" {
		location += " " + issue.FromPlugin + ":"
	}
	if issue.Key != "" {
		location += " " + issue.Key + ":"
	}

	fmt.Fprintf(r.w, "%s %s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(severityStyle(issue.Severity), issue.Severity+":", r.useColors),
		issue.Text,
		RenderStyle(StyleGray, " ("+issue.Code+")", r.useColors))

	if issue.Fix != "" {
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleGray, "fix: "+issue.Fix, r.useColors))
	}
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result GenerateResult) {
	var errors, warnings int
	codes := make(map[string]int)
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
		codes[issue.Code]++
	}

	fmt.Fprintln(r.w, "")
	if errors > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(len(result.Issues), "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(result.Issues), "issue", "issues"))
	}

	names := make([]string, 0, len(codes))
	for code := range codes {
		names = append(names, code)
	}
	sort.Strings(names)
	for _, code := range names {
		fmt.Fprintf(r.w, "* %s: %d\n", code, codes[code])
	}

	if len(result.Issues) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see statistics", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
