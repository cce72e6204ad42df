package themevariants

import (
	"io"
	"os"
)

// DetermineOutputFormat selects the report format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the generation report in the specified format
func WriteOutput(w io.Writer, result *GenerateResult, format OutputFormat, forceColors bool) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, forceColors)
		reporter.PrintIssues(result.Issues)
		if len(result.Issues) > 0 {
			reporter.PrintSummary(*result)
		}

	case OutputSummary:
		verboseReporter := NewVerboseReporter(w, shouldUseColors(forceColors))
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintPlugins(*result)

	case OutputFull:
		reporter := NewReporter(w, forceColors)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verboseReporter := NewVerboseReporter(w, reporter.UseColors())
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintPlugins(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}
	}
}
