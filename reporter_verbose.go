package themevariants

import (
	"fmt"
	"io"
	"strings"
)

// VerboseReporter prints generation statistics and per-plugin details
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs generation statistics
func (r *VerboseReporter) PrintStatistics(result GenerateResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Theme Variant Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Files Scanned:      %d (%d skipped)\n", result.FilesScanned, result.FilesSkipped)
	fmt.Fprintf(r.w, "Utility Groups:     %d\n", result.UtilityGroups)
	fmt.Fprintf(r.w, "Variants:           %d\n", result.Variants)
	fmt.Fprintf(r.w, "Variables:          %d\n", result.Variables)
	fmt.Fprintf(r.w, "Semantic Utilities: %d\n", result.SemanticUtilities)
	fmt.Fprintf(r.w, "Rules Generated:    %d\n", result.RulesGenerated)
	if result.BytesWritten > 0 {
		fmt.Fprintf(r.w, "Written:            %s (%d bytes)\n", result.Output, result.BytesWritten)
	}
}

// PrintPlugins lists the themes and variables of every plugin entry
func (r *VerboseReporter) PrintPlugins(result GenerateResult) {
	if len(result.Plugins) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Plugins", r.useColors))
	fmt.Fprintln(r.w, "-------")

	for i, p := range result.Plugins {
		name := pluginContext(i)
		if p.Group != "" {
			name += " (group " + p.Group + ")"
		}
		fmt.Fprintf(r.w, "%s: themes %s, %d variants\n", name, strings.Join(p.Themes, ", "), p.Variants)
		if len(p.Variables) > 0 {
			fmt.Fprintf(r.w, "  variables: --%s\n", strings.Join(p.Variables, ", --"))
		}
	}
}
