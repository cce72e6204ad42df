package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yacobolo/themevariants"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate theme variants and variables",
	Long: `Read utility stylesheets (one utility group per file, named by the file
stem), apply the theme plugins of the config file and write the stylesheet.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringSlice("input", nil, "Glob patterns for utility CSS files (default styles/utilities/**/*.css)")
	f.StringP("output", "o", "dist/themes.css", `Output stylesheet ("-" for stdout)`)
	f.String("output-format", "", "Report format: issues|summary|full|json")
	f.Bool("strict", false, "Exit 1 on any warning (CI mode)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()

	quiet := getBoolWithFallback("quiet", "quiet", false)
	color := getBoolWithFallback("color", "color", false)
	verbose := getBoolWithFallback("verbose", "verbose", false)

	log := newLogger(verbose, quiet, color)
	defer func() { _ = log.Sync() }()
	config.Logger = log

	// The report moves to stderr when the stylesheet goes to stdout
	var report io.Writer = cmd.OutOrStdout()
	if config.Output == "-" {
		report = cmd.ErrOrStderr()
	}

	result, err := themevariants.Generate(config)
	if err != nil && !errors.Is(err, themevariants.ErrStrict) {
		if issue, ok := themevariants.IssueFromError(err, config.ConfigFile); ok && !quiet {
			themevariants.NewReporter(report, color).PrintIssues([]themevariants.Issue{issue})
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if config.Output == "-" {
		fmt.Fprint(cmd.OutOrStdout(), result.CSS)
	}

	if !quiet {
		outputFormat := getStringWithFallback("output-format", "generate.output-format", "")
		format := themevariants.DetermineOutputFormat(outputFormat, quiet)
		themevariants.WriteOutput(report, result, format, color)

		if format == themevariants.OutputIssues && config.Output != "-" {
			fmt.Fprintf(report, "Generated %s (%d rules, %d variants, %d variables)\n",
				config.Output, result.RulesGenerated, result.Variants, result.Variables)
		}
	}

	// err is ErrStrict here when set
	return err
}
