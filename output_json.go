package themevariants

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Summary   JSONSummary  `json:"summary"`
	Stats     JSONStats    `json:"stats"`
	Plugins   []JSONPlugin `json:"plugins"`
	Issues    []JSONIssue  `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int    `json:"total_issues"`
	Errors       int    `json:"errors"`
	Warnings     int    `json:"warnings"`
	FilesScanned int    `json:"files_scanned"`
	Output       string `json:"output,omitempty"`
}

// JSONStats contains generation statistics
type JSONStats struct {
	UtilityGroups     int   `json:"utility_groups"`
	Variants          int   `json:"variants"`
	Variables         int   `json:"variables"`
	SemanticUtilities int   `json:"semantic_utilities"`
	RulesGenerated    int   `json:"rules_generated"`
	BytesWritten      int64 `json:"bytes_written"`
}

// JSONPlugin describes one plugin entry
type JSONPlugin struct {
	Group     string   `json:"group,omitempty"`
	Themes    []string `json:"themes"`
	Variants  int      `json:"variants"`
	Variables []string `json:"variables"`
}

// JSONIssue represents a single diagnostic
type JSONIssue struct {
	File     string            `json:"file"`
	Plugin   string            `json:"plugin,omitempty"`
	Code     string            `json:"code"`
	Severity string            `json:"severity"`
	Message  string            `json:"message"`
	Key      string            `json:"key,omitempty"`
	Fix      string            `json:"fix,omitempty"`
	Context  map[string]string `json:"context,omitempty"`
}

// WriteJSON writes the generation result as JSON
func WriteJSON(w io.Writer, result *GenerateResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts GenerateResult to JSONOutput
func buildJSONOutput(result *GenerateResult) JSONOutput {
	var errors, warnings int
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Plugin:   issue.FromPlugin,
			Code:     issue.Code,
			Severity: issue.Severity,
			Message:  issue.Text,
			Key:      issue.Key,
			Fix:      issue.Fix,
			Context:  issue.Context,
		}
	}

	plugins := make([]JSONPlugin, len(result.Plugins))
	for i, p := range result.Plugins {
		vars := p.Variables
		if vars == nil {
			vars = []string{}
		}
		plugins[i] = JSONPlugin{Group: p.Group, Themes: p.Themes, Variants: p.Variants, Variables: vars}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			FilesScanned: result.FilesScanned,
			Output:       result.Output,
		},
		Stats: JSONStats{
			UtilityGroups:     result.UtilityGroups,
			Variants:          result.Variants,
			Variables:         result.Variables,
			SemanticUtilities: result.SemanticUtilities,
			RulesGenerated:    result.RulesGenerated,
			BytesWritten:      result.BytesWritten,
		},
		Plugins: plugins,
		Issues:  issues,
	}
}
