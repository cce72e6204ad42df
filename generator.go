package themevariants

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/yacobolo/themevariants/internal/config"
	"github.com/yacobolo/themevariants/internal/cssom"
	"github.com/yacobolo/themevariants/internal/host"
	"github.com/yacobolo/themevariants/internal/themes"
)

// ErrStrict is returned by Generate in strict mode when warnings were found.
var ErrStrict = errors.New("warnings found in strict mode")

// Generate is the main entry point
func Generate(cfg Config) (*GenerateResult, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	result := &GenerateResult{Output: cfg.Output}

	// 1. Load the plugin configuration
	file, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("config failed: %w", err)
	}
	h := host.New(file.Host, log)

	// 2. Read utility groups
	files, stats, err := expandInputs(cfg.Inputs, newInputFilter(cfg.Output))
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesDiscovered = stats.FilesDiscovered
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped
	log.Debug("Found input files", zap.Int("files", len(files)), zap.Int("skipped", stats.FilesSkipped))

	if err := readInputs(h, files, log); err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	result.UtilityGroups = len(h.Groups())

	// 3. Run every plugin entry against the same host
	for i, opts := range file.Plugins {
		res, err := themes.Apply(h, opts, log.With(zap.Int("plugin", i)))
		if err != nil {
			return nil, fmt.Errorf("plugins[%d]: %w", i, err)
		}

		summary := PluginSummary{Group: opts.Group, Variants: len(res.Variants), Variables: res.Variables}
		for _, t := range opts.Themes {
			summary.Themes = append(summary.Themes, t.Name)
		}
		result.Plugins = append(result.Plugins, summary)
		result.Variants += len(res.Variants)
		result.Variables += len(res.Variables)
		result.SemanticUtilities += res.Utilities

		for _, d := range res.Diagnostics {
			result.Issues = append(result.Issues, issueFromDiagnostic(d, cfg.ConfigFile, i))
		}
	}

	// 4. Render
	sheet, err := h.Build()
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	result.RulesGenerated = cssom.CountRules(sheet.Nodes)
	result.CSS = sheet.String()

	// 5. Write
	if cfg.Output != "" && cfg.Output != "-" {
		n, err := writeSheet(cfg.Output, sheet)
		if err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		result.BytesWritten = n
	}

	log.Info("Generated stylesheet",
		zap.String("output", cfg.Output),
		zap.Int("rules", result.RulesGenerated),
		zap.Int("variants", result.Variants),
		zap.Int("variables", result.Variables))

	if cfg.Strict && result.Warnings() > 0 {
		return result, fmt.Errorf("%w: %d", ErrStrict, result.Warnings())
	}
	return result, nil
}

// readInputs parses every file into the utility group named by its stem
func readInputs(h *host.Host, files []string, log *zap.Logger) error {
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		nodes, err := cssom.Parse(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		group := groupName(file)
		h.AddUtilities(group, nodes...)
		log.Debug("Parsed utility group", zap.String("file", file), zap.String("group", group), zap.Int("rules", cssom.CountRules(nodes)))
	}
	return nil
}

func writeSheet(path string, sheet *cssom.Sheet) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := sheet.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func pluginContext(index int) string {
	return "plugins[" + strconv.Itoa(index) + "]"
}
