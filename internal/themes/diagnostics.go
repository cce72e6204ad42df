package themes

import (
	"fmt"

	"go.uber.org/zap"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Warning codes.
const (
	CodeNoThemes            = "no-themes"
	CodeSingleThemeFallback = "single-theme-fallback"
	CodeFallbackEmptyBase   = "fallback-empty-base"
)

// Diagnostic is a non-fatal finding about a plugin configuration.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Context  map[string]string
}

// diagnostics collects findings, keeping at most one per code.
type diagnostics struct {
	log   *zap.Logger
	seen  map[string]bool
	items []Diagnostic
}

func newDiagnostics(log *zap.Logger) *diagnostics {
	return &diagnostics{log: log, seen: make(map[string]bool)}
}

func (d *diagnostics) warn(code, message string, context map[string]string) {
	if d.seen[code] {
		return
	}
	d.seen[code] = true
	d.items = append(d.items, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Context:  context,
	})

	fields := []zap.Field{zap.String("code", code)}
	for k, v := range context {
		fields = append(fields, zap.String(k, v))
	}
	d.log.Warn(message, fields...)
}

// Error codes of fatal configuration problems.
const (
	CodeGroupCollision    = "group-collision"
	CodeThemeActivation   = "theme-activation"
	CodeDuplicateTheme    = "duplicate-theme"
	CodeInvalidSelector   = "invalid-selector"
	CodeInvalidMediaQuery = "invalid-media-query"
	CodeMixedSemantics    = "mixed-semantics"
	CodeMissingReference  = "missing-reference"
	CodeUnresolvedValue   = "unresolved-value"
	CodeDuplicateVariable = "duplicate-variable"
	CodeAmbiguousDefault  = "ambiguous-default"
	CodeInvalidVariant    = "invalid-variant"
	CodeUnknownUtility    = "unknown-utility"
)

// ConfigError is a fatal configuration problem. It always names the
// offending key and a way to fix it.
type ConfigError struct {
	Code    string
	Key     string
	Message string
	Fix     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s (%s). Fix: %s", e.Key, e.Message, e.Code, e.Fix)
}

func configError(code, key, fix, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
		Fix:     fix,
	}
}
