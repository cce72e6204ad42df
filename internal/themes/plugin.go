package themes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yacobolo/themevariants/internal/host"
)

// Result summarises one plugin invocation.
type Result struct {
	Diagnostics []Diagnostic
	Variants    []string // registered variant names, in order
	Variables   []string // emitted custom properties, without "--"
	Utilities   int      // semantic utility classes added
}

// Apply validates opts and registers theme variants, custom-property base
// blocks and semantic utilities with api. Every configuration error is
// reported before anything is registered.
func Apply(api host.API, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("themes")
	if opts.Group != "" {
		log = log.With(zap.String("group", opts.Group))
	}

	diag := newDiagnostics(log)
	result := &Result{}

	reg, err := newRegistry(opts, diag)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = diag.items
	if len(reg.themes) == 0 {
		return result, nil
	}

	variants, err := variantSet(opts.Variants)
	if err != nil {
		return nil, err
	}

	var b *binding
	if reg.themes[0].Semantics != nil {
		table, err := newUtilityTable(opts.Utilities)
		if err != nil {
			return nil, err
		}
		flat := seedAliases(Flatten(themeValues(reg.themes)))
		if b, err = bind(reg, flat, table, api); err != nil {
			return nil, err
		}
	}

	gen := &generator{reg: reg}
	for _, v := range gen.registrations(variants) {
		if err := api.AddVariant(v); err != nil {
			return nil, fmt.Errorf("register variant: %w", err)
		}
		result.Variants = append(result.Variants, v.Name)
	}

	if b != nil {
		base, err := b.baseBlocks(reg)
		if err != nil {
			return nil, err
		}
		api.AddBase(base...)

		for _, v := range b.variables {
			result.Variables = append(result.Variables, v.name)
		}
		for _, u := range b.utilities {
			api.AddUtilities(u.key, u.nodes...)
			result.Utilities += len(u.nodes)
		}
	}

	log.Debug("Applied theme plugin",
		zap.Int("themes", len(reg.themes)),
		zap.String("baseSelector", reg.base),
		zap.Stringer("fallback", opts.Fallback),
		zap.Int("variants", len(result.Variants)),
		zap.Int("variables", len(result.Variables)))

	return result, nil
}

func themeValues(themes []*Theme) []Theme {
	out := make([]Theme, len(themes))
	for i, t := range themes {
		out[i] = *t
	}
	return out
}
