// Package themevariants generates theme-scoped CSS variants for utility
// classes and binds theme-specific semantic values to custom properties.
//
// # Generation
//
// Utility CSS files are read from the configured inputs; each file becomes a
// utility group named after its stem (backgroundColor.css -> backgroundColor).
// The plugin sections of the config file then register theme variants
// ("dark:bg-red"), custom-property blocks and semantic utilities
// ("bg-primary"), and the resulting stylesheet is written to Output:
//
//	result, err := themevariants.Generate(themevariants.Config{
//		ConfigFile: ".themevariants.yaml",
//		Inputs:     []string{"styles/utilities/*.css"},
//		Output:     "dist/themes.css",
//	})
//
// # CLI Tool
//
//	go install github.com/yacobolo/themevariants/cmd/themevariants@latest
package themevariants
