package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .themevariants.yaml config file",
	Long:  `Create a .themevariants.yaml configuration file in the current directory with a light and a dark theme.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# themevariants configuration

# CLI settings
verbose: false
generate:
  input:
    - "styles/utilities/**/*.css"
  output: dist/themes.css
  output-format: issues    # issues | summary | full | json
  strict: false

# Utility framework settings
separator: ":"
theme:
  colors:
    gray:
      100: "#f7fafc"
      900: "#1a202c"
    white: "#ffffff"
    black: "#000000"
variantOrder:
  "*": [light, dark, light:hover, dark:hover]

# One entry per independent set of themes
plugins:
  - baseSelector: ":root"
    fallback: true           # true | compact | false
    themes:
      light:                 # first theme is the fallback
        selector: .theme-light
        mediaQuery: "@media (prefers-color-scheme: light)"
        semantics:
          colors:
            primary: gray-900
            surface: white
      dark:
        selector: .theme-dark
        mediaQuery: "@media (prefers-color-scheme: dark)"
        semantics:
          colors:
            primary: gray-100
            surface: black
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
