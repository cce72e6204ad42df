package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/themevariants"
)

const defaultConfigFile = ".themevariants.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	// posflag skips unchanged flags, so keep the resolved path for Generate
	return k.Set("config", configPath)
}

// loadConfigFromPath loads CLI settings from a file and environment variables.
// The plugin sections of the same file are decoded later by Generate.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (THEMEVARIANTS_* prefix)
	if err := k.Load(env.Provider("THEMEVARIANTS_", ".", func(s string) string {
		// THEMEVARIANTS_GENERATE_OUTPUT -> generate.output
		// THEMEVARIANTS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "THEMEVARIANTS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() themevariants.Config {
	config := themevariants.Config{
		ConfigFile: getStringWithFallback("config", "config", defaultConfigFile),
		Output:     getStringWithFallback("output", "generate.output", "dist/themes.css"),
		Strict:     getBoolWithFallback("strict", "generate.strict", false),
	}

	// Handle inputs: check flag key first, then config key
	if inputs := k.Strings("input"); len(inputs) > 0 {
		config.Inputs = inputs
	} else if inputs := k.Strings("generate.input"); len(inputs) > 0 {
		config.Inputs = inputs
	} else {
		config.Inputs = []string{"styles/utilities/**/*.css"}
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
