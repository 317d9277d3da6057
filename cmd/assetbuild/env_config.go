package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetbuild/internal/config"
)

const envPrefix = "ASSETBUILD_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing assetbuild.yaml.
type envConfig struct {
	ConfigPath string // ASSETBUILD_CONFIG: config file name or path
	OutputDir  string // ASSETBUILD_OUTPUT_DIR: asset output directory
	Sass       string // ASSETBUILD_SASS: sass binary
	PostCSS    string // ASSETBUILD_POSTCSS: postcss binary
}

// knownEnvVars lists valid ASSETBUILD_* environment variables.
var knownEnvVars = map[string]bool{
	"ASSETBUILD_CONFIG":     true,
	"ASSETBUILD_OUTPUT_DIR": true,
	"ASSETBUILD_SASS":       true,
	"ASSETBUILD_POSTCSS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("ASSETBUILD_CONFIG"),
		OutputDir:  os.Getenv("ASSETBUILD_OUTPUT_DIR"),
		Sass:       os.Getenv("ASSETBUILD_SASS"),
		PostCSS:    os.Getenv("ASSETBUILD_POSTCSS"),
	}
}

// warnUnknownEnvVars logs a warning for each unrecognized ASSETBUILD_*
// variable, e.g. ASSETBUILD_OUTPUTDIR instead of ASSETBUILD_OUTPUT_DIR.
func warnUnknownEnvVars(log logrus.FieldLogger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.WithField("variable", name).Warn("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by applyBuildFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.OutputDir = env.OutputDir
	}
	if env.Sass != "" {
		cfg.Stylesheet.Compiler = env.Sass
	}
	if env.PostCSS != "" {
		cfg.PostProcess.Binary = env.PostCSS
	}
}
