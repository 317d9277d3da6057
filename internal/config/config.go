package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-assetbuild/internal/fileutil"
	"github.com/alnah/go-assetbuild/internal/yamlutil"
)

// DefaultName is the config file looked up when no --config is given.
const DefaultName = "assetbuild"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxTokenLength  = 100  // CSS class token
	MaxBinaryLength = 1024 // Tool name or path
	MaxLoadPaths    = 32
	MaxCopyEntries  = 256
	MaxTargets      = 16
)

// Post-processing engines.
const (
	EnginePostCSS = "postcss"
	EngineEsbuild = "esbuild"
)

// Config holds the build configuration read from assetbuild.yaml.
// Output paths are relative to OutputDir unless absolute.
type Config struct {
	OutputDir   string            `yaml:"outputDir"`
	Stylesheet  StylesheetConfig  `yaml:"stylesheet"`
	PostProcess PostProcessConfig `yaml:"postprocess"`
	Minify      bool              `yaml:"minify"`
	Highlight   HighlightConfig   `yaml:"highlight"`
	Copy        []CopyEntry       `yaml:"copy"`
}

// StylesheetConfig defines the Sass compilation step.
type StylesheetConfig struct {
	Source     string   `yaml:"source"`
	Output     string   `yaml:"output"`
	LoadPaths  []string `yaml:"loadPaths"`
	Compressed bool     `yaml:"compressed"`
	SourceMap  bool     `yaml:"sourceMap"`
	Compiler   string   `yaml:"compiler"` // Binary name or path (default: "sass")
}

// PostProcessConfig defines the vendor-prefixing step.
type PostProcessConfig struct {
	Enabled bool     `yaml:"enabled"`
	Engine  string   `yaml:"engine"`  // "postcss" (default) or "esbuild"
	Binary  string   `yaml:"binary"`  // postcss CLI path
	Plugins []string `yaml:"plugins"` // postcss plugins passed with --use
	Targets []string `yaml:"targets"` // esbuild engines, e.g. "chrome58", "safari11"
}

// HighlightConfig defines the syntax-highlighting stylesheet step.
// Source takes precedence over Style; both empty disables the step.
type HighlightConfig struct {
	Source string `yaml:"source"` // Vendored stylesheet to rewrite
	Output string `yaml:"output"`
	From   string `yaml:"from"`  // Token replaced in Source
	To     string `yaml:"to"`    // Replacement token
	Style  string `yaml:"style"` // Chroma style name used when Source is empty
}

// CopyEntry is one prebuilt bundle copied verbatim.
type CopyEntry struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"` // Empty = base name of Src
}

// DefaultConfig returns the layout of a Bootstrap + jQuery site:
// scss/mph.scss compiled against node_modules/bootstrap/scss and scss/,
// autoprefixed, the pygments default theme renamed from .codehilite to
// .highlight, and the two JavaScript bundles copied into assets/.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "assets",
		Stylesheet: StylesheetConfig{
			Source:     "scss/mph.scss",
			Output:     "style.css",
			LoadPaths:  []string{"node_modules/bootstrap/scss", "scss"},
			Compressed: true,
			SourceMap:  false,
			Compiler:   "sass",
		},
		PostProcess: PostProcessConfig{
			Enabled: true,
			Engine:  EnginePostCSS,
			Binary:  filepath.Join("node_modules", ".bin", "postcss"),
			Plugins: []string{"autoprefixer"},
		},
		Highlight: HighlightConfig{
			Source: "node_modules/pygments-css/default.css",
			Output: "pygments.css",
			From:   "codehilite",
			To:     "highlight",
		},
		Copy: []CopyEntry{
			{Src: "node_modules/bootstrap/dist/js/bootstrap.min.js"},
			{Src: "node_modules/jquery/dist/jquery.min.js"},
		},
	}
}

// Validate checks field lengths and enumerated values.
// Required-field checks happen on the build plan derived from the config.
func (c *Config) Validate() error {
	if err := validateFieldLength("outputDir", c.OutputDir, MaxPathLength); err != nil {
		return err
	}

	// Stylesheet
	if err := validateFieldLength("stylesheet.source", c.Stylesheet.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("stylesheet.output", c.Stylesheet.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("stylesheet.compiler", c.Stylesheet.Compiler, MaxBinaryLength); err != nil {
		return err
	}
	if len(c.Stylesheet.LoadPaths) > MaxLoadPaths {
		return fmt.Errorf("%w: stylesheet.loadPaths has %d entries (max %d)", ErrInvalidValue, len(c.Stylesheet.LoadPaths), MaxLoadPaths)
	}
	for i, p := range c.Stylesheet.LoadPaths {
		if err := validateFieldLength(fmt.Sprintf("stylesheet.loadPaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	// Post-processing
	switch strings.ToLower(c.PostProcess.Engine) {
	case "", EnginePostCSS, EngineEsbuild:
		// valid
	default:
		return fmt.Errorf("%w: postprocess.engine %q (must be postcss or esbuild)", ErrInvalidValue, c.PostProcess.Engine)
	}
	if err := validateFieldLength("postprocess.binary", c.PostProcess.Binary, MaxBinaryLength); err != nil {
		return err
	}
	for i, p := range c.PostProcess.Plugins {
		if err := validateFieldLength(fmt.Sprintf("postprocess.plugins[%d]", i), p, MaxTokenLength); err != nil {
			return err
		}
	}
	if len(c.PostProcess.Targets) > MaxTargets {
		return fmt.Errorf("%w: postprocess.targets has %d entries (max %d)", ErrInvalidValue, len(c.PostProcess.Targets), MaxTargets)
	}

	// Highlight
	if err := validateFieldLength("highlight.source", c.Highlight.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.output", c.Highlight.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.from", c.Highlight.From, MaxTokenLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.to", c.Highlight.To, MaxTokenLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxTokenLength); err != nil {
		return err
	}

	// Copy
	if len(c.Copy) > MaxCopyEntries {
		return fmt.Errorf("%w: copy has %d entries (max %d)", ErrInvalidValue, len(c.Copy), MaxCopyEntries)
	}
	for i, e := range c.Copy {
		if err := validateFieldLength(fmt.Sprintf("copy[%d].src", i), e.Src, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("copy[%d].dst", i), e.Dst, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// OutputPath resolves p against OutputDir. Absolute paths are returned as is.
func (c *Config) OutputPath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.OutputDir == "" {
		return p
	}
	return filepath.Join(c.OutputDir, p)
}

// NotFoundError reports every location searched for a config name.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Is makes errors.Is(err, ErrConfigNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	return loadFile(configPath)
}

// Discover loads the default config name from the standard locations
// (see resolveConfigPath) and falls back to DefaultConfig when none exists.
// The returned path is empty for the fallback.
func Discover() (*Config, string, error) {
	p, err := resolveConfigPath(DefaultName)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return DefaultConfig(), "", nil
		}
		return nil, "", err
	}
	cfg, err := loadFile(p)
	if err != nil {
		return nil, "", err
	}
	return cfg, p, nil
}

func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := dropDefaultHighlightSource(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// dropDefaultHighlightSource clears the default vendored highlight source
// when the file picks a chroma style without naming a source of its own.
func dropDefaultHighlightSource(data []byte, cfg *Config) error {
	var raw struct {
		Highlight struct {
			Source *string `yaml:"source"`
			Style  string  `yaml:"style"`
		} `yaml:"highlight"`
	}
	if err := yamlutil.Decode(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if raw.Highlight.Style != "" && raw.Highlight.Source == nil {
		cfg.Highlight.Source = ""
	}
	return nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-assetbuild/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-assetbuild", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", &NotFoundError{Tried: tried}
}
