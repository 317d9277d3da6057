package assetbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// DefaultPostCSSBinary is the dependency-local postcss CLI.
var DefaultPostCSSBinary = filepath.Join("node_modules", ".bin", "postcss")

// DefaultPostCSSPlugins applies vendor prefixes.
var DefaultPostCSSPlugins = []string{"autoprefixer"}

// DefaultEsbuildTargets approximates autoprefixer's "defaults" browserslist query.
var DefaultEsbuildTargets = []string{"chrome87", "edge88", "firefox78", "safari14", "ios14"}

// PostProcessor rewrites a CSS file in place.
type PostProcessor interface {
	Process(ctx context.Context, path string) error
}

// Compile-time interface implementation checks.
var (
	_ StyleCompiler = (*SassCompiler)(nil)
	_ PostProcessor = (*PostCSS)(nil)
	_ PostProcessor = (*EsbuildPrefixer)(nil)
)

// PostCSS runs the postcss CLI with --replace.
type PostCSS struct {
	Runner  CommandRunner
	Binary  string   // Default: DefaultPostCSSBinary
	Plugins []string // Default: DefaultPostCSSPlugins
}

// Args returns the command-line arguments for processing path in place.
func (p *PostCSS) Args(path string) []string {
	plugins := p.Plugins
	if len(plugins) == 0 {
		plugins = DefaultPostCSSPlugins
	}
	args := make([]string, 0, 2*len(plugins)+2)
	for _, plugin := range plugins {
		args = append(args, "--use", plugin)
	}
	return append(args, "--replace", path)
}

func (p *PostCSS) Process(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: post-process target is required", ErrInvalidPlan)
	}

	binary := p.Binary
	if binary == "" {
		binary = DefaultPostCSSBinary
	}
	runner := p.Runner
	if runner == nil {
		runner = DefaultRunner()
	}

	if _, _, err := runner.Run(ctx, binary, p.Args(path)...); err != nil {
		return fmt.Errorf("post-processing %s: %w", path, err)
	}
	return nil
}

// EsbuildPrefixer adds vendor prefixes in-process with esbuild's CSS
// transform, lowering syntax for Targets. It needs no Node.js install.
type EsbuildPrefixer struct {
	Targets  []string // e.g. "chrome58", "safari11"; default DefaultEsbuildTargets
	Minified bool     // Keep output minified (matches a compressed compile)
}

var targetPattern = regexp.MustCompile(`^([a-z]+)([0-9][0-9.]*)$`)

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

// ParseTargets converts strings like "safari11" into esbuild engines.
func ParseTargets(targets []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(targets))
	for _, t := range targets {
		m := targetPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(t)))
		if m == nil {
			return nil, fmt.Errorf("%w: target %q (want name+version, e.g. safari11)", ErrInvalidPlan, t)
		}
		name, ok := engineNames[m[1]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown browser %q in target %q", ErrInvalidPlan, m[1], t)
		}
		engines = append(engines, api.Engine{Name: name, Version: m[2]})
	}
	return engines, nil
}

// Transform returns css with prefixes applied.
func (e *EsbuildPrefixer) Transform(css string) (string, error) {
	targets := e.Targets
	if len(targets) == 0 {
		targets = DefaultEsbuildTargets
	}
	engines, err := ParseTargets(targets)
	if err != nil {
		return "", err
	}

	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		Engines:          engines,
		MinifyWhitespace: e.Minified,
		MinifySyntax:     e.Minified,
		LogLevel:         api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, m := range result.Errors {
			if m.Location != nil {
				fmt.Fprintf(&msg, "\n%d:%d: %s", m.Location.Line, m.Location.Column, m.Text)
			} else {
				fmt.Fprintf(&msg, "\n%s", m.Text)
			}
		}
		return "", fmt.Errorf("%w: esbuild:%s", ErrPostProcess, msg.String())
	}
	return string(result.Code), nil
}

// Process rewrites path with Transform, keeping its permission bits.
func (e *EsbuildPrefixer) Process(_ context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: post-process target is required", ErrInvalidPlan)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the build plan
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	out, err := e.Transform(string(data))
	if err != nil {
		return fmt.Errorf("post-processing %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
