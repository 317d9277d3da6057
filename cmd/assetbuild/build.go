package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetbuild"
	"github.com/alnah/go-assetbuild/internal/config"
	"github.com/alnah/go-assetbuild/internal/fileutil"
	"github.com/alnah/go-assetbuild/internal/hints"
)

// ErrOutputDir reports a missing asset output directory.
var ErrOutputDir = errors.New("output directory does not exist")

// runBuildCmd parses build flags and runs a full rebuild.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(log)

	cfg, source, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	applyBuildFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if source != "" {
		log.WithField("config", source).Debug("loaded configuration")
	}

	plan := planFromConfig(cfg)
	if cfg.OutputDir != "" && !fileutil.DirExists(cfg.OutputDir) {
		return fmt.Errorf("%w: %s%s", ErrOutputDir, cfg.OutputDir, hints.ForOutputDirectory())
	}

	b := assetbuild.NewBuilder(
		assetbuild.WithRunner(env.runner()),
		assetbuild.WithLogger(log),
		assetbuild.WithClock(env.Now),
	)
	report, err := b.Build(ctx, plan)
	if err != nil {
		return withHint(err, plan)
	}

	if !flags.common.quiet {
		printReport(env.Stdout, report)
	}
	return nil
}

// newLogger returns a logrus logger writing to w.
// Default level is info; quiet keeps warnings and errors, verbose adds debug.
func newLogger(w io.Writer, quiet, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	switch {
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// loadConfig resolves the configuration: the --config flag, then
// ASSETBUILD_CONFIG, then assetbuild.yaml in the working directory or
// ~/.config/go-assetbuild/, then built-in defaults.
// Environment overrides are applied to the result.
// Returns the file the config came from, empty for defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, string, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	var (
		cfg    *config.Config
		source string
		err    error
	)
	if name != "" {
		cfg, err = config.LoadConfig(name)
		source = name
	} else {
		cfg, source, err = config.Discover()
	}
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, "", fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nf.Tried))
		}
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	return cfg, source, nil
}

// applyBuildFlags merges CLI flags into cfg. Flags win over everything.
func applyBuildFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.OutputDir = flags.output
	}
	if flags.compressed {
		cfg.Stylesheet.Compressed = true
	}
	if flags.noPostProcess {
		cfg.PostProcess.Enabled = false
	}
	if flags.minify {
		cfg.Minify = true
	}
}

// planFromConfig converts a configuration into a build plan.
// Output paths are resolved against OutputDir; a copy entry without dst
// keeps the base name of its source.
func planFromConfig(cfg *config.Config) *assetbuild.Plan {
	copies := make([]assetbuild.CopyPair, 0, len(cfg.Copy))
	for _, e := range cfg.Copy {
		dst := e.Dst
		if dst == "" && e.Src != "" {
			dst = filepath.Base(e.Src)
		}
		copies = append(copies, assetbuild.CopyPair{Src: e.Src, Dst: cfg.OutputPath(dst)})
	}

	s, pp, h := cfg.Stylesheet, cfg.PostProcess, cfg.Highlight
	return &assetbuild.Plan{
		Stylesheet: assetbuild.StylesheetStep{
			Source:     s.Source,
			Output:     cfg.OutputPath(s.Output),
			LoadPaths:  s.LoadPaths,
			Compressed: s.Compressed,
			SourceMap:  s.SourceMap,
			Compiler:   s.Compiler,
		},
		PostProcess: assetbuild.PostProcessStep{
			Enabled: pp.Enabled,
			Engine:  strings.ToLower(pp.Engine),
			Binary:  pp.Binary,
			Plugins: pp.Plugins,
			Targets: pp.Targets,
		},
		Minify: cfg.Minify,
		Highlight: assetbuild.HighlightStep{
			Source: h.Source,
			Output: cfg.OutputPath(h.Output),
			From:   h.From,
			To:     h.To,
			Style:  h.Style,
		},
		Copies: copies,
	}
}

// withHint appends an actionable hint to a build error when one applies.
func withHint(err error, plan *assetbuild.Plan) error {
	if hint := hintFor(err, plan); hint != "" {
		return fmt.Errorf("%w%s", err, hint)
	}
	return err
}

func hintFor(err error, plan *assetbuild.Plan) string {
	switch {
	case errors.Is(err, assetbuild.ErrToolNotFound):
		var stepErr *assetbuild.StepError
		if !errors.As(err, &stepErr) {
			return ""
		}
		switch stepErr.Step {
		case assetbuild.StepCompile:
			return hints.ForToolNotFound(orDefault(plan.Stylesheet.Compiler, assetbuild.DefaultSassBinary))
		case assetbuild.StepPostProcess:
			return hints.ForToolNotFound(orDefault(plan.PostProcess.Binary, assetbuild.DefaultPostCSSBinary))
		}
	case errors.Is(err, assetbuild.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(assetbuild.HighlightStyles())
	case errors.Is(err, assetbuild.ErrReadSource), errors.Is(err, assetbuild.ErrCopyAsset):
		for _, in := range plan.Inputs() {
			if !fileutil.FileExists(in) {
				return hints.ForMissingSource(in)
			}
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// printReport writes one line per step and a summary.
func printReport(w io.Writer, r *assetbuild.Report) {
	ran := 0
	for _, s := range r.Steps {
		if s.Skipped {
			fmt.Fprintf(w, "  %-12s skipped\n", s.Name)
			continue
		}
		ran++
		fmt.Fprintf(w, "  %-12s %s (%s)\n", s.Name, strings.Join(s.Outputs, ", "), s.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Done: %d of %d steps in %s\n", ran, len(r.Steps), r.Duration.Round(time.Millisecond))
}
