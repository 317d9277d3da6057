package assetbuild

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetbuild/internal/fileutil"
)

// Step names, in execution order.
const (
	StepCompile     = "compile"
	StepPostProcess = "postprocess"
	StepMinify      = "minify"
	StepHighlight   = "highlight"
	StepCopy        = "copy"
)

// Builder runs a Plan. Create with NewBuilder; safe to reuse across builds
// but not for concurrent builds writing the same outputs.
type Builder struct {
	runner   CommandRunner
	log      logrus.FieldLogger
	compiler StyleCompiler // nil = SassCompiler from the plan
	post     PostProcessor // nil = engine from the plan
	minifier *CSSMinifier
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRunner sets how external tools are invoked.
// Panics if r is nil (programmer error).
func WithRunner(r CommandRunner) Option {
	if r == nil {
		panic("assetbuild: WithRunner runner must not be nil")
	}
	return func(b *Builder) {
		b.runner = r
	}
}

// WithLogger sets the step logger. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithCompiler replaces the Sass compiler derived from the plan.
func WithCompiler(c StyleCompiler) Option {
	return func(b *Builder) {
		b.compiler = c
	}
}

// WithPostProcessor replaces the post-processor derived from the plan.
func WithPostProcessor(p PostProcessor) Option {
	return func(b *Builder) {
		b.post = p
	}
}

// WithMinifier sets the minifier used when Plan.Minify is true.
func WithMinifier(m *CSSMinifier) Option {
	return func(b *Builder) {
		if m != nil {
			b.minifier = m
		}
	}
}

// WithClock sets the time source used for step and build durations.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a Builder using the platform runner.
func NewBuilder(opts ...Option) *Builder {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	b := &Builder{
		runner:   DefaultRunner(),
		log:      silent,
		minifier: NewCSSMinifier(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// StepResult records one executed or skipped step.
type StepResult struct {
	Name     string
	Outputs  []string
	Duration time.Duration
	Skipped  bool
}

// Report summarizes a build.
type Report struct {
	Steps    []StepResult
	Duration time.Duration
}

// Step returns the result for name, or false if the step never ran.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

type step struct {
	name    string
	outputs []string
	skip    bool
	run     func(ctx context.Context) error
}

// Build runs every step of plan in order. The first failure aborts the
// build and is returned as a *StepError; the report then lists the steps
// that completed before it.
func (b *Builder) Build(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{}
	if err := plan.Validate(); err != nil {
		return report, err
	}

	start := b.now()
	defer func() { report.Duration = b.now().Sub(start) }()

	for _, s := range b.steps(plan) {
		log := b.log.WithField("step", s.name)
		if s.skip {
			log.Debug("skipped")
			report.Steps = append(report.Steps, StepResult{Name: s.name, Skipped: true})
			continue
		}

		if err := ctx.Err(); err != nil {
			return report, &StepError{Step: s.name, Err: err}
		}

		log.WithField("outputs", strings.Join(s.outputs, ",")).Debug("starting")
		stepStart := b.now()
		if err := s.run(ctx); err != nil {
			log.WithError(err).Error("failed")
			return report, &StepError{Step: s.name, Err: err}
		}
		elapsed := b.now().Sub(stepStart)

		log.WithField("duration", elapsed.Round(time.Millisecond)).Info("done")
		report.Steps = append(report.Steps, StepResult{
			Name:     s.name,
			Outputs:  s.outputs,
			Duration: elapsed,
		})
	}

	return report, nil
}

func (b *Builder) steps(plan *Plan) []step {
	css := plan.Stylesheet.Output
	compiler := b.compilerFor(plan)
	post := b.postProcessorFor(plan)

	copyOutputs := make([]string, len(plan.Copies))
	for i, c := range plan.Copies {
		copyOutputs[i] = c.Dst
	}

	return []step{
		{
			name:    StepCompile,
			outputs: []string{css},
			run: func(ctx context.Context) error {
				return compiler.Compile(ctx, plan.Stylesheet.Source, css)
			},
		},
		{
			name:    StepPostProcess,
			outputs: []string{css},
			skip:    !plan.PostProcess.Enabled,
			run: func(ctx context.Context) error {
				return post.Process(ctx, css)
			},
		},
		{
			name:    StepMinify,
			outputs: []string{css},
			skip:    !plan.Minify,
			run: func(context.Context) error {
				return b.minifier.MinifyFile(css)
			},
		},
		{
			name:    StepHighlight,
			outputs: []string{plan.Highlight.Output},
			skip:    !plan.Highlight.Enabled(),
			run: func(context.Context) error {
				h := plan.Highlight
				if h.Source != "" {
					return RewriteFile(h.Source, h.Output, h.From, h.To)
				}
				return WriteHighlightCSS(h.Output, h.Style, h.To)
			},
		},
		{
			name:    StepCopy,
			outputs: copyOutputs,
			skip:    len(plan.Copies) == 0,
			run: func(context.Context) error {
				return CopyFiles(plan.Copies)
			},
		},
	}
}

func (b *Builder) compilerFor(plan *Plan) StyleCompiler {
	if b.compiler != nil {
		return b.compiler
	}
	s := plan.Stylesheet
	return &SassCompiler{
		Runner:     b.runner,
		Binary:     s.Compiler,
		LoadPaths:  s.LoadPaths,
		Compressed: s.Compressed,
		SourceMap:  s.SourceMap,
	}
}

func (b *Builder) postProcessorFor(plan *Plan) PostProcessor {
	if b.post != nil {
		return b.post
	}
	pp := plan.PostProcess
	if strings.EqualFold(pp.Engine, EngineEsbuild) {
		return &EsbuildPrefixer{Targets: pp.Targets, Minified: plan.Stylesheet.Compressed}
	}
	return &PostCSS{Runner: b.runner, Binary: pp.Binary, Plugins: pp.Plugins}
}

// Clean removes every output the plan names. Missing files are ignored.
// Returns the paths actually removed.
func (b *Builder) Clean(plan *Plan) ([]string, error) {
	var removed []string
	for _, out := range plan.Outputs() {
		if out == "" {
			continue
		}
		ok, err := fileutil.RemoveIfExists(out)
		if err != nil {
			return removed, fmt.Errorf("removing %s: %w", out, err)
		}
		if ok {
			b.log.WithField("output", out).Debug("removed")
			removed = append(removed, out)
		}
	}
	return removed, nil
}
