package assetbuild

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Post-processing engines.
const (
	EnginePostCSS = "postcss"
	EngineEsbuild = "esbuild"
)

// Plan names every file a build reads and writes.
// All paths are used as given, relative to the working directory.
type Plan struct {
	Stylesheet  StylesheetStep
	PostProcess PostProcessStep
	Minify      bool // Minify the stylesheet after post-processing
	Highlight   HighlightStep
	Copies      []CopyPair
}

// StylesheetStep configures Sass compilation.
type StylesheetStep struct {
	Source     string
	Output     string
	LoadPaths  []string
	Compressed bool
	SourceMap  bool
	Compiler   string // Binary (empty = DefaultSassBinary)
}

// PostProcessStep configures vendor prefixing of the compiled stylesheet.
type PostProcessStep struct {
	Enabled bool
	Engine  string   // EnginePostCSS (default) or EngineEsbuild
	Binary  string   // postcss binary (empty = DefaultPostCSSBinary)
	Plugins []string // postcss plugins (empty = DefaultPostCSSPlugins)
	Targets []string // esbuild targets (empty = DefaultEsbuildTargets)
}

// HighlightStep configures the syntax-highlighting stylesheet.
// A vendored Source is rewritten From -> To; otherwise a chroma Style is
// rendered with To as its root class.
type HighlightStep struct {
	Source string
	Output string
	From   string
	To     string
	Style  string
}

// Enabled reports whether the plan produces a highlight stylesheet.
func (h HighlightStep) Enabled() bool {
	return h.Source != "" || h.Style != ""
}

// DefaultPlan returns the build of a Bootstrap + jQuery site with all
// outputs under assets/.
func DefaultPlan() *Plan {
	return &Plan{
		Stylesheet: StylesheetStep{
			Source:     "scss/mph.scss",
			Output:     filepath.Join("assets", "style.css"),
			LoadPaths:  []string{"node_modules/bootstrap/scss", "scss"},
			Compressed: true,
			Compiler:   DefaultSassBinary,
		},
		PostProcess: PostProcessStep{
			Enabled: true,
			Engine:  EnginePostCSS,
			Binary:  DefaultPostCSSBinary,
			Plugins: DefaultPostCSSPlugins,
		},
		Highlight: HighlightStep{
			Source: "node_modules/pygments-css/default.css",
			Output: filepath.Join("assets", "pygments.css"),
			From:   "codehilite",
			To:     "highlight",
		},
		Copies: []CopyPair{
			{Src: "node_modules/bootstrap/dist/js/bootstrap.min.js", Dst: filepath.Join("assets", "bootstrap.min.js")},
			{Src: "node_modules/jquery/dist/jquery.min.js", Dst: filepath.Join("assets", "jquery.min.js")},
		},
	}
}

// Validate checks that every step names the paths it needs.
func (p *Plan) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil plan", ErrInvalidPlan)
	}

	if p.Stylesheet.Source == "" {
		return fmt.Errorf("%w: stylesheet source is required", ErrInvalidPlan)
	}
	if p.Stylesheet.Output == "" {
		return fmt.Errorf("%w: stylesheet output is required", ErrInvalidPlan)
	}

	if p.PostProcess.Enabled {
		switch strings.ToLower(p.PostProcess.Engine) {
		case "", EnginePostCSS:
		case EngineEsbuild:
			if _, err := ParseTargets(p.PostProcess.Targets); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown post-process engine %q", ErrInvalidPlan, p.PostProcess.Engine)
		}
	}

	h := p.Highlight
	if h.Enabled() {
		if h.Output == "" {
			return fmt.Errorf("%w: highlight output is required", ErrInvalidPlan)
		}
		if h.Source != "" && h.From == "" {
			return fmt.Errorf("%w: highlight token to replace is required", ErrInvalidPlan)
		}
	}

	for i, c := range p.Copies {
		if c.Src == "" || c.Dst == "" {
			return fmt.Errorf("%w: copy entry %d needs src and dst", ErrInvalidPlan, i)
		}
	}

	return nil
}

// Outputs lists every file the plan writes, in step order.
func (p *Plan) Outputs() []string {
	outputs := []string{p.Stylesheet.Output}
	if p.Stylesheet.SourceMap {
		outputs = append(outputs, p.Stylesheet.Output+".map")
	}
	if p.Highlight.Enabled() {
		outputs = append(outputs, p.Highlight.Output)
	}
	for _, c := range p.Copies {
		outputs = append(outputs, c.Dst)
	}
	return outputs
}

// Inputs lists every file the plan reads, in step order.
func (p *Plan) Inputs() []string {
	inputs := []string{p.Stylesheet.Source}
	if p.Highlight.Source != "" {
		inputs = append(inputs, p.Highlight.Source)
	}
	for _, c := range p.Copies {
		inputs = append(inputs, c.Src)
	}
	return inputs
}
