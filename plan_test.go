package assetbuild

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultPlan(t *testing.T) {
	t.Parallel()

	p := DefaultPlan()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultPlan().Validate() error = %v", err)
	}

	want := []string{
		filepath.Join("assets", "style.css"),
		filepath.Join("assets", "pygments.css"),
		filepath.Join("assets", "bootstrap.min.js"),
		filepath.Join("assets", "jquery.min.js"),
	}
	if got := p.Outputs(); !slices.Equal(got, want) {
		t.Errorf("Outputs() = %q, want %q", got, want)
	}

	inputs := p.Inputs()
	if len(inputs) != 4 || inputs[0] != "scss/mph.scss" {
		t.Errorf("Inputs() = %q", inputs)
	}
	if !p.Stylesheet.Compressed {
		t.Error("default stylesheet is not compressed")
	}
	if want := []string{"node_modules/bootstrap/scss", "scss"}; !slices.Equal(p.Stylesheet.LoadPaths, want) {
		t.Errorf("LoadPaths = %q, want %q", p.Stylesheet.LoadPaths, want)
	}
	if p.Highlight.From != "codehilite" || p.Highlight.To != "highlight" {
		t.Errorf("highlight rewrite = %q -> %q", p.Highlight.From, p.Highlight.To)
	}
}

func TestPlan_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Plan)
		ok     bool
	}{
		{name: "default", mutate: func(*Plan) {}, ok: true},
		{name: "no source", mutate: func(p *Plan) { p.Stylesheet.Source = "" }},
		{name: "no output", mutate: func(p *Plan) { p.Stylesheet.Output = "" }},
		{name: "unknown engine", mutate: func(p *Plan) { p.PostProcess.Engine = "lightningcss" }},
		{
			name:   "unknown engine ignored when disabled",
			mutate: func(p *Plan) { p.PostProcess = PostProcessStep{Engine: "lightningcss"} },
			ok:     true,
		},
		{
			name: "esbuild with targets",
			mutate: func(p *Plan) {
				p.PostProcess.Engine = EngineEsbuild
				p.PostProcess.Targets = []string{"safari11"}
			},
			ok: true,
		},
		{
			name: "esbuild with bad target",
			mutate: func(p *Plan) {
				p.PostProcess.Engine = EngineEsbuild
				p.PostProcess.Targets = []string{"> 1%"}
			},
		},
		{name: "highlight without output", mutate: func(p *Plan) { p.Highlight.Output = "" }},
		{name: "highlight without token", mutate: func(p *Plan) { p.Highlight.From = "" }},
		{
			name:   "chroma highlight needs no token",
			mutate: func(p *Plan) { p.Highlight = HighlightStep{Style: "monokai", Output: "h.css", To: "highlight"} },
			ok:     true,
		},
		{name: "highlight disabled", mutate: func(p *Plan) { p.Highlight = HighlightStep{} }, ok: true},
		{name: "copy without dst", mutate: func(p *Plan) { p.Copies[1].Dst = "" }},
		{name: "no copies", mutate: func(p *Plan) { p.Copies = nil }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := DefaultPlan()
			tt.mutate(p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("Validate() error = %v, want ErrInvalidPlan", err)
			}
		})
	}

	var nilPlan *Plan
	if err := nilPlan.Validate(); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("nil plan error = %v, want ErrInvalidPlan", err)
	}
}

func TestPlan_Outputs_SourceMap(t *testing.T) {
	t.Parallel()

	p := &Plan{Stylesheet: StylesheetStep{Source: "a.scss", Output: "a.css", SourceMap: true}}
	if got := p.Outputs(); !slices.Equal(got, []string{"a.css", "a.css.map"}) {
		t.Errorf("Outputs() = %q", got)
	}
}
