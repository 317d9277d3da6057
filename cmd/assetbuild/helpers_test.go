package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake tool runner and site layout
// ---------------------------------------------------------------------------

// fakeRunner stands in for sass and postcss. A tool whose base name
// contains "sass" writes compiled CSS to its last argument.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	errs     map[string]error // keyed by tool base name
	css      string
	versions map[string]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	base := filepath.Base(name)
	if err := f.errs[base]; err != nil {
		return "", "", err
	}
	if len(args) == 1 && args[0] == "--version" {
		return f.versions[base] + "\n", "", nil
	}
	if strings.Contains(base, "sass") && len(args) > 0 {
		css := f.css
		if css == "" {
			css = "a{color:red}"
		}
		if err := os.WriteFile(args[len(args)-1], []byte(css), 0o644); err != nil {
			return "", "", err
		}
	}
	return "", "", nil
}

func (f *fakeRunner) called(base string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if filepath.Base(c[0]) == base {
			return true
		}
	}
	return false
}

// site is a temp project with every build input and an assets/ directory.
type site struct {
	dir    string
	assets string
	config string
}

// newSite creates the project and an assetbuild.yaml using absolute paths.
// extra is appended to the YAML document.
func newSite(t *testing.T, extra string) *site {
	t.Helper()

	dir := t.TempDir()
	s := &site{
		dir:    dir,
		assets: filepath.Join(dir, "assets"),
		config: filepath.Join(dir, "assetbuild.yaml"),
	}
	files := map[string]string{
		"scss/mph.scss":           "$c: red; a { color: $c; }",
		"vendor/default.css":      ".codehilite .k { color: #008000 }",
		"vendor/bootstrap.min.js": "/*! Bootstrap */",
		"vendor/jquery.min.js":    "/*! jQuery */",
		"assets/.keep":            "",
	}
	for rel, content := range files {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	p := func(rel string) string { return filepath.ToSlash(filepath.Join(dir, rel)) }
	yaml := fmt.Sprintf(`outputDir: '%s'
stylesheet:
  source: '%s'
  output: style.css
  loadPaths: []
  compressed: true
  compiler: sass
postprocess:
  enabled: true
  engine: postcss
  binary: postcss
  plugins: [autoprefixer]
highlight:
  source: '%s'
  output: pygments.css
  from: codehilite
  to: highlight
copy:
  - src: '%s'
  - src: '%s'
    dst: jquery.js
%s`, p("assets"), p("scss/mph.scss"), p("vendor/default.css"),
		p("vendor/bootstrap.min.js"), p("vendor/jquery.min.js"), extra)

	if err := os.WriteFile(s.config, []byte(yaml), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return s
}

func (s *site) out(name string) string {
	return filepath.Join(s.assets, name)
}

// testEnv returns an Environment capturing output and using runner.
func testEnv(runner *fakeRunner) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := DefaultEnv()
	env.Stdout = stdout
	env.Stderr = stderr
	env.Runner = runner
	return env, stdout, stderr
}
