package assetbuild

// Notes:
// - String expectations are exact minifier output for small inputs; the file
//   case only checks that output shrinks and loses its line breaks.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCSSMinifier_String - In-memory minification
// ---------------------------------------------------------------------------

func TestCSSMinifier_String(t *testing.T) {
	t.Parallel()

	m := NewCSSMinifier()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "whitespace and comments",
			input: "/* header */\n.highlight  .k {\n  color : #000000 ;\n}\n",
			want:  ".highlight .k{color:#000}",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.String(tt.input)
			if err != nil {
				t.Fatalf("String() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCSSMinifier_MinifyFile - In-place rewrite
// ---------------------------------------------------------------------------

func TestCSSMinifier_MinifyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "style.css")
	input := "body {\n  margin : 0 ;\n}\n\n\n.a {\n  color: red;\n}\n"
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	m := NewCSSMinifier()
	if err := m.MinifyFile(path); err != nil {
		t.Fatalf("MinifyFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) >= len(input) {
		t.Errorf("output not smaller: %d >= %d", len(got), len(input))
	}
	if strings.Contains(string(got), "\n") {
		t.Errorf("output still has newlines: %q", got)
	}

	err = m.MinifyFile(filepath.Join(dir, "missing.css"))
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("missing file error = %v, want ErrReadSource", err)
	}
}
