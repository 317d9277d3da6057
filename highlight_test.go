package assetbuild

// Notes:
// - Assertions target selector shape, not exact colors.
// - Unknown style names are covered at the CLI level too, where the hint
//   lists the available styles.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateHighlightCSS - Chroma style rendering
// ---------------------------------------------------------------------------

func TestGenerateHighlightCSS(t *testing.T) {
	t.Parallel()

	t.Run("scoped under class", func(t *testing.T) {
		t.Parallel()

		css, err := GenerateHighlightCSS("monokai", "highlight")
		if err != nil {
			t.Fatalf("GenerateHighlightCSS() error = %v", err)
		}
		if !strings.Contains(css, ".highlight .k") {
			t.Errorf("missing keyword rule:\n%s", css)
		}
		if strings.Contains(css, chromaRootClass) {
			t.Errorf("output still references %q", chromaRootClass)
		}
	})

	t.Run("style name is case insensitive", func(t *testing.T) {
		t.Parallel()

		if _, err := GenerateHighlightCSS("Monokai", "highlight"); err != nil {
			t.Errorf("GenerateHighlightCSS(Monokai) error = %v", err)
		}
	})

	t.Run("empty class keeps chroma", func(t *testing.T) {
		t.Parallel()

		css, err := GenerateHighlightCSS("monokai", "")
		if err != nil {
			t.Fatalf("GenerateHighlightCSS() error = %v", err)
		}
		if !strings.Contains(css, ".chroma .k") {
			t.Errorf("missing .chroma rules:\n%s", css)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := GenerateHighlightCSS("no-such-style", "highlight")
		if !errors.Is(err, ErrUnknownHighlightStyle) {
			t.Errorf("error = %v, want ErrUnknownHighlightStyle", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestHighlightStyles - Style registry
// ---------------------------------------------------------------------------

func TestHighlightStyles(t *testing.T) {
	t.Parallel()

	names := HighlightStyles()
	for _, want := range []string{"monokai", "github"} {
		if !slices.Contains(names, want) {
			t.Errorf("HighlightStyles() missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteHighlightCSS - File output
// ---------------------------------------------------------------------------

func TestWriteHighlightCSS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "pygments.css")

	if err := WriteHighlightCSS(dst, "github", "highlight"); err != nil {
		t.Fatalf("WriteHighlightCSS() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), ".highlight") {
		t.Errorf("output not scoped under .highlight")
	}

	err = WriteHighlightCSS(filepath.Join(dir, "nodir", "x.css"), "github", "highlight")
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("error = %v, want ErrWriteOutput", err)
	}
}
