package assetbuild

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// chromaRootClass is the wrapper class chroma's CSS is scoped under.
const chromaRootClass = "chroma"

// HighlightStyles lists the chroma style names GenerateHighlightCSS accepts.
func HighlightStyles() []string {
	return styles.Names()
}

// GenerateHighlightCSS renders the named chroma style as a stylesheet whose
// selectors are scoped under .class instead of .chroma, so it drops into
// markup produced by Pygments-compatible highlighters.
func GenerateHighlightCSS(style, class string) (string, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
	}
	if class == "" {
		class = chromaRootClass
	}

	var b strings.Builder
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&b, s); err != nil {
		return "", fmt.Errorf("rendering style %s: %w", style, err)
	}
	return RewriteTokens(b.String(), chromaRootClass, class), nil
}

// WriteHighlightCSS writes GenerateHighlightCSS output to dst.
func WriteHighlightCSS(dst, style, class string) error {
	if dst == "" {
		return fmt.Errorf("%w: highlight output is required", ErrInvalidPlan)
	}
	css, err := GenerateHighlightCSS(style, class)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, []byte(css), outputPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
