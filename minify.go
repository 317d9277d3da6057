package assetbuild

import (
	"fmt"
	"os"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const mediaTypeCSS = "text/css"

// CSSMinifier shrinks stylesheets with tdewolff/minify.
type CSSMinifier struct {
	m *minify.M
}

// NewCSSMinifier returns a minifier for text/css.
func NewCSSMinifier() *CSSMinifier {
	m := minify.New()
	m.AddFunc(mediaTypeCSS, css.Minify)
	return &CSSMinifier{m: m}
}

// String minifies a stylesheet.
func (c *CSSMinifier) String(s string) (string, error) {
	out, err := c.m.String(mediaTypeCSS, s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMinify, err)
	}
	return out, nil
}

// MinifyFile rewrites path with its minified content.
func (c *CSSMinifier) MinifyFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the build plan
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	out, err := c.String(string(data))
	if err != nil {
		return fmt.Errorf("minifying %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
