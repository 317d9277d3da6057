package assetbuild

import (
	"context"
	"fmt"
)

// DefaultSassBinary is the compiler invoked when none is configured.
const DefaultSassBinary = "sass"

// StyleCompiler turns a source stylesheet into plain CSS at dst,
// replacing any existing file.
type StyleCompiler interface {
	Compile(ctx context.Context, src, dst string) error
}

// SassCompiler compiles SCSS by invoking the sass command-line tool.
type SassCompiler struct {
	Runner     CommandRunner
	Binary     string   // Default: DefaultSassBinary
	LoadPaths  []string // Passed as --load-path, in order
	Compressed bool     // --style compressed
	SourceMap  bool     // false adds --no-source-map
}

// Args returns the command-line arguments for compiling src into dst.
func (c *SassCompiler) Args(src, dst string) []string {
	args := make([]string, 0, 2*len(c.LoadPaths)+5)
	for _, p := range c.LoadPaths {
		args = append(args, "--load-path", p)
	}
	if !c.SourceMap {
		args = append(args, "--no-source-map")
	}
	if c.Compressed {
		args = append(args, "--style", "compressed")
	}
	return append(args, src, dst)
}

// Compile runs the compiler. Output the tool prints on success is discarded.
func (c *SassCompiler) Compile(ctx context.Context, src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("%w: compile source and output are required", ErrInvalidPlan)
	}

	binary := c.Binary
	if binary == "" {
		binary = DefaultSassBinary
	}

	runner := c.Runner
	if runner == nil {
		runner = DefaultRunner()
	}

	if _, _, err := runner.Run(ctx, binary, c.Args(src, dst)...); err != nil {
		return fmt.Errorf("compiling %s: %w", src, err)
	}
	return nil
}
