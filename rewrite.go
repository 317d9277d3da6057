package assetbuild

import (
	"fmt"
	"os"
	"strings"
)

const outputPermissions = 0o644 // rw-r--r--

// RewriteTokens replaces every occurrence of from with to.
// The substitution is literal; from is not a pattern.
func RewriteTokens(content, from, to string) string {
	if from == "" {
		return content
	}
	return strings.ReplaceAll(content, from, to)
}

// RewriteFile writes src to dst with every from replaced by to.
// src is never modified. dst is replaced if it exists.
func RewriteFile(src, dst, from, to string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("%w: rewrite source and output are required", ErrInvalidPlan)
	}
	if from == "" {
		return fmt.Errorf("%w: rewrite token cannot be empty", ErrInvalidPlan)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- path comes from the build plan
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	out := RewriteTokens(string(data), from, to)
	if err := os.WriteFile(dst, []byte(out), outputPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
