package main

import (
	"errors"
	"os"

	"github.com/alnah/go-assetbuild"
	"github.com/alnah/go-assetbuild/internal/config"
)

// Exit codes for the assetbuild CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or plan
	ExitIO      = 3 // Missing input, unwritable output
	ExitTool    = 4 // External tool missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, assetbuild.ErrToolNotFound) ||
		errors.Is(err, assetbuild.ErrToolFailed) ||
		errors.Is(err, assetbuild.ErrPostProcess) {
		return ExitTool
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assetbuild.ErrInvalidPlan) ||
		errors.Is(err, assetbuild.ErrUnsafeArgument) ||
		errors.Is(err, assetbuild.ErrUnknownHighlightStyle) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assetbuild.ErrReadSource) ||
		errors.Is(err, assetbuild.ErrWriteOutput) ||
		errors.Is(err, assetbuild.ErrCopyAsset) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}
