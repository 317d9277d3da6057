package main

// Notes:
// - exitCodeFor: we test every sentinel from the assetbuild and config
//   packages, plus wrapped errors to verify the errors.Is() chain.
// - Tool errors win over I/O errors when both are wrapped in one chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-assetbuild"
	"github.com/alnah/go-assetbuild/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Tool errors (exit 4)
		{"tool not found", assetbuild.ErrToolNotFound, ExitTool},
		{"tool failed", assetbuild.ErrToolFailed, ExitTool},
		{"post-process", assetbuild.ErrPostProcess, ExitTool},
		{"wrapped tool failed", fmt.Errorf("step compile: %w", assetbuild.ErrToolFailed), ExitTool},
		{"step error", &assetbuild.StepError{Step: "compile", Err: assetbuild.ErrToolNotFound}, ExitTool},
		{"tool beats io", fmt.Errorf("%w: %w", assetbuild.ErrToolFailed, os.ErrNotExist), ExitTool},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read source", assetbuild.ErrReadSource, ExitIO},
		{"write output", assetbuild.ErrWriteOutput, ExitIO},
		{"copy asset", assetbuild.ErrCopyAsset, ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config not found type", &config.NotFoundError{Tried: []string{"a.yaml"}}, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid plan", assetbuild.ErrInvalidPlan, ExitUsage},
		{"unsafe argument", &assetbuild.StepError{Step: "compile", Err: assetbuild.ErrUnsafeArgument}, ExitUsage},
		{"unknown highlight style", assetbuild.ErrUnknownHighlightStyle, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"minify", assetbuild.ErrMinify, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitTool}
	seen := map[int]bool{}
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d defined twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must keep their Unix meaning")
	}
}
