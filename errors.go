package assetbuild

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for library operations.
var (
	ErrInvalidPlan    = errors.New("invalid build plan")
	ErrUnsafeArgument = errors.New("argument cannot be quoted for cmd.exe")

	// External tool errors.
	ErrToolNotFound = errors.New("external tool not found")
	ErrToolFailed   = errors.New("external tool failed")

	// Filesystem errors.
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrCopyAsset   = errors.New("failed to copy asset")

	// In-process transform errors.
	ErrPostProcess           = errors.New("post-processing failed")
	ErrMinify                = errors.New("minification failed")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
)

// ToolExecutionError reports an external tool that exited with a non-zero
// status. Stdout and Stderr hold everything the tool printed.
type ToolExecutionError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ToolExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s exited with status %d", e.Tool, e.ExitCode)
	if out := strings.TrimSpace(e.Stderr); out != "" {
		b.WriteString(": ")
		b.WriteString(out)
	} else if out := strings.TrimSpace(e.Stdout); out != "" {
		// Some compilers print diagnostics on stdout.
		b.WriteString(": ")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap returns the underlying process error.
func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrToolFailed) match.
func (e *ToolExecutionError) Is(target error) bool {
	return target == ErrToolFailed
}

// StepError wraps the failure of one pipeline step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
