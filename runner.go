package assetbuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-assetbuild/internal/process"
)

// waitDelay bounds how long Wait blocks on output pipes after the child
// exits or is killed. Grandchildren that inherited the pipes would otherwise
// hold the build open.
const waitDelay = 5 * time.Second

// Exit statuses shells use for "command not found".
const (
	exitShellNotFound = 127  // POSIX sh
	exitCmdNotFound   = 9009 // cmd.exe
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Run blocks until the command exits. A non-zero exit is reported as
// *ToolExecutionError on every implementation.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// Compile-time interface implementation checks.
var (
	_ CommandRunner = (*ExecRunner)(nil)
	_ CommandRunner = (*ShellRunner)(nil)
)

// ExecRunner executes the tool directly, without a shell.
type ExecRunner struct {
	Dir string   // Working directory (empty = current)
	Env []string // Extra KEY=VALUE entries appended to the environment
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return execute(ctx, cmd, r.Dir, r.Env, name, args, false)
}

// ShellRunner executes the tool through a command interpreter, e.g.
// `cmd /C` on Windows where node_modules/.bin only contains .cmd shims
// that CreateProcess cannot launch directly.
//
// A cmd.exe interpreter gets a CmdJoin line run as `cmd /S /C "<line>"`;
// any other interpreter is treated as a POSIX shell and gets ShellJoin.
type ShellRunner struct {
	Shell string // Interpreter, e.g. "cmd" or "sh"
	Flag  string // Flag that introduces the command line, e.g. "/C" or "-c"
	Dir   string
	Env   []string
}

func (r *ShellRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if !r.isCmd() {
		cmd := exec.CommandContext(ctx, r.Shell, r.Flag, ShellJoin(name, args...))
		return execute(ctx, cmd, r.Dir, r.Env, name, args, true)
	}

	line, err := CmdJoin(name, args...)
	if err != nil {
		return "", "", err
	}
	quoted := `"` + line + `"`
	cmd := exec.CommandContext(ctx, r.Shell, "/S", r.Flag, quoted)
	process.SetCommandLine(cmd, strings.Join([]string{r.Shell, "/S", r.Flag, quoted}, " "))
	return execute(ctx, cmd, r.Dir, r.Env, name, args, true)
}

func (r *ShellRunner) isCmd() bool {
	base := r.Shell
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.ToLower(base)
	return base == "cmd" || base == "cmd.exe"
}

// NewPlatformRunner selects the invocation strategy for goos: shell
// dispatch through cmd.exe on Windows, direct execution elsewhere.
func NewPlatformRunner(goos string) CommandRunner {
	if goos == "windows" {
		return &ShellRunner{Shell: "cmd", Flag: "/C"}
	}
	return &ExecRunner{}
}

// DefaultRunner returns the runner for the current platform.
func DefaultRunner() CommandRunner {
	return NewPlatformRunner(runtime.GOOS)
}

// ShellJoin renders name and args as a POSIX sh command line. Arguments
// with anything beyond a conservative safe set are single-quoted, so
// $, backquotes, ; and globs reach the tool literally.
func ShellJoin(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(name))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool { return !isShellSafe(r) }) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_@%+=:,./-", r)
}

// cmdSpecial lists characters cmd.exe treats as syntax outside quotes.
const cmdSpecial = " \t&|<>^(),;="

// CmdJoin renders name and args as a cmd.exe command line, double-quoting
// arguments that contain whitespace or cmd syntax. cmd.exe has no escape for
// a double quote inside quotes and expands %VAR% everywhere, so arguments
// containing ", % or a line break are rejected with ErrUnsafeArgument.
func CmdJoin(name string, args ...string) (string, error) {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		q, err := cmdQuote(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " "), nil
}

func cmdQuote(s string) (string, error) {
	if strings.ContainsAny(s, "\"%\r\n") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeArgument, s)
	}
	if s == "" || strings.ContainsAny(s, cmdSpecial) {
		return `"` + s + `"`, nil
	}
	return s, nil
}

// shellNotFound reports whether a shell exit means the command itself was
// never found: the shell's not-found status plus its message naming tool.
// A tool that exits 127 on its own is reported as a tool failure.
func shellNotFound(code int, stderr, tool string) bool {
	if code != exitShellNotFound && code != exitCmdNotFound {
		return false
	}
	if !strings.Contains(stderr, tool) {
		return false
	}
	msg := strings.ToLower(stderr)
	for _, phrase := range []string{"not found", "no such file or directory", "is not recognized"} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

func execute(ctx context.Context, cmd *exec.Cmd, dir string, env []string, tool string, args []string, viaShell bool) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), env...)
	}
	cmd.WaitDelay = waitDelay
	process.Isolate(cmd)

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("%s: %w", tool, ctxErr)
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "", "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, tool, err)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", tool, err)
	}

	toolErr := &ToolExecutionError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitErr.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
	if viaShell && shellNotFound(toolErr.ExitCode, toolErr.Stderr, tool) {
		return toolErr.Stdout, toolErr.Stderr, fmt.Errorf("%w: %w", ErrToolNotFound, toolErr)
	}
	return toolErr.Stdout, toolErr.Stderr, toolErr
}
