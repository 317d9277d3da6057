//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

// SetCommandLine makes cmd start with line verbatim instead of the
// argv-escaped form of cmd.Args.
func SetCommandLine(cmd *exec.Cmd, line string) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CmdLine = line
}
