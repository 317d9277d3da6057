//go:build !windows

package process

import "os/exec"

// SetCommandLine is a no-op: Unix passes cmd.Args to the child unchanged.
func SetCommandLine(_ *exec.Cmd, _ string) {}
