package process

// Notes:
// - KillProcessGroup: only an invalid PID is exercised. PID 0 would target
//   the test's own process group.
// - Isolate: cancellation is exercised end to end by the runner tests in the
//   root package.

import (
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestIsolate - Command configuration
// ---------------------------------------------------------------------------

func TestIsolate_SetsCancel(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("sass", "--version")
	Isolate(cmd)

	if cmd.SysProcAttr == nil {
		t.Fatal("SysProcAttr = nil, want process group attributes")
	}
	if cmd.Cancel == nil {
		t.Fatal("Cancel = nil, want group kill function")
	}
	// Not started: cancel must be a no-op.
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() on unstarted command = %v, want nil", err)
	}
}
