package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     int
		contains string
	}{
		{name: "no topic", args: nil, want: ExitSuccess, contains: "Usage: assetbuild [command] [flags]"},
		{name: "build", args: []string{"build"}, want: ExitSuccess, contains: "--no-postprocess"},
		{name: "clean", args: []string{"clean"}, want: ExitSuccess, contains: "Usage: assetbuild clean"},
		{name: "doctor", args: []string{"doctor"}, want: ExitSuccess, contains: "--show-config"},
		{name: "version", args: []string{"version"}, want: ExitSuccess, contains: "Usage: assetbuild version"},
		{name: "help", args: []string{"help"}, want: ExitSuccess, contains: "Usage: assetbuild help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(&fakeRunner{})
			if got := runHelp(tt.args, env); got != tt.want {
				t.Errorf("runHelp(%v) = %d, want %d", tt.args, got, tt.want)
			}
			if !strings.Contains(stdout.String(), tt.contains) {
				t.Errorf("output missing %q:\n%s", tt.contains, stdout)
			}
		})
	}
}

func TestRunHelp_UnknownTopic(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(&fakeRunner{})
	if got := runHelp([]string{"deploy"}, env); got != ExitUsage {
		t.Errorf("runHelp = %d, want %d", got, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: deploy") {
		t.Errorf("stderr = %q", stderr)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}
