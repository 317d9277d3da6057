package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-assetbuild"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Runner assetbuild.CommandRunner // nil = platform default
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// runner returns the configured runner or the platform default.
func (e *Environment) runner() assetbuild.CommandRunner {
	if e.Runner != nil {
		return e.Runner
	}
	return assetbuild.DefaultRunner()
}
