package main

import (
	"context"
	"fmt"
)

// runMain dispatches args[1] and returns the process exit code.
// With no command, or a flag in its place, it runs build.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	command := "build"
	if len(rest) > 0 && !isFlag(rest[0]) {
		command, rest = rest[0], rest[1:]
	}

	var err error
	switch command {
	case "build":
		err = runBuildCmd(ctx, rest, env)
	case "clean":
		err = runCleanCmd(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-assetbuild %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if isHelp(err) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}
