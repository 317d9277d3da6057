package main

import (
	"fmt"

	"github.com/alnah/go-assetbuild"
)

// runCleanCmd removes every output of the configured build.
func runCleanCmd(args []string, env *Environment) error {
	flags, positional, err := parseCleanFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	log := newLogger(env.Stderr, flags.quiet, flags.verbose)
	warnUnknownEnvVars(log)

	cfg, _, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}

	b := assetbuild.NewBuilder(assetbuild.WithLogger(log))
	removed, err := b.Clean(planFromConfig(cfg))
	if err != nil {
		return err
	}

	if !flags.quiet {
		for _, p := range removed {
			fmt.Fprintf(env.Stdout, "removed %s\n", p)
		}
		fmt.Fprintf(env.Stdout, "Removed %d files\n", len(removed))
	}
	return nil
}
