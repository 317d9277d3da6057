package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common        commonFlags
	output        string
	compressed    bool
	noPostProcess bool
	minify        bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config     string
	json       bool
	showConfig bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every step")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "asset output directory")
	fs.BoolVar(&f.compressed, "compressed", false, "compile with --style compressed")
	fs.BoolVar(&f.noPostProcess, "no-postprocess", false, "skip vendor prefixing")
	fs.BoolVar(&f.minify, "minify", false, "minify the stylesheet after post-processing")
	addCommonFlags(fs, &f.common)

	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseCleanFlags parses clean command flags.
func parseCleanFlags(args []string, stderr io.Writer) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	fs.SetOutput(stderr)
	fs.Usage = func() { printCleanUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.BoolVar(&f.showConfig, "show-config", false, "print the effective configuration")

	fs.SetOutput(stderr)
	fs.Usage = func() { printDoctorUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

// isHelp reports whether err is the -h/--help request.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// usageError keeps flag.ErrHelp recognizable and marks every other parse
// failure as a usage error.
func usageError(err error) error {
	if isHelp(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
