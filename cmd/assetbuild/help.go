package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbuild [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Rebuild every asset (default)")
	fmt.Fprintln(w, "  clean      Remove generated assets")
	fmt.Fprintln(w, "  doctor     Check tools, inputs, and output directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'assetbuild help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbuild build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile the stylesheet, add vendor prefixes, write the syntax-highlighting")
	fmt.Fprintln(w, "stylesheet, and copy JavaScript bundles into the output directory.")
	fmt.Fprintln(w, "Every run rebuilds everything.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: assetbuild.yaml,")
	fmt.Fprintln(w, "                            searched in . then ~/.config/go-assetbuild/)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (must exist)")
	fmt.Fprintln(w, "      --compressed          Compile with --style compressed")
	fmt.Fprintln(w, "      --no-postprocess      Skip vendor prefixing")
	fmt.Fprintln(w, "      --minify              Minify the stylesheet after prefixing")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every step")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config notes:")
	fmt.Fprintln(w, "  highlight.style without highlight.source generates the stylesheet from")
	fmt.Fprintln(w, "  a chroma style instead of the vendored pygments file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ASSETBUILD_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  ASSETBUILD_OUTPUT_DIR     Output directory")
	fmt.Fprintln(w, "  ASSETBUILD_SASS           Sass compiler binary")
	fmt.Fprintln(w, "  ASSETBUILD_POSTCSS        postcss binary")
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbuild clean [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove every file a build writes. Inputs are never touched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Print nothing on success")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbuild doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the tools, inputs, and output directory a build needs exist.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w, "      --show-config         Print the effective configuration as YAML")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "clean":
		printCleanUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: assetbuild version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: assetbuild help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
