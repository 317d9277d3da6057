package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-assetbuild"
	"github.com/alnah/go-assetbuild/internal/config"
	"github.com/alnah/go-assetbuild/internal/fileutil"
	"github.com/alnah/go-assetbuild/internal/hints"
	"github.com/alnah/go-assetbuild/internal/yamlutil"
)

// versionTimeout bounds each `<tool> --version` call.
const versionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   string     `json:"config"` // File path or "defaults"
	Tools    []toolInfo `json:"tools"`
	Inputs   []fileInfo `json:"inputs"`
	Output   fileInfo   `json:"output_dir"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external tool.
type toolInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Builtin bool   `json:"builtin,omitempty"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// fileInfo holds an existence check for a plan input or the output directory.
type fileInfo struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Hint   string `json:"hint,omitempty"`
}

// envInfo holds platform detection results.
type envInfo struct {
	OS     string `json:"os"`
	Arch   string `json:"arch"`
	Runner string `json:"runner"` // "exec" or the shell command line prefix
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return exitForParse(err, env)
	}

	cfg, source, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	if flags.showConfig {
		data, err := yamlutil.Encode(cfg)
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(data)
		return ExitSuccess
	}

	result := runDoctor(ctx, cfg, source, env.runner())

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// exitForParse maps a flag parse error to an exit code.
func exitForParse(err error, env *Environment) int {
	if isHelp(err) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return ExitUsage
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, source string, runner assetbuild.CommandRunner) *doctorResult {
	if source == "" {
		source = "defaults"
	}
	result := &doctorResult{
		Status: "ready",
		Config: source,
		Env: envInfo{
			OS:     runtime.GOOS,
			Arch:   runtime.GOARCH,
			Runner: runnerName(runner),
		},
	}

	plan := planFromConfig(cfg)
	if err := plan.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	checkTools(ctx, result, plan, runner)
	checkInputs(result, plan)
	checkOutputDir(result, cfg.OutputDir)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkTools locates the compiler and post-processor the plan invokes.
func checkTools(ctx context.Context, result *doctorResult, plan *assetbuild.Plan, runner assetbuild.CommandRunner) {
	sass := orDefault(plan.Stylesheet.Compiler, assetbuild.DefaultSassBinary)
	result.Tools = append(result.Tools, lookupTool(ctx, result, runner, sass))

	pp := plan.PostProcess
	switch {
	case !pp.Enabled:
		result.Warnings = append(result.Warnings, "Post-processing disabled: no vendor prefixes will be added")
	case pp.Engine == assetbuild.EngineEsbuild:
		result.Tools = append(result.Tools, toolInfo{Name: "esbuild", Found: true, Builtin: true})
	default:
		postcss := orDefault(pp.Binary, assetbuild.DefaultPostCSSBinary)
		result.Tools = append(result.Tools, lookupTool(ctx, result, runner, postcss))
	}
}

// lookupTool resolves name and asks it for its version.
func lookupTool(ctx context.Context, result *doctorResult, runner assetbuild.CommandRunner, name string) toolInfo {
	info := toolInfo{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		info.Hint = trimHint(hints.ForToolNotFound(name))
		result.Errors = append(result.Errors, fmt.Sprintf("%s not found", name))
		return info
	}
	info.Found = true
	info.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	stdout, _, err := runner.Run(ctx, name, "--version")
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get %s version: %v", name, err))
		return info
	}
	info.Version = strings.TrimSpace(stdout)
	return info
}

// checkInputs verifies that every file the plan reads exists.
func checkInputs(result *doctorResult, plan *assetbuild.Plan) {
	for _, in := range plan.Inputs() {
		if in == "" {
			continue
		}
		fi := fileInfo{Path: in, Exists: fileutil.FileExists(in)}
		if !fi.Exists {
			fi.Hint = trimHint(hints.ForMissingSource(in))
			result.Errors = append(result.Errors, fmt.Sprintf("Input not found: %s", in))
		}
		result.Inputs = append(result.Inputs, fi)
	}
}

// checkOutputDir verifies the output directory exists.
func checkOutputDir(result *doctorResult, dir string) {
	if dir == "" {
		dir = "."
	}
	result.Output = fileInfo{Path: dir, Exists: fileutil.DirExists(dir)}
	if !result.Output.Exists {
		result.Output.Hint = trimHint(hints.ForOutputDirectory())
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not found: %s", dir))
	}
}

func runnerName(r assetbuild.CommandRunner) string {
	if s, ok := r.(*assetbuild.ShellRunner); ok {
		return s.Shell + " " + s.Flag
	}
	return "exec"
}

// trimHint strips the "\n  hint: " prefix used when hints follow an error.
func trimHint(h string) string {
	return strings.TrimPrefix(h, "\n  hint: ")
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "assetbuild doctor")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Configuration: %s\n", r.Config)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Tools")
	for _, t := range r.Tools {
		switch {
		case t.Builtin:
			fmt.Fprintf(w, "  [OK] %s: built in\n", t.Name)
		case t.Found && t.Version != "":
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", t.Name, t.Path, t.Version)
		case t.Found:
			fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		default:
			fmt.Fprintf(w, "  [ERROR] %s: not found\n", t.Name)
			printHint(w, t.Hint)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Inputs")
	for _, in := range r.Inputs {
		if in.Exists {
			fmt.Fprintf(w, "  [OK] %s\n", in.Path)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s: missing\n", in.Path)
			printHint(w, in.Hint)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output")
	if r.Output.Exists {
		fmt.Fprintf(w, "  [OK] %s\n", r.Output.Path)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: missing\n", r.Output.Path)
		printHint(w, r.Output.Hint)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Tool invocation: %s\n", r.Env.Runner)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printHint(w io.Writer, hint string) {
	if hint != "" {
		fmt.Fprintf(w, "         hint: %s\n", hint)
	}
}
