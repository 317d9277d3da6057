// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-assetbuild/internal/fileutil"
)

// HasPackageJSON reports whether the working directory is a Node project.
// Variable so tests can stub it.
var HasPackageJSON = func() bool {
	return fileutil.FileExists("package.json")
}

// ForToolNotFound returns hints for an external tool missing from PATH.
func ForToolNotFound(tool string) string {
	base := strings.ToLower(filepath.Base(tool))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var hints []string
	switch base {
	case "sass", "scss":
		hints = append(hints, "install Dart Sass (npm install -g sass) or set ASSETBUILD_SASS")
	case "postcss":
		if HasPackageJSON() {
			hints = append(hints, "run npm install postcss-cli autoprefixer")
		} else {
			hints = append(hints, "create package.json and install postcss-cli autoprefixer")
		}
		hints = append(hints, "or set postprocess.engine: esbuild to prefix without Node.js")
	default:
		hints = append(hints, "check that "+tool+" is installed and on PATH")
	}
	return formatHints(hints)
}

// ForMissingSource returns a hint when a plan input does not exist.
// Inputs under node_modules usually mean dependencies were never installed.
func ForMissingSource(path string) string {
	slashed := filepath.ToSlash(path)
	if strings.HasPrefix(slashed, "node_modules/") || strings.Contains(slashed, "/node_modules/") {
		return format("run npm install to fetch vendored packages")
	}
	return ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-assetbuild/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/assetbuild.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-assetbuild") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for missing or unwritable output directories.
func ForOutputDirectory() string {
	return format("create the output directory first; assetbuild never creates it")
}

// ForHighlightStyle lists the available chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	const shown = 8
	if len(available) > shown {
		available = append(available[:shown:shown], "...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
