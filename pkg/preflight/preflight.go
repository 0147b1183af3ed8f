// Package preflight validates the presence of external tools before any
// update category runs.
package preflight

import (
	"os/exec"
	"sort"
	"strings"

	"github.com/ajxudir/macup/pkg/errors"
	"github.com/ajxudir/macup/pkg/verbose"
)

// CoreTools are the binaries the whole run depends on. Any of them missing
// at startup aborts the run before the first category executes; every other
// tool is optional and only skips its own category.
var CoreTools = []string{"softwareupdate", "brew", "conda"}

// CommandResolutionHints maps tool names to installation instructions.
//
// Keys are command names, values are human-readable installation
// instructions with URLs.
var CommandResolutionHints = map[string]string{
	"softwareupdate": "Part of macOS - this tool only supports macOS hosts",
	"brew":           "Install Homebrew: https://brew.sh/",
	"conda":          "Install Miniconda: https://docs.conda.io/en/latest/miniconda.html",
	"mas":            "Install mas: brew install mas",
	"uv":             "Install uv: https://docs.astral.sh/uv/getting-started/installation/",
	"npm":            "Install Node.js via nvm: https://github.com/nvm-sh/nvm",
	"node":           "Install Node.js via nvm: https://github.com/nvm-sh/nvm",
	"curl":           "Install curl: https://curl.se/download.html (often pre-installed)",
}

// lookPath resolves a binary on PATH. Swappable for tests.
var lookPath = exec.LookPath

// IsInstalled reports whether a tool is available on PATH.
//
// Parameters:
//   - tool: The binary name to resolve
//
// Returns:
//   - bool: true if the binary resolves on PATH
func IsInstalled(tool string) bool {
	_, err := lookPath(tool)
	if err != nil {
		verbose.Infof("Tool '%s' not found on PATH", tool)
		return false
	}
	return true
}

// CheckCore validates that every core dependency is present.
//
// Missing tools are collected and reported together rather than one at a
// time, so a user with several gaps fixes them in one pass.
//
// Returns:
//   - error: A MissingCoreError naming every absent core tool, or nil when
//     all are present
func CheckCore() error {
	var missing []string
	for _, tool := range CoreTools {
		if !IsInstalled(tool) {
			missing = append(missing, tool)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &errors.MissingCoreError{Tools: missing}
}

// Hint returns the installation hint for a tool.
//
// Parameters:
//   - tool: The binary name to look up
//
// Returns:
//   - string: Installation instructions, or a generic PATH hint when the
//     tool is unknown
func Hint(tool string) string {
	if hint, ok := CommandResolutionHints[strings.ToLower(tool)]; ok {
		return hint
	}
	return "Ensure '" + tool + "' is installed and available in your PATH"
}
