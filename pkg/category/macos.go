package category

import (
	"regexp"
	"strings"

	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"

	"github.com/ajxudir/macup/pkg/parse"
)

// softwareUpdateLabelRe matches softwareupdate's per-update label lines,
// e.g. "* Label: macOS Sequoia 15.1-24B83".
var softwareUpdateLabelRe = regexp.MustCompile(`^\*\s*Label:\s*(.+?)\s*$`)

// runMacOS checks for macOS system software updates.
//
// This category never installs anything: softwareupdate installs can force
// reboots mid-run, so available updates are only reported as a warning that
// manual action is required.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: NoUpdates, Warning with the pending update
//     labels, or NotInstalled
func runMacOS(ctx *Context) report.CategoryResult {
	const name, title = "macos", "macOS system software"

	if !preflight.IsInstalled("softwareupdate") {
		return notInstalled(name, title, "softwareupdate")
	}

	output, code := ctx.Runner.Run([]string{"softwareupdate", "-l"}, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	// softwareupdate exits non-zero on "no new software" on some versions,
	// so the text markers decide, not the exit code.
	if strings.Contains(output, "No new software available") {
		return report.CategoryResult{Category: name, Title: title, Status: report.StatusNoUpdates}
	}

	var records []parse.Record
	for _, line := range strings.Split(output, "\n") {
		if m := softwareUpdateLabelRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			records = append(records, parse.Record{Name: m[1]})
		}
	}

	if len(records) == 0 && code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusWarning,
			Detail:   "softwareupdate check did not complete; see run log",
		}
	}
	if len(records) == 0 {
		return report.CategoryResult{Category: name, Title: title, Status: report.StatusNoUpdates}
	}

	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusWarning,
		Records:  records,
		Detail:   "install manually via System Settings or softwareupdate -i",
	}
}
