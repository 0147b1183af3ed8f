package category

import (
	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
)

// runCask upgrades Homebrew casks, including auto-updating apps (--greedy).
//
// Only casks announcing "was successfully upgraded!" become records; a
// failed cask does not appear in the item list and is reflected solely in
// the warning status derived from the exit code. That asymmetry matches
// Homebrew's message grammar.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runCask(ctx *Context) report.CategoryResult {
	const name, title = "cask", "Homebrew casks"

	if !preflight.IsInstalled("brew") {
		return notInstalled(name, title, "brew")
	}

	if ctx.Audit {
		output, _ := ctx.Runner.Run([]string{"brew", "outdated", "--cask", "--greedy", "--verbose"}, true)
		if ctx.Runner.DryRun {
			return dryRunResult(name, title)
		}
		return auditResult(name, title, parse.Outdated(output))
	}

	output, code := ctx.Runner.Run([]string{"brew", "upgrade", "--cask", "--greedy"}, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	records := parse.CaskUpgrades(output)

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusWarning,
			Records:  records,
			Detail:   "some casks failed to upgrade; see run log",
		}
	}
	if len(records) == 0 {
		return report.CategoryResult{Category: name, Title: title, Status: report.StatusNoUpdates}
	}

	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusUpdated,
		Records:  records,
	}
}
