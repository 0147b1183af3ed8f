package category

import (
	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
)

// runConda updates every package in the base conda environment.
//
// Conda prints its plan as a bounded "will be UPDATED" section; the parser
// reads only that section, so unrelated transaction chatter never produces
// records.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runConda(ctx *Context) report.CategoryResult {
	const name, title = "conda", "conda environments"

	if !preflight.IsInstalled("conda") {
		return notInstalled(name, title, "conda")
	}

	if ctx.Audit {
		output, _ := ctx.Runner.Run([]string{"conda", "update", "--all", "-n", "base", "--dry-run"}, true)
		if ctx.Runner.DryRun {
			return dryRunResult(name, title)
		}
		return auditResult(name, title, parse.CondaUpdates(output))
	}

	output, code := ctx.Runner.Run([]string{"conda", "update", "--all", "-n", "base", "-y"}, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "conda update failed; see run log",
		}
	}

	records := parse.CondaUpdates(output)
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
