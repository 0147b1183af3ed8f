package category

import (
	"fmt"

	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/report"
)

// runBrew updates Homebrew formulae.
//
// The pending set is parsed from `brew outdated --verbose` before the
// upgrade, so the report lists old and new versions even though
// `brew upgrade` itself prints them in a less regular shape.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runBrew(ctx *Context) report.CategoryResult {
	const name, title = "brew", "Homebrew packages"

	if !preflight.IsInstalled("brew") {
		return notInstalled(name, title, "brew")
	}

	ctx.Runner.Run([]string{"brew", "update"}, true)
	output, _ := ctx.Runner.Run([]string{"brew", "outdated", "--verbose"}, true)

	if ctx.Audit {
		if ctx.Runner.DryRun {
			return dryRunResult(name, title)
		}
		return auditResult(name, title, parse.Outdated(output))
	}

	records := parse.Outdated(output)
	_, code := ctx.Runner.Run([]string{"brew", "upgrade"}, true)

	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "brew upgrade failed; see run log",
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

// auditResult converts a pending-update listing into an audit-mode result.
//
// Audit runs never apply anything, so available updates surface as a
// warning that joins the final action-required list.
func auditResult(name, title string, records []parse.Record) report.CategoryResult {
	if len(records) == 0 {
		return report.CategoryResult{Category: name, Title: title, Status: report.StatusNoUpdates}
	}
	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusWarning,
		Records:  records,
		Detail:   fmt.Sprintf("%d updates available (audit)", len(records)),
	}
}
