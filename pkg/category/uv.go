package category

import (
	"regexp"
	"strings"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
)

var (
	// uvSelfUpgradedRe matches `uv self update`'s success line, e.g.
	// "Upgraded uv from v0.4.1 to v0.4.9".
	uvSelfUpgradedRe = regexp.MustCompile(`Upgraded uv from v?(\d\S*) to v?(\d\S*)`)

	// uvToolUpdatedRe matches per-tool upgrade lines, e.g.
	// "Updated ruff v0.6.1 -> v0.6.4".
	uvToolUpdatedRe = regexp.MustCompile(`^\s*Updated\s+(\S+)\s+v?(\d\S*)\s*->\s*v?(\d\S*)`)
)

// runUV self-updates uv and then upgrades every uv-managed tool.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runUV(ctx *Context) report.CategoryResult {
	const name, title = "uv", "uv tools"

	if !preflight.IsInstalled("uv") {
		return notInstalled(name, title, "uv")
	}

	if ctx.Audit {
		// uv has no check-only mode for self update or tool upgrades; audit
		// reports the installed state without touching it.
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusNoUpdates,
			Detail:   "audit: uv upgrades cannot be previewed; skipped",
		}
	}

	selfOut, selfCode := ctx.Runner.Run([]string{"uv", "self", "update"}, true)
	toolOut, toolCode := ctx.Runner.Run([]string{"uv", "tool", "upgrade", "--all"}, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	var records []parse.Record
	if m := uvSelfUpgradedRe.FindStringSubmatch(selfOut); m != nil {
		records = append(records, parse.Record{Name: "uv", OldVersion: m[1], NewVersion: m[2]})
	}
	for _, line := range strings.Split(toolOut, "\n") {
		if m := uvToolUpdatedRe.FindStringSubmatch(line); m != nil {
			records = append(records, parse.Record{Name: m[1], OldVersion: m[2], NewVersion: m[3]})
		}
	}

	if selfCode != 0 || toolCode != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "uv upgrade failed; see run log",
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
