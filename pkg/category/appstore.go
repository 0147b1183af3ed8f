package category

import (
	"strings"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
)

// runAppStore upgrades Mac App Store apps through the mas CLI.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runAppStore(ctx *Context) report.CategoryResult {
	const name, title = "appstore", "App Store apps"

	if !preflight.IsInstalled("mas") {
		return notInstalled(name, title, "mas")
	}

	if ctx.Audit {
		output, _ := ctx.Runner.Run([]string{"mas", "outdated"}, true)
		if ctx.Runner.DryRun {
			return dryRunResult(name, title)
		}
		return auditResult(name, title, parseMasOutdated(output))
	}

	output, code := ctx.Runner.Run([]string{"mas", "upgrade"}, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "mas upgrade failed; see run log",
		}
	}

	records := parse.MasInstalls(output)
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

// parseMasOutdated extracts pending updates from `mas outdated` output.
//
// Lines look like "497799835 Xcode (15.4 -> 16.0)"; the numeric app
// identifier is dropped and only the name and versions are kept. Lines
// without the version transition still record the name.
//
// Parameters:
//   - raw: Raw outdated listing output
//
// Returns:
//   - []parse.Record: One record per outdated app
func parseMasOutdated(raw string) []parse.Record {
	var records []parse.Record
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		rest := strings.Join(fields[1:], " ")
		name := rest
		var oldV, newV string
		if open := strings.LastIndex(rest, "("); open >= 0 && strings.HasSuffix(rest, ")") {
			if inner := rest[open+1 : len(rest)-1]; strings.Contains(inner, "->") {
				parts := strings.SplitN(inner, "->", 2)
				oldV = strings.TrimSpace(parts[0])
				newV = strings.TrimSpace(parts[1])
				name = strings.TrimSpace(rest[:open])
			}
		}
		records = append(records, parse.Record{Name: name, OldVersion: oldV, NewVersion: newV})
	}
	return records
}
