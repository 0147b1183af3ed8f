package category

import (
	"regexp"
	"strings"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
)

// npmListLineRe matches `npm ls -g --depth=0` tree lines, e.g.
// "├── corepack@0.29.4" or "└── @scope/tool@1.2.0". The greedy name group
// keeps scoped package names intact.
var npmListLineRe = regexp.MustCompile(`[├└]──\s+(.+)@(\d\S*)\s*$`)

// runNpm updates npm global packages.
//
// `npm update -g` prints no reliable per-package summary, so the record
// list comes from diffing the global listing before and after the update.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runNpm(ctx *Context) report.CategoryResult {
	const name, title = "npm", "npm global packages"

	if !preflight.IsInstalled("npm") {
		return notInstalled(name, title, "npm")
	}

	if ctx.Audit {
		output, _ := ctx.Runner.Run([]string{"npm", "outdated", "-g"}, true)
		if ctx.Runner.DryRun {
			return dryRunResult(name, title)
		}
		return auditResult(name, title, parseNpmOutdated(output))
	}

	beforeOut, _ := ctx.Runner.Run([]string{"npm", "ls", "-g", "--depth=0"}, true)
	_, code := ctx.Runner.Run([]string{"npm", "update", "-g"}, true)
	afterOut, _ := ctx.Runner.Run([]string{"npm", "ls", "-g", "--depth=0"}, true)

	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "npm update failed; see run log",
		}
	}

	records := diffNpmListings(parseNpmList(beforeOut), parseNpmList(afterOut))
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

// parseNpmList extracts package name and version pairs from an
// `npm ls -g --depth=0` listing.
//
// Parameters:
//   - raw: Raw listing output
//
// Returns:
//   - []parse.Record: One record per listed package, versions in NewVersion
func parseNpmList(raw string) []parse.Record {
	var records []parse.Record
	for _, line := range strings.Split(raw, "\n") {
		if m := npmListLineRe.FindStringSubmatch(line); m != nil {
			records = append(records, parse.Record{Name: m[1], NewVersion: m[2]})
		}
	}
	return records
}

// diffNpmListings returns the packages whose version changed between two
// global listings, in the after-listing's order.
//
// Newly appearing packages count as changed with an empty old version;
// packages that vanished are ignored.
//
// Parameters:
//   - before: Listing taken before the update
//   - after: Listing taken after the update
//
// Returns:
//   - []parse.Record: One record per changed package
func diffNpmListings(before, after []parse.Record) []parse.Record {
	previous := make(map[string]string, len(before))
	for _, rec := range before {
		previous[rec.Name] = rec.NewVersion
	}

	var changed []parse.Record
	for _, rec := range after {
		old, existed := previous[rec.Name]
		if existed && old == rec.NewVersion {
			continue
		}
		changed = append(changed, parse.Record{Name: rec.Name, OldVersion: old, NewVersion: rec.NewVersion})
	}
	return changed
}

// parseNpmOutdated extracts pending updates from `npm outdated -g` output.
//
// The first line is the column header; each following line carries
// package, current, wanted and latest columns.
//
// Parameters:
//   - raw: Raw outdated table output
//
// Returns:
//   - []parse.Record: One record per outdated package
func parseNpmOutdated(raw string) []parse.Record {
	var records []parse.Record
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] == "Package" {
			continue
		}
		records = append(records, parse.Record{Name: fields[0], OldVersion: fields[1], NewVersion: fields[3]})
	}
	return records
}
