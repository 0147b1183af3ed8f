package category

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/report"
)

// runZsh updates the oh-my-zsh shell framework in place.
//
// The framework lives under $HOME/.oh-my-zsh (or $ZSH when set) and ships
// its own upgrade script; the install check is the directory's presence,
// not a binary on PATH.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runZsh(ctx *Context) report.CategoryResult {
	const name, title = "zsh", "oh-my-zsh"

	root := os.Getenv("ZSH")
	if root == "" {
		root = filepath.Join(ctx.Home, ".oh-my-zsh")
	}
	upgradeScript := filepath.Join(root, "tools", "upgrade.sh")
	if _, err := os.Stat(upgradeScript); err != nil {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusNotInstalled,
			Detail:   "Install oh-my-zsh: https://ohmyz.sh/",
		}
	}

	if ctx.Audit {
		// The upgrade script has no check-only mode; in audit mode the
		// category reports presence without touching the installation.
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusNoUpdates,
			Detail:   "audit: upgrade check requires applying; skipped",
		}
	}

	output, code := ctx.Runner.RunShell("ZSH="+root+" zsh "+upgradeScript, true)
	if ctx.Runner.DryRun {
		return dryRunResult(name, title)
	}

	if code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "upgrade script failed; see run log",
		}
	}

	if strings.Contains(output, "already at the latest version") {
		return report.CategoryResult{Category: name, Title: title, Status: report.StatusNoUpdates}
	}

	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusUpdated,
		Records:  []parse.Record{{Name: "oh-my-zsh"}},
	}
}
