// Package category implements the per-tool update functions and the
// sequential driver that runs them in a fixed order.
//
// Every category follows the same state machine: the skip check precedes
// the install check, which precedes execution; each path ends in exactly
// one terminal status. No category's outcome affects another's execution.
package category

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ajxudir/macup/pkg/cmdexec"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
	"github.com/ajxudir/macup/pkg/verbose"
)

// Context carries the per-run state shared by every category.
//
// Fields:
//   - Runner: Command runner used for every external invocation
//   - Skip: Normalized skip tokens requested via --skip
//   - Audit: When true, categories only check for updates, never apply them
//   - Home: The user's home directory (shell framework and version manager
//     installation roots are resolved against it)
type Context struct {
	Runner *cmdexec.Runner
	Skip   map[string]bool
	Audit  bool
	Home   string
}

// Category is one external tool whose updates this system checks or drives.
//
// Fields:
//   - Name: Unique category name used in reports
//   - Title: Human-readable title for status lines
//   - SkipToken: The --skip token controlling this category; casks share
//     the "brew" token with formulae
//   - Run: The category's update function
type Category struct {
	Name      string
	Title     string
	SkipToken string
	Run       func(ctx *Context) report.CategoryResult
}

// ValidSkipTokens are the accepted values for the --skip flag.
var ValidSkipTokens = []string{"macos", "zsh", "brew", "conda", "appstore", "node", "uv", "npm"}

// All returns the categories in their fixed execution order.
//
// The order is significant only for presentation grouping: system software
// first, store apps last; no category result affects another's execution.
//
// Returns:
//   - []Category: Categories in execution order
func All() []Category {
	return []Category{
		{Name: "macos", Title: "macOS system software", SkipToken: "macos", Run: runMacOS},
		{Name: "zsh", Title: "oh-my-zsh", SkipToken: "zsh", Run: runZsh},
		{Name: "brew", Title: "Homebrew packages", SkipToken: "brew", Run: runBrew},
		{Name: "cask", Title: "Homebrew casks", SkipToken: "brew", Run: runCask},
		{Name: "conda", Title: "conda environments", SkipToken: "conda", Run: runConda},
		{Name: "uv", Title: "uv tools", SkipToken: "uv", Run: runUV},
		{Name: "node", Title: "Node.js (nvm)", SkipToken: "node", Run: runNode},
		{Name: "npm", Title: "npm global packages", SkipToken: "npm", Run: runNpm},
		{Name: "appstore", Title: "App Store apps", SkipToken: "appstore", Run: runAppStore},
	}
}

// ParseSkip parses a comma-separated skip list into a token set.
//
// Parsing is idempotent and order-independent: duplicates collapse and
// "brew,conda" skips exactly the same categories as "conda,brew". Unknown
// tokens are an argument error.
//
// Parameters:
//   - value: The raw --skip flag value; empty means skip nothing
//
// Returns:
//   - map[string]bool: The requested skip tokens
//   - error: When a token is not one of ValidSkipTokens
func ParseSkip(value string) (map[string]bool, error) {
	skip := make(map[string]bool)
	if strings.TrimSpace(value) == "" {
		return skip, nil
	}

	valid := make(map[string]bool, len(ValidSkipTokens))
	for _, token := range ValidSkipTokens {
		valid[token] = true
	}

	var unknown []string
	for _, token := range strings.Split(value, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if !valid[token] {
			unknown = append(unknown, token)
			continue
		}
		skip[token] = true
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown skip token(s): %s (valid: %s)",
			strings.Join(unknown, ", "), strings.Join(ValidSkipTokens, ", "))
	}
	return skip, nil
}

// RunAll executes every category sequentially, printing each result as it
// finishes and folding it into the summary.
//
// Parameters:
//   - ctx: The shared run context
//   - summary: Accumulator receiving every result
//   - w: Writer for per-category status lines
//
// Returns:
//   - None
func RunAll(ctx *Context, summary *report.RunSummary, w io.Writer) {
	for _, cat := range All() {
		result := RunOne(ctx, cat)
		summary.Add(result)
		report.PrintCategory(w, result)
	}
}

// RunOne runs a single category through the common state machine.
//
// The skip check runs first, then the category's own install check and
// execution inside its Run function. All failures are converted to a
// status value here; nothing a category does can abort the run.
//
// Parameters:
//   - ctx: The shared run context
//   - cat: The category to run
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func RunOne(ctx *Context, cat Category) report.CategoryResult {
	if ctx.Skip[cat.SkipToken] {
		verbose.CategorySkipped(cat.Name, "requested via --skip")
		return report.CategoryResult{
			Category: cat.Name,
			Title:    cat.Title,
			Status:   report.StatusSkipped,
		}
	}
	return cat.Run(ctx)
}

// dryRunResult builds the terminal result for a category that only emitted
// would-execute markers. Nothing ran, so nothing changed.
func dryRunResult(name, title string) report.CategoryResult {
	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusNoUpdates,
		Detail:   "dry-run",
	}
}

// notInstalled builds the terminal result for an absent tool, attaching
// the installation hint as detail.
func notInstalled(name, title, tool string) report.CategoryResult {
	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusNotInstalled,
		Detail:   preflight.Hint(tool),
	}
}
