package category

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/macup/pkg/errors"
	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
	"github.com/ajxudir/macup/pkg/verbose"
)

// nodeIndexURL is the release index consulted for the latest LTS version.
// Swappable for tests.
var nodeIndexURL = "https://nodejs.org/dist/index.json"

// nodeHTTPClient performs the release index lookup. The timeout bounds only
// this HTTP call; external commands intentionally run without timeouts.
var nodeHTTPClient = &http.Client{Timeout: 15 * time.Second}

// timeNow is swappable for deterministic backup names in tests.
var timeNow = time.Now

// claudePackage is the npm global reinstalled after a Node version change
// when its CLI was present beforehand.
const claudePackage = "@anthropic-ai/claude-code"

// runNode updates Node.js through nvm to the latest LTS release.
//
// This is the only category needing network access for version comparison:
// a failed release index lookup ends the category with an error. A real
// (non-dry-run) version change is preceded by a timestamped backup of the
// nvm directory; if the claude CLI existed beforehand it is reinstalled
// afterward and its shell alias in ~/.zshrc is rewritten, itself preceded
// by a timestamped backup of that file.
//
// Parameters:
//   - ctx: The shared run context
//
// Returns:
//   - report.CategoryResult: The category's terminal result
func runNode(ctx *Context) report.CategoryResult {
	const name, title = "node", "Node.js (nvm)"

	nvmDir := os.Getenv("NVM_DIR")
	if nvmDir == "" {
		nvmDir = filepath.Join(ctx.Home, ".nvm")
	}
	if _, err := os.Stat(filepath.Join(nvmDir, "nvm.sh")); err != nil {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusNotInstalled,
			Detail:   preflight.Hint("node"),
		}
	}

	if ctx.Runner.DryRun {
		ctx.Runner.RunShell(nvmCommand(nvmDir, "nvm install --lts && nvm alias default lts/*"), true)
		return dryRunResult(name, title)
	}

	latest, err := fetchLatestNode()
	if err != nil {
		checkErr := &errors.UpdateCheckError{Category: name, Err: err}
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   checkErr.Error(),
		}
	}

	current := currentNodeVersion(ctx, nvmDir)
	if current != "" && semver.Compare(latest, current) <= 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusNoUpdates,
			Detail:   current,
		}
	}

	record := parse.Record{Name: "node", OldVersion: strings.TrimPrefix(current, "v"), NewVersion: strings.TrimPrefix(latest, "v")}
	if ctx.Audit {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusWarning,
			Records:  []parse.Record{record},
			Detail:   fmt.Sprintf("Node %s available (audit)", latest),
		}
	}

	stamp := timeNow().Format("20060102-150405")
	backupDir := nvmDir + ".backup-" + stamp
	if _, code := ctx.Runner.Run([]string{"cp", "-R", nvmDir, backupDir}, true); code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "failed to back up " + nvmDir + "; aborting node update",
		}
	}

	claudeWasPresent := preflight.IsInstalled("claude")

	install := fmt.Sprintf("nvm install %s && nvm alias default %s", latest, latest)
	if _, code := ctx.Runner.RunShell(nvmCommand(nvmDir, install), true); code != 0 {
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   "nvm install failed; see run log",
		}
	}

	if installed := currentNodeVersion(ctx, nvmDir); installed != latest {
		mismatch := &errors.MismatchError{Tool: "node", Expected: latest, Actual: installed}
		return report.CategoryResult{
			Category: name,
			Title:    title,
			Status:   report.StatusError,
			Detail:   mismatch.Error(),
		}
	}

	if claudeWasPresent {
		ctx.Runner.RunShell(nvmCommand(nvmDir, "npm install -g "+claudePackage), true)
		if err := rewriteClaudeAlias(ctx.Home, nvmDir, latest, stamp); err != nil {
			verbose.Infof("Alias rewrite skipped: %v", err)
		}
	}

	return report.CategoryResult{
		Category: name,
		Title:    title,
		Status:   report.StatusUpdated,
		Records:  []parse.Record{record},
	}
}

// nvmCommand wraps a command so it runs with nvm's shell function loaded.
//
// Parameters:
//   - nvmDir: The nvm installation directory
//   - command: The command line to run after sourcing nvm.sh
//
// Returns:
//   - string: A shell command line sourcing nvm.sh first
func nvmCommand(nvmDir, command string) string {
	return fmt.Sprintf(`export NVM_DIR=%q && . "$NVM_DIR/nvm.sh" && %s`, nvmDir, command)
}

// currentNodeVersion returns the active Node version, e.g. "v22.11.0".
//
// Parameters:
//   - ctx: The shared run context
//   - nvmDir: The nvm installation directory
//
// Returns:
//   - string: The reported version, or empty when node is unavailable
func currentNodeVersion(ctx *Context, nvmDir string) string {
	output, code := ctx.Runner.RunShell(nvmCommand(nvmDir, "node --version"), true)
	if code != 0 {
		return ""
	}
	version := strings.TrimSpace(output)
	if !semver.IsValid(version) {
		return ""
	}
	return version
}

// nodeRelease is one entry of the nodejs.org dist index.
//
// The lts field is either false or the codename string of the LTS line, so
// it must decode as an untyped value.
type nodeRelease struct {
	Version string `json:"version"`
	LTS     any    `json:"lts"`
}

// fetchLatestNode looks up the newest LTS release from the dist index.
//
// Returns:
//   - string: The latest LTS version with "v" prefix
//   - error: When the lookup or decode fails, or no LTS release exists
func fetchLatestNode() (string, error) {
	resp, err := nodeHTTPClient.Get(nodeIndexURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release index returned %s", resp.Status)
	}

	var releases []nodeRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return "", fmt.Errorf("failed to decode release index: %w", err)
	}

	latest := ""
	for _, release := range releases {
		if isFalse(release.LTS) || !semver.IsValid(release.Version) {
			continue
		}
		if latest == "" || semver.Compare(release.Version, latest) > 0 {
			latest = release.Version
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no LTS release found in index")
	}
	return latest, nil
}

// isFalse reports whether a decoded JSON value is the boolean false.
func isFalse(v any) bool {
	b, ok := v.(bool)
	return ok && !b
}

// rewriteClaudeAlias points the claude alias in ~/.zshrc at the new Node
// version's bin directory, backing the file up first.
//
// A missing file or a file without the alias line is left untouched.
//
// Parameters:
//   - home: The user's home directory
//   - nvmDir: The nvm installation directory
//   - version: The newly installed Node version with "v" prefix
//   - stamp: Timestamp suffix shared with the nvm directory backup
//
// Returns:
//   - error: When reading, backing up or rewriting the file fails
func rewriteClaudeAlias(home, nvmDir, version, stamp string) error {
	zshrc := filepath.Join(home, ".zshrc")
	data, err := os.ReadFile(zshrc)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "alias claude=") {
			lines[i] = fmt.Sprintf("alias claude=%q", filepath.Join(nvmDir, "versions", "node", version, "bin", "claude"))
			found = true
		}
	}
	if !found {
		return nil
	}

	backup := zshrc + ".backup-" + stamp
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return fmt.Errorf("failed to back up %s: %w", zshrc, err)
	}
	return os.WriteFile(zshrc, []byte(strings.Join(lines, "\n")), 0o644)
}
