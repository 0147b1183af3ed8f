// Package cmd implements the command-line interface for macup.
// The root command runs every update category in sequence; flags select
// dry-run, audit-only and listing modes.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/macup/pkg/apps"
	"github.com/ajxudir/macup/pkg/category"
	"github.com/ajxudir/macup/pkg/cmdexec"
	"github.com/ajxudir/macup/pkg/config"
	"github.com/ajxudir/macup/pkg/errors"
	"github.com/ajxudir/macup/pkg/guard"
	"github.com/ajxudir/macup/pkg/preflight"
	"github.com/ajxudir/macup/pkg/report"
	"github.com/ajxudir/macup/pkg/runlog"
	"github.com/ajxudir/macup/pkg/verbose"
	"github.com/ajxudir/macup/pkg/warnings"
)

var exitFunc = os.Exit

var (
	dryRunFlag        bool
	auditFlag         bool
	listUnmanagedFlag bool
	skipFlag          string
	verboseFlag       bool
	outputFlag        string
	configFlag        string
)

var rootCmd = &cobra.Command{
	Use:   "macup",
	Short: "Workstation update orchestrator for macOS",
	Long: `Run every package manager update on a developer workstation in one pass:
macOS system software, oh-my-zsh, Homebrew formulae and casks, conda,
uv tools, Node.js via nvm, npm globals, and App Store apps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	RunE: runRoot,
}

// Execute runs the root command and exits with the appropriate code:
//   - 0: Success, including dry-run, audit and listing modes
//   - 1: Argument error, or missing required external tools at startup
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		warnings.Warnf("Error: %v\n", err)
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report intended commands without executing anything")
	rootCmd.Flags().BoolVar(&auditFlag, "audit", false, "Check for available updates without applying them")
	rootCmd.Flags().BoolVar(&listUnmanagedFlag, "list-unmanaged", false, "List applications not managed by any updater, by category")
	rootCmd.Flags().StringVar(&skipFlag, "skip", "", "Comma-separated categories to skip (macos, zsh, brew, conda, appstore, node, uv, npm)")
	rootCmd.Flags().StringVar(&outputFlag, "output", "text", "Summary output format: text or json")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Config file path (default $HOME/.macup.yml)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	rootCmd.AddCommand(versionCmd)
}

// runRoot executes the selected mode: unmanaged listing, or the sequential
// update run (real, dry-run or audit).
//
// Parameters:
//   - cmd: The invoked cobra command
//   - args: Positional arguments (none are accepted)
//
// Returns:
//   - error: An ExitError carrying the process exit code, or nil on success
func runRoot(cmd *cobra.Command, args []string) error {
	if outputFlag != "text" && outputFlag != "json" {
		return errors.NewExitErrorf(errors.ExitFailure, "invalid --output format: %s (valid: text, json)", outputFlag)
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	if listUnmanagedFlag {
		listing, err := apps.Scan(cfg.ApplicationsDir, verboseFlag, cfg.UnmanagedDenylist)
		if err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
		apps.Print(cmd.OutOrStdout(), listing, verboseFlag)
		return nil
	}

	skipValue := skipFlag
	if skipValue == "" && len(cfg.Skip) > 0 {
		skipValue = strings.Join(cfg.Skip, ",")
	}
	skip, err := category.ParseSkip(skipValue)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	release, err := guard.Acquire()
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}
	defer release()

	if err := preflight.CheckCore(); err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = runlog.DefaultPath()
	}
	log, err := runlog.Open(logPath)
	if err != nil {
		// A broken log sink should not block updates; run without it.
		warnings.Warnf("Warning: %v (continuing without run log)\n", err)
		log = nil
	}
	defer func() { _ = log.Close() }()

	home, err := os.UserHomeDir()
	if err != nil {
		return errors.NewExitErrorf(errors.ExitFailure, "cannot resolve home directory: %v", err)
	}

	ctx := &category.Context{
		Runner: &cmdexec.Runner{DryRun: dryRunFlag, Log: log},
		Skip:   skip,
		Audit:  auditFlag,
		Home:   home,
	}

	out := cmd.OutOrStdout()
	summary := &report.RunSummary{}
	start := time.Now()
	category.RunAll(ctx, summary, out)
	summary.Elapsed = time.Since(start)

	if outputFlag == "json" {
		doc, err := report.MarshalSummary(summary)
		if err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
		_, _ = fmt.Fprintln(out, doc)
		return nil
	}

	report.PrintSummary(out, summary)
	return nil
}
