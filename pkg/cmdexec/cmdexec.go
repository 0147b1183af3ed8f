// Package cmdexec provides command execution for the update categories.
// It captures combined stdout/stderr with the exit status, supports a
// dry-run mode that records intended commands without running them, and
// mirrors every invocation into the append-only run log.
package cmdexec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/macup/pkg/runlog"
	"github.com/ajxudir/macup/pkg/verbose"
)

// DryRunPrefix marks synthetic output produced instead of real execution.
const DryRunPrefix = "[dry-run] would execute:"

// ExecuteFunc is the function signature for command execution.
//
// Parameters:
//   - argv: The command and its arguments
//
// Returns:
//   - string: Combined stdout and stderr output
//   - int: Exit code (127 when the command could not be started)
type ExecuteFunc func(argv []string) (string, int)

// Execute is the default command execution function.
//
// This variable holds the implementation used for command execution
// throughout the application. It can be replaced with a mock
// implementation for testing.
var Execute ExecuteFunc = executeArgv

// Runner invokes external programs on behalf of the update categories.
//
// A Runner is created once per run and shared by every category. Non-zero
// exit codes are not treated as failures here; the calling category decides
// severity.
//
// Fields:
//   - DryRun: When true, no command is executed; a synthetic marker is
//     returned and logged instead
//   - Log: Run log receiving every invocation and its raw output; may be nil
type Runner struct {
	DryRun bool
	Log    *runlog.Log
}

// Run executes argv and returns its merged output and exit code.
//
// Stdout and stderr are merged into one blob; the interleaving between the
// two streams is not guaranteed, and downstream parsers must tolerate
// either ordering. The invocation and its output are always appended to the
// run log, in dry-run mode as the would-execute marker.
//
// Parameters:
//   - argv: The command and its arguments
//   - capture: When false, the merged output is also echoed to stdout
//
// Returns:
//   - string: Combined stdout/stderr, or the dry-run marker
//   - int: Exit code; always 0 in dry-run mode
func (r *Runner) Run(argv []string, capture bool) (string, int) {
	cmdline := strings.Join(argv, " ")

	if r.DryRun {
		marker := fmt.Sprintf("%s %s", DryRunPrefix, cmdline)
		_ = r.Log.Append(marker)
		if !capture {
			fmt.Println(marker)
		}
		return marker, 0
	}

	verbose.CommandExec(argv)
	output, code := Execute(argv)
	verbose.CommandResult(argv, code, output)

	_ = r.Log.Append(fmt.Sprintf("$ %s\n%s", cmdline, output))
	if !capture && output != "" {
		fmt.Print(output)
		if !strings.HasSuffix(output, "\n") {
			fmt.Println()
		}
	}
	return output, code
}

// RunShell executes a command line through the user's shell.
//
// Some collaborators (nvm, the oh-my-zsh upgrade script) are shell
// functions or depend on shell initialization, so they cannot be invoked as
// plain binaries. The command runs through the login shell so those
// definitions are available.
//
// Parameters:
//   - command: The shell command line to execute
//   - capture: When false, the merged output is also echoed to stdout
//
// Returns:
//   - string: Combined stdout/stderr, or the dry-run marker
//   - int: Exit code; always 0 in dry-run mode
func (r *Runner) RunShell(command string, capture bool) (string, int) {
	shell, shellArgs := getShell()
	argv := append([]string{shell}, append(shellArgs, command)...)
	return r.Run(argv, capture)
}

// getShell returns the user's shell and args to run a command.
//
// The SHELL environment variable wins (Unix systems); the platform default
// is the fallback. Using the user's shell keeps aliases and shell functions
// like nvm available during execution.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return getDefaultShell()
}

// executeArgv runs argv and merges both output streams into one blob.
//
// A command that cannot be started at all (missing binary, permission
// failure) yields the error text as output and exit code 127, matching
// shell conventions.
//
// Parameters:
//   - argv: The command and its arguments; must be non-empty
//
// Returns:
//   - string: Combined stdout and stderr
//   - int: The command's exit code
func executeArgv(argv []string) (string, int) {
	if len(argv) == 0 {
		return "no command provided", 127
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	output := combined.String()
	if err == nil {
		return output, 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, exitErr.ExitCode()
	}

	// The command never started; surface the reason as output.
	if output == "" {
		output = err.Error()
	}
	return output, 127
}
