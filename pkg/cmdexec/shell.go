package cmdexec

// getDefaultShell returns the default shell for the system.
//
// This is the fallback used when the SHELL environment variable is not set.
//
// Returns:
//   - shell: The path to the default shell executable
//   - args: The shell arguments needed to execute a command string
func getDefaultShell() (shell string, args []string) {
	return "/bin/zsh", []string{"-l", "-c"}
}
