// Package guard implements the same-session re-entrancy guard.
//
// The guard is a transient environment flag, cleared on exit. It prevents a
// second concurrent invocation within the same shell session only: it is
// not a cross-process lock and does not prevent two independent process
// invocations from running simultaneously. This limitation is inherited
// deliberately; broader mutual exclusion is out of scope.
package guard

import (
	"fmt"
	"os"
)

// EnvVar is the environment variable carrying the re-entrancy flag.
const EnvVar = "MACUP_RUNNING"

// Acquire sets the re-entrancy flag for this process.
//
// If the flag is already present in the environment, another invocation is
// still running in this session and Acquire fails.
//
// Returns:
//   - func(): Release function clearing the flag; call it on exit
//   - error: When the flag is already set or cannot be written
func Acquire() (func(), error) {
	if os.Getenv(EnvVar) != "" {
		return nil, fmt.Errorf("another macup run is already active in this session (%s is set)", EnvVar)
	}
	if err := os.Setenv(EnvVar, "1"); err != nil {
		return nil, fmt.Errorf("failed to set re-entrancy flag: %w", err)
	}
	return func() {
		_ = os.Unsetenv(EnvVar)
	}, nil
}
