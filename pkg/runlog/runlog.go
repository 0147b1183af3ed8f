// Package runlog maintains the append-only plain-text log of every run.
//
// The log lives beside the binary by default, carries one timestamped header
// per run, and receives the raw captured output of every external command
// (or its dry-run marker) regardless of severity.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// timeNow is swappable for deterministic header timestamps in tests.
var timeNow = time.Now

// Log is an append-only run log.
//
// The first Append of a run writes a timestamp header before the payload.
// All methods are safe for use from the single sequential update flow; the
// mutex only defends against accidental reuse from helper goroutines.
//
// Fields:
//   - path: Filesystem location of the log file
type Log struct {
	mu          sync.Mutex
	path        string
	file        *os.File
	wroteHeader bool
}

// DefaultPath returns the default log file location beside the binary.
//
// If the executable path cannot be resolved, it falls back to the current
// working directory.
//
// Returns:
//   - string: Absolute path of the default log file
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "macup.log"
	}
	return filepath.Join(filepath.Dir(exe), "macup.log")
}

// Open opens (or creates) the log file at path for appending.
//
// Parameters:
//   - path: The log file location; parent directory must exist
//
// Returns:
//   - *Log: The opened log
//   - error: When the file cannot be opened for appending
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %s: %w", path, err)
	}
	return &Log{path: path, file: f}, nil
}

// Path returns the filesystem location of the log file.
//
// Returns:
//   - string: The log file path, or empty for a nil log
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one blob of raw command output to the log.
//
// The first call of a run writes a timestamp header line before the blob.
// Appending to a nil log is a no-op so callers never need to guard for a
// disabled log.
//
// Parameters:
//   - blob: Raw text to record; a trailing newline is added when missing
//
// Returns:
//   - error: When the write fails; nil on success or for a nil log
func (l *Log) Append(blob string) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("run log %s is closed", l.path)
	}

	if !l.wroteHeader {
		header := fmt.Sprintf("===== macup run %s =====\n", timeNow().Format("2006-01-02 15:04:05"))
		if _, err := l.file.WriteString(header); err != nil {
			return fmt.Errorf("failed to write run log header: %w", err)
		}
		l.wroteHeader = true
	}

	if !strings.HasSuffix(blob, "\n") {
		blob += "\n"
	}
	if _, err := l.file.WriteString(blob); err != nil {
		return fmt.Errorf("failed to append to run log: %w", err)
	}
	return nil
}

// Close closes the underlying log file.
//
// Returns:
//   - error: When closing fails; nil on success or for a nil log
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
