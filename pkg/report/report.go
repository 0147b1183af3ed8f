// Package report holds the per-category result model, the run summary
// accumulator, and the text/JSON renderers for the final status report.
package report

import (
	"fmt"
	"time"

	"github.com/ajxudir/macup/pkg/parse"
)

// Status values represent the terminal state of a category after its
// update function returns.
const (
	// StatusNoUpdates indicates the category ran and found nothing to do.
	StatusNoUpdates = "NoUpdates"

	// StatusUpdated indicates the category applied one or more updates.
	StatusUpdated = "Updated"

	// StatusWarning indicates a non-fatal condition requiring attention,
	// such as system updates that must be installed manually.
	StatusWarning = "Warning"

	// StatusError indicates the category failed (remote lookup failure,
	// post-update version mismatch). Fatal to the category only.
	StatusError = "Error"

	// StatusSkipped indicates the user excluded the category via --skip.
	StatusSkipped = "Skipped"

	// StatusNotInstalled indicates the category's tool is absent.
	StatusNotInstalled = "NotInstalled"
)

// Icon constants for status display.
const (
	// IconSuccess indicates a successful or up-to-date state.
	IconSuccess = "🟢"

	// IconWarning indicates a warning state.
	IconWarning = "🟠"

	// IconError indicates an error state.
	IconError = "❌"

	// IconSkipped indicates a category excluded from processing.
	IconSkipped = "🚫"

	// IconNotInstalled indicates the category's tool is absent.
	IconNotInstalled = "⚪"

	// IconSparkle decorates the all-clear final summary.
	IconSparkle = "✨"

	// IconPackage decorates the final update count.
	IconPackage = "📦"
)

// CategoryResult is the outcome of one category for one run.
//
// A result is created once by the category's update function and never
// mutated afterwards.
//
// Fields:
//   - Category: The category name (skip-token spelling, e.g. "brew")
//   - Title: Human-readable category title for display
//   - Status: One of the Status constants
//   - Records: Parsed update records; empty unless the status reports items
//   - Detail: Optional one-line elaboration shown after the status
type CategoryResult struct {
	Category string
	Title    string
	Status   string
	Records  []parse.Record
	Detail   string
}

// Changed reports whether this result's status counts toward the final
// item total.
//
// Returns:
//   - bool: true unless status is Skipped, NotInstalled or NoUpdates
func (r CategoryResult) Changed() bool {
	switch r.Status {
	case StatusSkipped, StatusNotInstalled, StatusNoUpdates:
		return false
	}
	return true
}

// RunSummary accumulates category results over one sequential run.
//
// It is owned by the top-level driver and only ever appended to from the
// single sequential flow, so it carries no synchronization.
//
// Fields:
//   - Results: Category results in execution order
//   - Issues: Messages for every warning/error result, in the same order
//   - Elapsed: Wall-clock duration of the whole run
type RunSummary struct {
	Results []CategoryResult
	Issues  []string
	Elapsed time.Duration
}

// Add appends a category result and maintains the issues invariant.
//
// The issues list contains exactly the results whose status is Warning or
// Error, each rendered as "<title>: <detail>".
//
// Parameters:
//   - result: The finished category result to record
//
// Returns:
//   - None
func (s *RunSummary) Add(result CategoryResult) {
	s.Results = append(s.Results, result)

	switch result.Status {
	case StatusWarning, StatusError:
		detail := result.Detail
		if detail == "" {
			detail = result.Status
		}
		s.Issues = append(s.Issues, fmt.Sprintf("%s: %s", result.Title, detail))
	}
}

// TotalItems returns the summed record count across categories whose
// status indicates change.
//
// Returns:
//   - int: Sum of per-category record counts, excluding skipped,
//     not-installed and no-updates categories
func (s *RunSummary) TotalItems() int {
	total := 0
	for _, r := range s.Results {
		if r.Changed() {
			total += len(r.Records)
		}
	}
	return total
}

// ChangedCategories returns how many categories reported changes.
//
// Returns:
//   - int: Count of results whose status indicates change
func (s *RunSummary) ChangedCategories() int {
	count := 0
	for _, r := range s.Results {
		if r.Changed() {
			count++
		}
	}
	return count
}

// statusIcon returns the display icon for a status value.
//
// Parameters:
//   - status: One of the Status constants
//
// Returns:
//   - string: The icon for the status; the error icon for unknown values
func statusIcon(status string) string {
	switch status {
	case StatusNoUpdates, StatusUpdated:
		return IconSuccess
	case StatusWarning:
		return IconWarning
	case StatusSkipped:
		return IconSkipped
	case StatusNotInstalled:
		return IconNotInstalled
	default:
		return IconError
	}
}
