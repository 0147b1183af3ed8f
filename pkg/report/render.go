package report

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
)

// timeRound is the display granularity for the elapsed-time line.
const timeRound = 100 * time.Millisecond

// PrintCategory writes the one-line status for a finished category, plus an
// indented item list for multi-item results.
//
// Item names are padded to a common display width (unicode-aware, so names
// with wide characters still line up) before the version transition.
//
// Parameters:
//   - w: Writer to output to (typically os.Stdout)
//   - result: The finished category result
//
// Returns:
//   - None
func PrintCategory(w io.Writer, result CategoryResult) {
	icon := statusIcon(result.Status)

	line := fmt.Sprintf("%s %s: %s", icon, result.Title, statusText(result))
	_, _ = fmt.Fprintln(w, line)

	if len(result.Records) == 0 {
		return
	}

	nameWidth := 0
	for _, rec := range result.Records {
		if width := runewidth.StringWidth(rec.Name); width > nameWidth {
			nameWidth = width
		}
	}

	for _, rec := range result.Records {
		padded := rec.Name + spaces(nameWidth-runewidth.StringWidth(rec.Name))
		if rec.OldVersion != "" && rec.NewVersion != "" {
			_, _ = fmt.Fprintf(w, "   %s  %s → %s\n", padded, rec.OldVersion, rec.NewVersion)
		} else {
			_, _ = fmt.Fprintf(w, "   %s\n", rec.Name)
		}
	}
}

// PrintSummary writes the final tiered summary: total counts, elapsed time
// and the accumulated action-required issues.
//
// The headline message is tiered on the total item count: an exact-zero
// all-clear, a singular form for one item, a plain count up to ten items,
// and a "big update day" variant beyond that.
//
// Parameters:
//   - w: Writer to output to (typically os.Stdout)
//   - summary: The completed run summary
//
// Returns:
//   - None
func PrintSummary(w io.Writer, summary *RunSummary) {
	total := summary.TotalItems()
	categories := summary.ChangedCategories()

	_, _ = fmt.Fprintln(w)
	switch {
	case total == 0:
		_, _ = fmt.Fprintf(w, "%s Everything is already up to date.\n", IconSparkle)
	case total == 1:
		_, _ = fmt.Fprintf(w, "%s 1 item updated across %d categories.\n", IconPackage, categories)
	case total <= 10:
		_, _ = fmt.Fprintf(w, "%s %d items updated across %d categories.\n", IconPackage, total, categories)
	default:
		_, _ = fmt.Fprintf(w, "%s Big update day: %d items updated across %d categories.\n", IconPackage, total, categories)
	}
	_, _ = fmt.Fprintf(w, "   Elapsed: %s\n", summary.Elapsed.Round(timeRound))

	if len(summary.Issues) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s Action required:\n", IconWarning)
	for _, issue := range summary.Issues {
		_, _ = fmt.Fprintf(w, "   - %s\n", issue)
	}
}

// statusText returns the human-readable status phrase for a result.
//
// Parameters:
//   - result: The finished category result
//
// Returns:
//   - string: Status phrase, with the detail appended when present
func statusText(result CategoryResult) string {
	var text string
	switch result.Status {
	case StatusNoUpdates:
		text = "already up to date"
	case StatusUpdated:
		if n := len(result.Records); n == 1 {
			text = "1 update applied"
		} else {
			text = fmt.Sprintf("%d updates applied", n)
		}
	case StatusWarning:
		text = "warning"
	case StatusError:
		text = "error"
	case StatusSkipped:
		text = "skipped"
	case StatusNotInstalled:
		text = "not installed"
	default:
		text = result.Status
	}

	if result.Detail != "" && result.Status != StatusNoUpdates && result.Status != StatusSkipped {
		text += " (" + result.Detail + ")"
	}
	return text
}

// spaces returns n spaces, or an empty string for non-positive n.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}
