// Package apps implements the --list-unmanaged scan: it enumerates the
// Applications directory, drops OS-bundled and already-managed bundles, and
// buckets everything else into a fixed set of categories.
package apps

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one application bundle found by the scan.
//
// Fields:
//   - Name: Bundle name without the .app suffix
//   - Category: The single category the entry was assigned to
//   - ModifiedAt: Bundle modification time; zero unless verbose mode
type Entry struct {
	Name       string
	Category   string
	ModifiedAt time.Time
}

// Categories lists the twelve classification buckets in matching order.
// The first matching category wins; CategoryOther is the catch-all and
// matches everything, so every entry lands in exactly one bucket.
var Categories = []string{
	"Browsers",
	"Development",
	"Communication",
	"Productivity",
	"Media",
	"Design",
	"Utilities",
	"Security",
	"Office",
	"Cloud Storage",
	"Games",
	CategoryOther,
}

// CategoryOther is the catch-all bucket for unmatched entries.
const CategoryOther = "Other"

// categoryPatterns maps each non-catch-all category to its lowercase name
// patterns. Matching is ordered by Categories and substring-based, so a
// name like "Firefox Developer Edition" lands in Browsers, not Development.
var categoryPatterns = map[string][]string{
	"Browsers":      {"safari", "chrome", "firefox", "edge", "brave", "opera", "vivaldi", "arc"},
	"Development":   {"xcode", "visual studio", "code", "iterm", "docker", "intellij", "pycharm", "goland", "sublime", "tower", "postman", "insomnia", "terminal"},
	"Communication": {"slack", "zoom", "discord", "teams", "telegram", "whatsapp", "signal", "messenger", "skype", "mail"},
	"Productivity":  {"notion", "obsidian", "todoist", "things", "fantastical", "bear", "evernote", "reminders", "calendar"},
	"Media":         {"spotify", "vlc", "music", "iina", "plex", "audacity", "podcast", "tidal"},
	"Design":        {"figma", "sketch", "photoshop", "illustrator", "affinity", "gimp", "blender", "pixelmator", "canva"},
	"Utilities":     {"alfred", "raycast", "rectangle", "magnet", "bartender", "cleanmymac", "stats", "keka", "the unarchiver", "appcleaner", "karabiner"},
	"Security":      {"1password", "bitwarden", "keepass", "vpn", "tunnelblick", "wireguard", "little snitch", "lulu"},
	"Office":        {"word", "excel", "powerpoint", "outlook", "onenote", "pages", "numbers", "keynote", "libreoffice"},
	"Cloud Storage": {"dropbox", "drive", "onedrive", "sync", "box"},
	"Games":         {"steam", "epic games", "battle.net", "minecraft", "gog galaxy"},
}

// defaultDenylist names bundles the scan always excludes: OS-bundled apps
// that ship with macOS plus apps this tool already manages through brew
// casks or mas.
var defaultDenylist = []string{
	"Safari",
	"GarageBand",
	"iMovie",
	"Keynote",
	"Numbers",
	"Pages",
	"Utilities",
}

// Listing is the classified result of one scan.
//
// Fields:
//   - ByCategory: Entries grouped by category; iterate via Categories for
//     stable order
type Listing struct {
	ByCategory map[string][]Entry
}

// Classify assigns an application name to exactly one category.
//
// Matching walks Categories in order and, within a category, its patterns
// in order; the first substring hit wins. Names matching nothing fall into
// CategoryOther, so the result is never empty and never ambiguous.
//
// Parameters:
//   - name: Application bundle name without the .app suffix
//
// Returns:
//   - string: The assigned category
func Classify(name string) string {
	lower := strings.ToLower(name)
	for _, category := range Categories {
		for _, pattern := range categoryPatterns[category] {
			if strings.Contains(lower, pattern) {
				return category
			}
		}
	}
	return CategoryOther
}

// Scan enumerates dir one level deep for .app bundles and classifies them.
//
// Denylisted names (built-in plus extraDeny) are excluded before
// classification. In verbose mode every entry carries its modification date
// and entries within a category are sorted oldest-first; otherwise
// filesystem enumeration order is preserved and no date is attached.
//
// Parameters:
//   - dir: Applications directory to scan (non-recursive beyond one level)
//   - verboseMode: When true, attach dates and sort oldest-first
//   - extraDeny: Additional bundle names to exclude
//
// Returns:
//   - *Listing: Classified entries grouped by category
//   - error: When the directory cannot be read
func Scan(dir string, verboseMode bool, extraDeny []string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	denied := make(map[string]bool, len(defaultDenylist)+len(extraDeny))
	for _, name := range defaultDenylist {
		denied[name] = true
	}
	for _, name := range extraDeny {
		denied[name] = true
	}

	listing := &Listing{ByCategory: make(map[string][]Entry)}
	for _, dirEntry := range entries {
		name := dirEntry.Name()
		if !strings.HasSuffix(name, ".app") {
			continue
		}
		name = strings.TrimSuffix(name, ".app")
		if denied[name] {
			continue
		}

		entry := Entry{Name: name, Category: Classify(name)}
		if verboseMode {
			if info, err := os.Stat(filepath.Join(dir, dirEntry.Name())); err == nil {
				entry.ModifiedAt = info.ModTime()
			}
		}
		listing.ByCategory[entry.Category] = append(listing.ByCategory[entry.Category], entry)
	}

	if verboseMode {
		for _, bucket := range listing.ByCategory {
			sort.SliceStable(bucket, func(i, j int) bool {
				return bucket[i].ModifiedAt.Before(bucket[j].ModifiedAt)
			})
		}
	}

	return listing, nil
}

// Print writes the listing grouped by category in the fixed category order.
//
// Parameters:
//   - w: Writer to output to (typically os.Stdout)
//   - listing: The classified scan result
//   - verboseMode: When true, each entry shows its modification date
//
// Returns:
//   - None
func Print(w io.Writer, listing *Listing, verboseMode bool) {
	total := 0
	for _, category := range Categories {
		bucket := listing.ByCategory[category]
		if len(bucket) == 0 {
			continue
		}
		total += len(bucket)

		_, _ = fmt.Fprintf(w, "%s (%d)\n", category, len(bucket))
		for _, entry := range bucket {
			if verboseMode && !entry.ModifiedAt.IsZero() {
				_, _ = fmt.Fprintf(w, "   %s  (modified %s)\n", entry.Name, entry.ModifiedAt.Format("2006-01-02"))
			} else {
				_, _ = fmt.Fprintf(w, "   %s\n", entry.Name)
			}
		}
	}
	_, _ = fmt.Fprintf(w, "\n%d unmanaged applications found.\n", total)
}
