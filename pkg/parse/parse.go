// Package parse turns the free-form text output of the external update
// tools into normalized update records.
//
// Each parser handles one tool family's known output grammar. Tool output
// formats are not versioned contracts: unmatched lines are silently skipped
// and never treated as format errors, and a garbled blob degrades to zero
// records rather than failing the run.
package parse

import (
	"regexp"
	"strings"
)

// Record is one parsed "item changed" fact extracted from raw tool output.
//
// Records are immutable once created. Old and new versions are optional;
// parsers that only learn an item's name leave them empty.
//
// Fields:
//   - Name: The updated item's name
//   - OldVersion: Version before the update, empty when unknown
//   - NewVersion: Version after the update, empty when unknown
type Record struct {
	Name       string
	OldVersion string
	NewVersion string
}

var (
	// outdatedLineRe matches Homebrew formula lines of the shape
	// "<name> <old> -> <new>" with both versions digit-leading.
	outdatedLineRe = regexp.MustCompile(`^(\S+)\s+(\d\S*)\s*->\s*(\d\S*)\s*$`)

	// caskUpgradedRe matches Homebrew's cask success announcement. Only
	// successful upgrades produce records; failed-upgrade lines are dropped,
	// a known gap kept for parity with the upstream message grammar.
	caskUpgradedRe = regexp.MustCompile(`(\S+)\s+was successfully upgraded!\s*$`)

	// condaUpdateLineRe matches conda's per-package lines inside the
	// "will be UPDATED" section.
	condaUpdateLineRe = regexp.MustCompile(`^\s+(\S+)\s+(\S+)\s*-->\s*(\S+)\s*$`)

	// masInstalledRe matches mas's installation announcement lines.
	masInstalledRe = regexp.MustCompile(`^==>\s*Installed\s+(.+?)\s*$`)
)

// Outdated extracts formula update records from `brew outdated` output.
//
// Only lines of the shape "<name> <old> -> <new>" with both versions
// beginning with a digit produce records. Input line order is preserved and
// duplicates are not collapsed.
//
// Parameters:
//   - raw: Raw combined output of the outdated listing
//
// Returns:
//   - []Record: One record per matching line, in input order
func Outdated(raw string) []Record {
	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		m := outdatedLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		records = append(records, Record{Name: m[1], OldVersion: m[2], NewVersion: m[3]})
	}
	return records
}

// CaskUpgrades extracts successfully upgraded casks from `brew upgrade
// --cask` output.
//
// A record is produced for every "<name> was successfully upgraded!"
// announcement; the decorative prefix before the name is ignored. Versions
// are not part of the announcement, so records carry only the name.
//
// Parameters:
//   - raw: Raw combined output of the cask upgrade
//
// Returns:
//   - []Record: One record per successful upgrade announcement
func CaskUpgrades(raw string) []Record {
	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		m := caskUpgradedRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, Record{Name: m[1]})
	}
	return records
}

// CondaUpdates extracts package update records from `conda update` output.
//
// Conda announces pending changes in a bounded section: the header line
// containing "will be UPDATED" opens it and the next blank line closes it.
// Only lines inside that section are considered; a matching line after the
// closing blank line produces no record.
//
// Parameters:
//   - raw: Raw combined output of the conda update
//
// Returns:
//   - []Record: One record per package line inside the UPDATED section
func CondaUpdates(raw string) []Record {
	var records []Record
	inSection := false
	for _, line := range strings.Split(raw, "\n") {
		if !inSection {
			if strings.Contains(line, "will be UPDATED") {
				inSection = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		m := condaUpdateLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, Record{Name: m[1], OldVersion: m[2], NewVersion: m[3]})
	}
	return records
}

// MasInstalls extracts installed app records from `mas upgrade` output.
//
// An empty blob, or one containing the literal "Everything up-to-date"
// marker, short-circuits to zero records even if an "==> Installed" line
// appears elsewhere in the same blob. Otherwise every "==> Installed <name>"
// line produces a record with the name trimmed of decoration and trailing
// whitespace.
//
// Parameters:
//   - raw: Raw combined output of the mas upgrade
//
// Returns:
//   - []Record: One record per installed app, or nil when up to date
func MasInstalls(raw string) []Record {
	if strings.TrimSpace(raw) == "" || strings.Contains(raw, "Everything up-to-date") {
		return nil
	}

	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		m := masInstalledRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		records = append(records, Record{Name: m[1]})
	}
	return records
}
