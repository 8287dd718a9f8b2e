package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/changelog"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/storage"
)

// FormatHistory lists ledger entries grouped by version, unversioned last.
func FormatHistory(groups []storage.EntryGroup, unversioned []domain.HistoryEntry) string {
	if len(groups) == 0 && len(unversioned) == 0 {
		return Dim("History is empty.") + "\n"
	}
	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		b.WriteString(StyleHeader.Render("v"+g.Version.String()) + "\n")
		writeEntries(&b, g.Entries)
		b.WriteString("\n")
	}
	if len(unversioned) > 0 {
		b.WriteString(StyleHeader.Render("Unreleased") + "\n")
		writeEntries(&b, unversioned)
	}
	return b.String()
}

func writeEntries(b *strings.Builder, entries []domain.HistoryEntry) {
	for _, e := range entries {
		b.WriteString("  " + changelog.EntryLine(e.Change) + "\n")
	}
}

// FormatViolations renders schema check results.
func FormatViolations(path string, violations []storage.SchemaViolation) string {
	if len(violations) == 0 {
		return Success(fmt.Sprintf("%s is valid", path)) + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("%s has %d problem(s):", path, len(violations))) + "\n")
	for _, v := range violations {
		b.WriteString("  " + v.String() + "\n")
	}
	return b.String()
}

// FormatScanMatch describes one commit item matched to an open task.
func FormatScanMatch(m service.ScanMatch) string {
	return fmt.Sprintf("Match found (score: %d):\n  Task:   %s\n  Done:   %s\n  Commit: %s\n",
		m.Score, m.Task.Description, m.DoneItem, StyleYellow.Render(m.Commit))
}
