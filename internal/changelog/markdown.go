package changelog

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

const dateLayout = "2006-01-02"

var sectionTitles = map[domain.Priority]string{
	domain.PriorityHigh:   "High Priority",
	domain.PriorityMedium: "Changes",
	domain.PriorityLow:    "Minor Changes",
}

// Markdown renders l as release notes. Within a release, sections run from
// high to low priority and empty sections are left out.
func Markdown(l *Log) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Changelog — %s\n\n", l.ProjectName)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", l.GeneratedAt.UTC().Format(dateLayout))

	for _, r := range l.Releases {
		writeRelease(&b, r)
		b.WriteString("\n")
	}
	return b.String()
}

func writeRelease(b *strings.Builder, r Release) {
	fmt.Fprintf(b, "## %s — %s\n\n", r.Version, r.Date.UTC().Format(dateLayout))

	for _, p := range domain.Priorities {
		changes := r.ChangesByPriority[p]
		if len(changes) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", sectionTitles[p])
		for _, c := range changes {
			b.WriteString(EntryLine(c))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// EntryLine renders one change as a bullet.
func EntryLine(c domain.Change) string {
	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(c.Description)
	if len(c.Tags) > 0 {
		b.WriteString(" `")
		b.WriteString(strings.Join(c.Tags, "`, `"))
		b.WriteString("`")
	}
	if c.Commit != "" {
		fmt.Fprintf(&b, " ([`%s`])", c.ShortCommit())
	}
	return b.String()
}
