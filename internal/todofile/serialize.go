package todofile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04"

	metaIndent = "      "

	sectionTasks     = "## Tasks"
	sectionCompleted = "## Completed"
)

// Serialize renders l in canonical TODO.md form.
func Serialize(l *domain.List) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# TODO — %s v%s\n\n", l.ProjectName, l.ProjectVersion)
	fmt.Fprintf(&b, "@created: %s\n", formatDate(l.CreatedAt))
	fmt.Fprintf(&b, "@modified: %s\n", formatDate(l.ModifiedAt))

	var open, done []domain.Task
	for _, t := range l.Tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].SortTime().Before(done[j].SortTime())
	})

	fmt.Fprintf(&b, "\n%s\n\n", sectionTasks)
	for i := range open {
		writeTask(&b, &open[i])
		b.WriteString("\n")
	}

	if len(done) > 0 {
		fmt.Fprintf(&b, "\n%s\n\n", sectionCompleted)
		for i := range done {
			writeTask(&b, &done[i])
			b.WriteString("\n")
		}
	}

	return b.String()
}

// TaskLine renders the checkbox line of t without metadata.
func TaskLine(t *domain.Task) string {
	checkbox := " "
	if t.Completed {
		checkbox = "x"
	}
	return fmt.Sprintf("- [%s] %s%s%s", checkbox, t.Description, prioritySuffix(t.Priority), tagSuffix(t.Tags))
}

func writeTask(b *strings.Builder, t *domain.Task) {
	b.WriteString(TaskLine(t))
	b.WriteString("\n")

	writeMeta(b, "@created", formatDatetime(t.CreatedAt))
	if t.CreatedVersion != nil {
		writeMeta(b, "@created_version", t.CreatedVersion.String())
	}
	if t.CreatedCommit != "" {
		writeMeta(b, "@created_commit", t.CreatedCommit)
	}

	if !t.Completed {
		return
	}
	if t.CompletedAt != nil {
		writeMeta(b, "@completed", formatDatetime(*t.CompletedAt))
	}
	if t.CompletedVersion != nil {
		writeMeta(b, "@completed_version", t.CompletedVersion.String())
	}
	if t.CompletedCommit != "" {
		writeMeta(b, "@completed_commit", t.CompletedCommit)
	}
}

func writeMeta(b *strings.Builder, key, value string) {
	b.WriteString(metaIndent)
	b.WriteString(key)
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func prioritySuffix(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return " (high)"
	case domain.PriorityLow:
		return " (low)"
	default:
		return ""
	}
}

func tagSuffix(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return " " + strings.Join(parts, " ")
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatDatetime(t time.Time) string {
	return t.UTC().Format(datetimeLayout)
}
