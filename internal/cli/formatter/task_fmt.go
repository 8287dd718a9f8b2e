package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// IndexedTask is a task with its 0-based position in TODO.md.
type IndexedTask struct {
	Index int
	Task  domain.Task
}

// TaskLine renders "[x] description (high) #tag" without numbering.
func TaskLine(t domain.Task) string {
	box := "[ ]"
	desc := StyleFg.Render(t.Description)
	if t.Completed {
		box = StyleGreen.Render("[x]")
		desc = StyleDim.Render(t.Description)
	}
	parts := []string{box, desc}
	if label := PriorityLabel(t.Priority); label != "" {
		parts = append(parts, label)
	}
	if tags := Tags(t.Tags); tags != "" {
		parts = append(parts, tags)
	}
	return strings.Join(parts, " ")
}

// TaskList numbers tasks from 1 by file position. Completed tasks show
// their commit and version beneath.
func TaskList(tasks []IndexedTask) string {
	if len(tasks) == 0 {
		return Dim("No tasks found.") + "\n"
	}
	var b strings.Builder
	for _, it := range tasks {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%d.", it.Index+1)), TaskLine(it.Task))
		if !it.Task.Completed {
			continue
		}
		if it.Task.CompletedCommit != "" {
			b.WriteString(Dim("      @commit "+it.Task.CompletedCommit) + "\n")
		}
		if it.Task.CompletedVersion != nil {
			b.WriteString(Dim("      @version "+it.Task.CompletedVersion.String()) + "\n")
		}
	}
	return b.String()
}

// TaskPreview is the indented task plus the metadata a completion would
// write.
func TaskPreview(t domain.Task) string {
	var b strings.Builder
	b.WriteString("  " + TaskLine(t) + "\n")
	if t.CompletedCommit != "" {
		b.WriteString(Dim("      @completed_commit "+t.CompletedCommit) + "\n")
	}
	if t.CompletedVersion != nil {
		b.WriteString(Dim("      @completed_version "+t.CompletedVersion.String()) + "\n")
	}
	return b.String()
}
