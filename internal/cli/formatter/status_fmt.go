package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
)

const (
	statusProgressBarWidth = 20
	statusMaxTags          = 10
)

// FormatStatus renders a project summary: totals, open tasks by priority
// and the busiest tags.
func FormatStatus(s *service.StatusSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", Bold(s.ProjectName), StyleBlue.Render("v"+s.ProjectVersion.String()))

	fmt.Fprintf(&b, "%s  %s\n", Plural(s.Total, "task"), RenderProgress(s.Done, s.Total, statusProgressBarWidth))
	fmt.Fprintf(&b, "  Open: %d\n", s.Open)
	fmt.Fprintf(&b, "  Done: %d\n", s.Done)
	if s.Unversioned > 0 {
		fmt.Fprintf(&b, "  %s\n", Dim(fmt.Sprintf("%d done without a version", s.Unversioned)))
	}

	if s.Open > 0 {
		b.WriteString("\n" + Header("Open tasks") + "\n")
		for _, p := range domain.Priorities {
			if n := s.OpenByPriority[p]; n > 0 {
				label := strings.ToUpper(p.String()[:1]) + p.String()[1:] + ":"
				fmt.Fprintf(&b, "  %-8s%s\n", label, PriorityStyle(p).Render(fmt.Sprint(n)))
			}
		}
	}

	if len(s.Tags) > 0 {
		b.WriteString("\n" + Header("Tags") + "\n")
		shown := s.Tags
		if len(shown) > statusMaxTags {
			shown = shown[:statusMaxTags]
		}
		for _, tc := range shown {
			tag := StylePurple.Render("#" + tc.Tag)
			if tc.Open > 0 {
				fmt.Fprintf(&b, "  %s: %d open, %d done (%d total)\n", tag, tc.Open, tc.Done, tc.Total())
			} else {
				fmt.Fprintf(&b, "  %s: %d done\n", tag, tc.Done)
			}
		}
		if extra := len(s.Tags) - len(shown); extra > 0 {
			b.WriteString(Dim(fmt.Sprintf("  ... and %d more", extra)) + "\n")
		}
	}

	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d recorded in history", s.HistoryEntries)))
	return b.String()
}
