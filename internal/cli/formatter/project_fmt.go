package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
)

// FormatProjectList renders the registry as a table.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No tally projects registered. Run `tally init` in a project first.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for i, p := range projects {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			Bold(p.DisplayName()),
			p.Path,
			Dim(RelativeDateFrom(p.LastSeenAt, now)),
		})
	}
	return RenderTable([]string{"#", "NAME", "PATH", "SEEN"}, rows)
}

// FormatRegistryStatus renders per-project counts and a combined total.
func FormatRegistryStatus(st *service.RegistryStatus) string {
	if len(st.Projects) == 0 {
		return Dim("No tally projects registered. Run `tally init` in a project first.") + "\n"
	}
	var b strings.Builder
	for _, ps := range st.Projects {
		if ps.Err != nil {
			fmt.Fprintf(&b, "- %s: %s\n", ps.Project.Path, StyleRed.Render(fmt.Sprintf("skipped (%v)", ps.Err)))
			continue
		}
		fmt.Fprintf(&b, "- %s (%s v%s): %d total, %d open, %d done\n",
			ps.Project.Path, Bold(ps.Name), ps.Version, ps.Total, ps.Open, ps.Done)
	}
	b.WriteString("\n")
	if st.Total == 0 {
		fmt.Fprintf(&b, "Across %d project(s): no tasks found\n", st.Loaded)
		return b.String()
	}
	fmt.Fprintf(&b, "Across %d project(s): %d total, %d open, %d done (%.0f%% complete)\n",
		st.Loaded, st.Total, st.Open, st.Done, st.CompletionRate())
	return b.String()
}
