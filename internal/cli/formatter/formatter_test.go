package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/storage"
	"github.com/alexanderramin/tally/internal/testutil"
)

func TestRelativeDateFrom(t *testing.T) {
	now := testutil.Epoch
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "Today"},
		{24 * time.Hour, "Tomorrow"},
		{-24 * time.Hour, "Yesterday"},
		{3 * 24 * time.Hour, "In 3d"},
		{-5 * 24 * time.Hour, "5d ago"},
		{-21 * 24 * time.Hour, "3w ago"},
		{-90 * 24 * time.Hour, "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(now.Add(tt.offset), now))
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "30 day(s)", Duration(30*24*time.Hour))
	assert.Equal(t, "5 hour(s)", Duration(5*time.Hour))
	assert.Equal(t, "1 day(s) 6 hour(s)", Duration(30*time.Hour))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 task", Plural(1, "task"))
	assert.Equal(t, "0 tasks", Plural(0, "task"))
	assert.Equal(t, "3 tasks", Plural(3, "task"))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", StripANSI(RenderProgress(1, 2, 10)))
	assert.Equal(t, "[░░░░░░░░░░]   0%", StripANSI(RenderProgress(0, 0, 10)))
	assert.Equal(t, "[██████████] 100%", StripANSI(RenderProgress(5, 3, 10)))
}

func TestTaskLine(t *testing.T) {
	open := testutil.NewTestTask("Write parser", testutil.WithPriority(domain.PriorityHigh), testutil.WithTags("core"))
	assert.Equal(t, "[ ] Write parser (high) #core", StripANSI(TaskLine(open)))

	done := testutil.NewTestTask("Write docs", testutil.WithCompleted(testutil.Epoch, "", ""))
	assert.Equal(t, "[x] Write docs", StripANSI(TaskLine(done)))
}

func TestTaskList(t *testing.T) {
	done := testutil.NewTestTask("Fix crash", testutil.WithCompleted(testutil.Epoch, "1.0.0", "abc1234"))
	out := StripANSI(TaskList([]IndexedTask{
		{Index: 0, Task: testutil.NewTestTask("Write parser")},
		{Index: 2, Task: done},
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"1. [ ] Write parser",
		"3. [x] Fix crash",
		"      @commit abc1234",
		"      @version 1.0.0",
	}, lines)

	assert.Equal(t, "No tasks found.\n", StripANSI(TaskList(nil)))
}

func TestFormatStatus(t *testing.T) {
	out := StripANSI(FormatStatus(&service.StatusSummary{
		ProjectName:    "tally",
		ProjectVersion: domain.NewVersion(1, 2, 0, false),
		Total:          4,
		Open:           3,
		Done:           1,
		CompletionRate: 25,
		OpenByPriority: map[domain.Priority]int{domain.PriorityHigh: 2, domain.PriorityLow: 1},
		Tags:           []service.TagCount{{Tag: "bug", Open: 2, Done: 1}, {Tag: "docs", Done: 1}},
		HistoryEntries: 7,
		Unversioned:    1,
	}))

	assert.Contains(t, out, "tally v1.2.0")
	assert.Contains(t, out, "4 tasks")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "1 done without a version")
	assert.Contains(t, out, "High:   2")
	assert.Contains(t, out, "Low:    1")
	assert.NotContains(t, out, "Medium:")
	assert.Contains(t, out, "#bug: 2 open, 1 done (3 total)")
	assert.Contains(t, out, "#docs: 1 done")
	assert.Contains(t, out, "7 recorded in history")
}

func TestFormatStatus_TagOverflow(t *testing.T) {
	s := &service.StatusSummary{ProjectName: "p"}
	for i := 0; i < 12; i++ {
		s.Tags = append(s.Tags, service.TagCount{Tag: string(rune('a' + i)), Done: 1})
	}
	assert.Contains(t, StripANSI(FormatStatus(s)), "... and 2 more")
}

func TestRenderTable(t *testing.T) {
	out := StripANSI(RenderTable([]string{"KEY", "VALUE"}, [][]string{
		{"git.done_prefix", "done:"},
		{"preferences.editor", "vim"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "KEY")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "git.done_prefix")
	assert.Equal(t, strings.Index(lines[0], "VALUE"), strings.Index(lines[2], "done:"))

	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatProjectList(t *testing.T) {
	p := testutil.NewTestProject("/work/tally", testutil.WithProjectName("tally"), testutil.WithLastSeen(testutil.Epoch.Add(-48*time.Hour)))
	out := StripANSI(FormatProjectList([]*domain.Project{p}, testutil.Epoch))
	assert.Contains(t, out, "tally")
	assert.Contains(t, out, "/work/tally")
	assert.Contains(t, out, "2d ago")

	assert.Contains(t, StripANSI(FormatProjectList(nil, testutil.Epoch)), "No tally projects registered")
}

func TestFormatRegistryStatus(t *testing.T) {
	ok := testutil.NewTestProject("/work/a")
	broken := testutil.NewTestProject("/work/b")
	out := StripANSI(FormatRegistryStatus(&service.RegistryStatus{
		Projects: []service.ProjectStatus{
			{Project: ok, Name: "a", Version: domain.DefaultVersion, Total: 4, Open: 1, Done: 3},
			{Project: broken, Err: assert.AnError},
		},
		Loaded: 1, Total: 4, Open: 1, Done: 3,
	}))
	assert.Contains(t, out, "- /work/a (a v0.1.0): 4 total, 1 open, 3 done")
	assert.Contains(t, out, "- /work/b: skipped")
	assert.Contains(t, out, "Across 1 project(s): 4 total, 1 open, 3 done (75% complete)")
}

func TestFormatHistory(t *testing.T) {
	released := domain.NewHistoryEntry(testutil.NewTestTask("Fix crash", testutil.WithCompleted(testutil.Epoch, "1.0.0", "abc1234def")), testutil.Epoch)
	pending := domain.NewHistoryEntry(testutil.NewTestTask("Write docs", testutil.WithCompleted(testutil.Epoch, "", "")), testutil.Epoch)

	out := StripANSI(FormatHistory(
		[]storage.EntryGroup{{Version: domain.NewVersion(1, 0, 0, false), Entries: []domain.HistoryEntry{released}}},
		[]domain.HistoryEntry{pending},
	))
	assert.Contains(t, out, "v1.0.0\n  - Fix crash")
	assert.Contains(t, out, "Unreleased\n  - Write docs")
	assert.Less(t, strings.Index(out, "v1.0.0"), strings.Index(out, "Unreleased"))

	assert.Equal(t, "History is empty.\n", StripANSI(FormatHistory(nil, nil)))
}

func TestFormatViolations(t *testing.T) {
	assert.Equal(t, "✓ h.json is valid\n", StripANSI(FormatViolations("h.json", nil)))

	out := StripANSI(FormatViolations("h.json", []storage.SchemaViolation{{Path: "[0].change", Message: "missing description"}}))
	assert.Contains(t, out, "h.json has 1 problem(s):")
	assert.Contains(t, out, "  [0].change: missing description")
}
