package todofile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoFile = "# TODO — demo v1.2.3\n\n@created: 2026-02-20\n@modified: 2026-02-21\n\n## Tasks\n\n- [ ] keep parser compatibility\n      @created 2026-02-20 10:00\n"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func minute(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func versionPtr(t *testing.T, s string) *domain.Version {
	t.Helper()
	v, err := domain.ParseVersion(s)
	require.NoError(t, err)
	return &v
}

func sampleList(t *testing.T) *domain.List {
	t.Helper()

	open1 := domain.NewTask("write parser", domain.PriorityHigh, []string{"parser", "core"}, minute(2026, 2, 20, 9, 0))
	open1.CreatedVersion = versionPtr(t, "1.2.0")
	open1.CreatedCommit = "0a1b2c3"

	open2 := domain.NewTask("tidy docs", domain.PriorityLow, nil, minute(2026, 2, 20, 9, 30))

	done1 := domain.NewTask("ship release", domain.PriorityMedium, []string{"release"}, minute(2026, 2, 19, 8, 0))
	done1.MarkComplete(minute(2026, 2, 21, 17, 5), versionPtr(t, "1.2.3"), "4f2a9c1e88")

	done2 := domain.NewTask("fix crash", domain.PriorityHigh, nil, minute(2026, 2, 19, 8, 15))
	done2.MarkComplete(minute(2026, 2, 22, 11, 0), nil, "")

	return &domain.List{
		ProjectName:    "demo",
		ProjectVersion: domain.NewVersion(1, 2, 3, false),
		CreatedAt:      day(2026, 2, 20),
		ModifiedAt:     day(2026, 2, 21),
		Tasks:          []domain.Task{open1, open2, done1, done2},
	}
}

func TestDeserialize_DemoScenario(t *testing.T) {
	l, err := Deserialize(demoFile)
	require.NoError(t, err)

	assert.Equal(t, "demo", l.ProjectName)
	assert.Equal(t, domain.NewVersion(1, 2, 3, false), l.ProjectVersion)
	assert.Equal(t, day(2026, 2, 20), l.CreatedAt)
	assert.Equal(t, day(2026, 2, 21), l.ModifiedAt)
	require.Len(t, l.Tasks, 1)

	task := l.Tasks[0]
	assert.Equal(t, "keep parser compatibility", task.Description)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, minute(2026, 2, 20, 10, 0), task.CreatedAt)
}

func TestDeserialize_MissingCreated(t *testing.T) {
	content := strings.Replace(demoFile, "@created: 2026-02-20\n", "", 1)

	_, err := Deserialize(content)
	require.Error(t, err)

	var perr *domain.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "Missing @created metadata")
}

func TestDeserialize_MissingModified(t *testing.T) {
	content := strings.Replace(demoFile, "@modified: 2026-02-21\n", "", 1)

	_, err := Deserialize(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing @modified metadata")
}

func TestRoundTrip(t *testing.T) {
	l := sampleList(t)

	got, err := Deserialize(Serialize(l))
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestRoundTrip_EmptyList(t *testing.T) {
	l := domain.NewList(domain.DefaultProjectName, domain.DefaultVersion, day(2026, 1, 1))

	got, err := Deserialize(Serialize(l))
	require.NoError(t, err)
	assert.Equal(t, l.ProjectName, got.ProjectName)
	assert.Equal(t, l.ProjectVersion, got.ProjectVersion)
	assert.Empty(t, got.Tasks)
}

func TestSerialize_CanonicalForm(t *testing.T) {
	want := `# TODO — demo v1.2.3

@created: 2026-02-20
@modified: 2026-02-21

## Tasks

- [ ] write parser (high) #parser #core
      @created 2026-02-20 09:00
      @created_version 1.2.0
      @created_commit 0a1b2c3

- [ ] tidy docs (low)
      @created 2026-02-20 09:30


## Completed

- [x] ship release #release
      @created 2026-02-19 08:00
      @completed 2026-02-21 17:05
      @completed_version 1.2.3
      @completed_commit 4f2a9c1e88

- [x] fix crash (high)
      @created 2026-02-19 08:15
      @completed 2026-02-22 11:00

`
	assert.Equal(t, want, Serialize(sampleList(t)))
}

func TestSerialize_OmitsEmptyCompletedSection(t *testing.T) {
	l := sampleList(t)
	l.Tasks = l.Tasks[:2]

	assert.NotContains(t, Serialize(l), "## Completed")
}

func TestSerialize_SortsBySectionTime(t *testing.T) {
	late := domain.NewTask("late", domain.PriorityMedium, nil, minute(2026, 3, 2, 0, 0))
	early := domain.NewTask("early", domain.PriorityMedium, nil, minute(2026, 3, 1, 0, 0))

	doneLate := domain.NewTask("done late", domain.PriorityMedium, nil, minute(2026, 1, 1, 0, 0))
	doneLate.MarkComplete(minute(2026, 3, 5, 0, 0), nil, "")
	doneEarly := domain.NewTask("done early", domain.PriorityMedium, nil, minute(2026, 1, 2, 0, 0))
	doneEarly.MarkComplete(minute(2026, 3, 4, 0, 0), nil, "")

	l := domain.NewList("demo", domain.DefaultVersion, day(2026, 3, 1))
	l.Tasks = []domain.Task{late, doneLate, early, doneEarly}

	got, err := Deserialize(Serialize(l))
	require.NoError(t, err)

	var order []string
	for _, task := range got.Tasks {
		order = append(order, task.Description)
	}
	assert.Equal(t, []string{"early", "late", "done early", "done late"}, order)
}

func TestSerialize_EqualTimestampsKeepListOrder(t *testing.T) {
	at := minute(2026, 3, 1, 12, 0)
	l := domain.NewList("demo", domain.DefaultVersion, day(2026, 3, 1))
	for _, d := range []string{"c", "a", "b"} {
		l.Tasks = append(l.Tasks, domain.NewTask(d, domain.PriorityMedium, nil, at))
	}

	got, err := Deserialize(Serialize(l))
	require.NoError(t, err)
	require.Len(t, got.Tasks, 3)
	assert.Equal(t, "c", got.Tasks[0].Description)
	assert.Equal(t, "a", got.Tasks[1].Description)
	assert.Equal(t, "b", got.Tasks[2].Description)
}

func TestDeserialize_Lenient(t *testing.T) {
	content := "# TODO - my  project v2\n\n@modified: 2026-02-21\n\n\n@created: 2026-02-20\n\n## Tasks\n\n" +
		"- [ ]   spaced    words  (medium) #a #a\n" +
		"      @created 2026-02-20 10:00\n" +
		"- [X] shouted done (low)\n" +
		"      @created 2026-02-20 11:00\n" +
		"      @completed 2026-02-20 12:00\n"

	l, err := Deserialize(content)
	require.NoError(t, err)

	assert.Equal(t, "my  project", l.ProjectName)
	assert.Equal(t, domain.NewVersion(2, 0, 0, false), l.ProjectVersion)
	require.Len(t, l.Tasks, 2)

	assert.Equal(t, "spaced words", l.Tasks[0].Description)
	assert.Equal(t, domain.PriorityMedium, l.Tasks[0].Priority)
	assert.Equal(t, []string{"a"}, l.Tasks[0].Tags)

	assert.True(t, l.Tasks[1].Completed)
	assert.Equal(t, domain.PriorityLow, l.Tasks[1].Priority)
	require.NotNil(t, l.Tasks[1].CompletedAt)
	assert.Equal(t, minute(2026, 2, 20, 12, 0), *l.Tasks[1].CompletedAt)
}

func TestDeserialize_HandTickedTaskGetsCompletionTime(t *testing.T) {
	content := strings.Replace(demoFile, "- [ ]", "- [x]", 1)

	l, err := Deserialize(content)
	require.NoError(t, err)
	require.Len(t, l.Tasks, 1)
	assert.True(t, l.Tasks[0].Completed)
	require.NotNil(t, l.Tasks[0].CompletedAt)
	assert.Equal(t, l.Tasks[0].CreatedAt, *l.Tasks[0].CompletedAt)
}

func TestDeserialize_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"empty", "", "Empty TODO file"},
		{"bad header", "# Notes v1.0.0\n@created: 2026-02-20\n@modified: 2026-02-20\n", "Invalid header format"},
		{"no version", "# TODO — demo\n@created: 2026-02-20\n@modified: 2026-02-20\n", "No version found"},
		{"bad version", "# TODO — demo vX\n@created: 2026-02-20\n@modified: 2026-02-20\n", "Failed to parse version in header"},
		{"bad date", "# TODO — demo v1\n@created: 20-02-2026\n@modified: 2026-02-20\n", "Failed to parse date"},
		{
			"task without created",
			"# TODO — demo v1\n@created: 2026-02-20\n@modified: 2026-02-20\n\n## Tasks\n\n- [ ] orphan\n",
			"Task missing @created timestamp",
		},
		{
			"bad datetime",
			"# TODO — demo v1\n@created: 2026-02-20\n@modified: 2026-02-20\n\n## Tasks\n\n- [ ] t\n      @created yesterday\n",
			"Failed to parse datetime",
		},
		{
			"only tags",
			"# TODO — demo v1\n@created: 2026-02-20\n@modified: 2026-02-20\n\n## Tasks\n\n- [ ] #tag (high)\n      @created 2026-02-20 10:00\n",
			"Task has no description",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize(tc.content)
			require.Error(t, err)

			var perr *domain.ParseError
			assert.True(t, errors.As(err, &perr))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestTaskLine(t *testing.T) {
	task := domain.NewTask("do it", domain.PriorityHigh, []string{"x"}, minute(2026, 1, 1, 0, 0))
	assert.Equal(t, "- [ ] do it (high) #x", TaskLine(&task))

	task.MarkComplete(minute(2026, 1, 2, 0, 0), nil, "")
	task.Priority = domain.PriorityMedium
	assert.Equal(t, "- [x] do it #x", TaskLine(&task))
}
