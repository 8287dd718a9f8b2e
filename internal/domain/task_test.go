package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

func TestNewTask_DedupesTags(t *testing.T) {
	task := NewTask("fix parser", PriorityHigh, []string{"bug", "parser", "bug", ""}, baseTime)

	assert.Equal(t, []string{"bug", "parser"}, task.Tags)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, baseTime, task.CreatedAt)
}

func TestNewTask_DefaultPriority(t *testing.T) {
	task := NewTask("write docs", "", nil, baseTime)
	assert.Equal(t, PriorityMedium, task.Priority)
}

func TestMarkComplete_SetsCompletionInvariant(t *testing.T) {
	task := NewTask("ship it", PriorityMedium, nil, baseTime)
	v := NewVersion(0, 2, 0, false)

	task.MarkComplete(baseTime.Add(time.Hour), &v, "abc1234def")

	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, baseTime.Add(time.Hour), *task.CompletedAt)
	require.NotNil(t, task.CompletedVersion)
	assert.Equal(t, v, *task.CompletedVersion)
	assert.Equal(t, "abc1234def", task.CompletedCommit)

	// The stored version is a copy.
	v.Major = 9
	assert.Equal(t, uint32(0), task.CompletedVersion.Major)
}

func TestMarkComplete_KeepsExistingCommit(t *testing.T) {
	task := NewTask("ship it", PriorityMedium, nil, baseTime)
	task.CompletedCommit = "deadbeef"

	task.MarkComplete(baseTime, nil, "")

	assert.Equal(t, "deadbeef", task.CompletedCommit)
	assert.Nil(t, task.CompletedVersion)
}

func TestTaskTags(t *testing.T) {
	task := NewTask("t", PriorityLow, []string{"a", "b"}, baseTime)

	assert.False(t, task.AddTag("a"))
	assert.True(t, task.AddTag("c"))
	assert.Equal(t, []string{"a", "b", "c"}, task.Tags)

	assert.True(t, task.HasAnyTag([]string{"x", "b"}))
	assert.False(t, task.HasAnyTag([]string{"x", "y"}))
	assert.True(t, task.HasAllTags([]string{"a", "c"}))
	assert.False(t, task.HasAllTags([]string{"a", "x"}))
}

func TestCompletedBefore(t *testing.T) {
	task := NewTask("t", PriorityLow, nil, baseTime)
	assert.False(t, task.CompletedBefore(baseTime.Add(time.Hour)))

	task.MarkComplete(baseTime, nil, "")
	assert.True(t, task.CompletedBefore(baseTime.Add(time.Minute)))
	assert.False(t, task.CompletedBefore(baseTime))
}

func TestList_AssignVersionToCompleted(t *testing.T) {
	l := NewList("demo", DefaultVersion, baseTime)
	open := NewTask("open", PriorityMedium, nil, baseTime)
	done := NewTask("done", PriorityMedium, nil, baseTime)
	done.MarkComplete(baseTime, nil, "")
	old := NewTask("old", PriorityMedium, nil, baseTime)
	v1 := NewVersion(0, 1, 0, false)
	old.MarkComplete(baseTime, &v1, "")
	l.Tasks = []Task{open, done, old}

	later := baseTime.Add(24 * time.Hour)
	v2 := NewVersion(0, 2, 0, false)
	assert.Equal(t, 1, l.AssignVersionToCompleted(v2, later))
	assert.Equal(t, later, l.ModifiedAt)
	assert.Nil(t, l.Tasks[0].CompletedVersion)
	assert.Equal(t, v2, *l.Tasks[1].CompletedVersion)
	assert.Equal(t, v1, *l.Tasks[2].CompletedVersion)

	// Second call finds nothing and leaves ModifiedAt alone.
	assert.Equal(t, 0, l.AssignVersionToCompleted(NewVersion(0, 3, 0, false), later.Add(time.Hour)))
	assert.Equal(t, later, l.ModifiedAt)
}

func TestList_VersionQueries(t *testing.T) {
	l := NewList("demo", DefaultVersion, baseTime)
	for i, vs := range []string{"0.1.0", "0.3.0", "0.2.0", "0.1.0"} {
		v, err := ParseVersion(vs)
		require.NoError(t, err)
		task := NewTask(vs, PriorityMedium, nil, baseTime.Add(time.Duration(i)*time.Minute))
		task.MarkComplete(baseTime, &v, "")
		l.Tasks = append(l.Tasks, task)
	}
	unversioned := NewTask("pending", PriorityMedium, nil, baseTime)
	unversioned.MarkComplete(baseTime, nil, "")
	l.Tasks = append(l.Tasks, unversioned)

	groups := l.TasksByVersion()
	require.Len(t, groups, 3)
	assert.Equal(t, "0.1.0", groups[0].Version.String())
	assert.Len(t, groups[0].Tasks, 2)
	assert.Equal(t, "0.2.0", groups[1].Version.String())
	assert.Equal(t, "0.3.0", groups[2].Version.String())

	assert.Len(t, l.TasksForVersion(NewVersion(0, 1, 0, false)), 2)
	assert.Len(t, l.TasksBetweenVersions(NewVersion(0, 2, 0, false), NewVersion(0, 3, 0, false)), 2)
	assert.Len(t, l.UnversionedCompletedTasks(), 1)
	assert.Equal(t, 0, l.OpenCount())
}
