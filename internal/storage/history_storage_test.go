package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHistory(t *testing.T) (*HistoryStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".tally", "history.json")
	h, err := OpenHistoryStorage(path, WithClock(fixedClock))
	require.NoError(t, err)
	return h, path
}

func doneTask(desc, commit string, v *domain.Version) domain.Task {
	t := domain.NewTask(desc, domain.PriorityMedium, []string{"core"}, fixedNow)
	t.MarkComplete(fixedNow.Add(time.Hour), v, commit)
	return t
}

func vptr(major, minor, patch uint32) *domain.Version {
	v := domain.NewVersion(major, minor, patch, false)
	return &v
}

func TestHistory_MissingAndCorruptFilesAreEmpty(t *testing.T) {
	h, path := openHistory(t)
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Discarded())

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	h, err := OpenHistoryStorage(path)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	assert.True(t, h.Discarded())
}

func TestHistory_RecordIgnoresOpenTasks(t *testing.T) {
	h, path := openHistory(t)

	added, err := h.Record(domain.NewTask("open", domain.PriorityMedium, nil, fixedNow))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, h.Len())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHistory_SameCommitRecordedOnce(t *testing.T) {
	h, path := openHistory(t)
	task := doneTask("fix parser", "abc1234", nil)

	added, err := h.Record(task)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = h.Record(task)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, h.Len())

	reopened, err := OpenHistoryStorage(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
}

func TestHistory_HasSnapshotKeepsSharedCommitsApart(t *testing.T) {
	h, _ := openHistory(t)
	_, err := h.Record(doneTask("write parser", "c1c1c1c1", nil))
	require.NoError(t, err)

	second := domain.NewHistoryEntry(doneTask("update docs", "c1c1c1c1", nil), fixedNow)
	assert.True(t, h.Contains(second))
	assert.False(t, h.HasSnapshot(second))
	assert.True(t, h.HasSnapshot(domain.NewHistoryEntry(doneTask("write parser", "c1c1c1c1", vptr(1, 0, 0)), fixedNow)))
}

func TestHistory_SameDescriptionDifferentVersions(t *testing.T) {
	h, _ := openHistory(t)

	_, err := h.Record(doneTask("bump deps", "", vptr(0, 1, 0)))
	require.NoError(t, err)
	_, err = h.Record(doneTask("bump deps", "", vptr(0, 2, 0)))
	require.NoError(t, err)

	assert.Equal(t, 2, h.Len())
}

func TestHistory_RecordAllDedupesWithinBatch(t *testing.T) {
	h, _ := openHistory(t)
	_, err := h.Record(doneTask("already there", "", nil))
	require.NoError(t, err)

	added, err := h.RecordAll([]domain.Task{
		doneTask("already there", "", nil),
		doneTask("new one", "", nil),
		doneTask("new one", "", nil),
		domain.NewTask("still open", domain.PriorityLow, nil, fixedNow),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, h.Len())
}

func TestHistory_AssignVersionIsMonotonic(t *testing.T) {
	h, path := openHistory(t)
	_, err := h.RecordAll([]domain.Task{
		doneTask("old", "", vptr(0, 1, 0)),
		doneTask("new", "", nil),
	})
	require.NoError(t, err)

	n, err := h.AssignVersion(domain.NewVersion(0, 2, 0, false))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = h.AssignVersion(domain.NewVersion(0, 3, 0, false))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	reopened, err := OpenHistoryStorage(path)
	require.NoError(t, err)
	assert.Len(t, reopened.EntriesForVersion(domain.NewVersion(0, 1, 0, false)), 1)
	assert.Len(t, reopened.EntriesForVersion(domain.NewVersion(0, 2, 0, false)), 1)
	assert.Empty(t, reopened.EntriesForVersion(domain.NewVersion(0, 3, 0, false)))
	assert.Empty(t, reopened.UnversionedEntries())
}

func TestHistory_Queries(t *testing.T) {
	h, _ := openHistory(t)
	_, err := h.RecordAll([]domain.Task{
		doneTask("c", "", vptr(0, 3, 0)),
		doneTask("a", "", vptr(0, 1, 0)),
		doneTask("b", "", vptr(0, 2, 0)),
		doneTask("a2", "", vptr(0, 1, 0)),
		doneTask("u", "", nil),
	})
	require.NoError(t, err)

	groups := h.EntriesByVersion()
	require.Len(t, groups, 3)
	assert.Equal(t, "0.1.0", groups[0].Version.String())
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "0.3.0", groups[2].Version.String())

	between := h.EntriesBetweenVersions(domain.NewVersion(0, 1, 0, false), domain.NewVersion(0, 2, 0, false))
	assert.Len(t, between, 3)
	assert.Len(t, h.UnversionedEntries(), 1)
}

func TestHistory_FileFormat(t *testing.T) {
	h, path := openHistory(t)
	_, err := h.Record(doneTask("fix", "", vptr(1, 0, 0)))
	require.NoError(t, err)
	_, err = h.Record(doneTask("pending", "", nil))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"change\": {")
	assert.Contains(t, string(data), `"version": null`)
	assert.Contains(t, string(data), `"commit": null`)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.JSONEq(t, `{"major":1,"minor":0,"patch":0,"is_prerelease":false}`, string(raw[0]["version"]))
}
