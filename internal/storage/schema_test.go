package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHistoryFile_ValidLedger(t *testing.T) {
	h, path := openHistory(t)
	_, err := h.RecordAll([]domain.Task{
		doneTask("versioned", "abc1234", vptr(1, 0, 0)),
		doneTask("pending", "", nil),
	})
	require.NoError(t, err)

	violations, err := CheckHistoryFile(path)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckHistoryFile_Missing(t *testing.T) {
	violations, err := CheckHistoryFile(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckHistoryJSON_ReportsPaths(t *testing.T) {
	raw := `[
  {"change": {"description": "ok", "priority": "urgent", "tags": [], "commit": null, "completed_at": "2026-02-20T10:00:00Z"}, "version": null}
]`
	violations, err := CheckHistoryJSON([]byte(raw))
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Equal(t, "[0].change.priority", violations[0].Path)
}

func TestCheckHistoryJSON_NotJSON(t *testing.T) {
	violations, err := CheckHistoryJSON([]byte("{oops"))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].String(), "invalid JSON")
}

func TestCheckHistoryFile_UnreadableIsIOError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "history.json"), 0755))

	_, err := CheckHistoryFile(filepath.Join(dir, "history.json"))
	assert.Error(t, err)
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "[3].version.major", pointerToPath("/3/version/major"))
	assert.Equal(t, "[0]", pointerToPath("#/0"))
}
