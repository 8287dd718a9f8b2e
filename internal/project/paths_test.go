package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndDiscover(t *testing.T) {
	root := t.TempDir()

	p, err := Init(root)
	require.NoError(t, err)
	assert.DirExists(t, p.TallyDir)
	assert.Equal(t, filepath.Join(root, "TODO.md"), p.TodoFile)
	assert.Equal(t, filepath.Join(root, ".tally", "history.json"), p.HistoryFile)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, p, found)
}

func TestInit_Twice(t *testing.T) {
	root := t.TempDir()
	_, err := Init(root)
	require.NoError(t, err)

	_, err = Init(root)
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))
}

func TestFindRoot_NotInitialized(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestFindRoot_IgnoresPlainFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DirName), []byte(""), 0644))

	_, err := FindRoot(root)
	assert.True(t, errors.Is(err, ErrNotInitialized))
}
