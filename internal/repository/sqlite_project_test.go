package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_UpsertAndGetByPath(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("/work/alpha", testutil.WithProjectName("Alpha"))
	require.NoError(t, repo.Upsert(ctx, proj))

	fetched, err := repo.GetByPath(ctx, "/work/alpha")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Alpha", fetched.Name)
	assert.True(t, proj.RegisteredAt.Equal(fetched.RegisteredAt))
}

func TestProjectRepo_UpsertKeepsIdentity(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestProject("/work/alpha")
	require.NoError(t, repo.Upsert(ctx, first))

	later := testutil.Epoch.Add(48 * time.Hour)
	second := testutil.NewTestProject("/work/alpha",
		testutil.WithProjectName("Renamed"),
		testutil.WithLastSeen(later))
	second.RegisteredAt = later
	require.NoError(t, repo.Upsert(ctx, second))

	fetched, err := repo.GetByPath(ctx, "/work/alpha")
	require.NoError(t, err)
	assert.Equal(t, first.ID, fetched.ID)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.True(t, testutil.Epoch.Equal(fetched.RegisteredAt))
	assert.True(t, later.Equal(fetched.LastSeenAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProjectRepo_RejectsRelativePath(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	err := repo.Upsert(context.Background(), testutil.NewTestProject("relative/dir"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestProjectRepo_GetByPath_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	_, err := repo.GetByPath(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListOrderedByPath(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, dir := range []string{"/work/zeta", "/work/alpha", "/work/mid"} {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTestProject(dir)))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/work/alpha", all[0].Path)
	assert.Equal(t, "/work/mid", all[1].Path)
	assert.Equal(t, "/work/zeta", all[2].Path)
}

func TestProjectRepo_Delete(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("/work/alpha")
	require.NoError(t, repo.Upsert(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByPath(ctx, "/work/alpha")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrNotFound)
}
