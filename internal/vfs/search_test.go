package vfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRecursive(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "report.txt", "x")
	writeFile(t, sb, "docs/report-2024.txt", "x")
	writeFile(t, sb, "docs/deep/old-report.md", "x")
	writeFile(t, sb, "unrelated.txt", "x")

	res, err := sb.Search(context.Background(), "", "report", "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "report", res.Query)
}

func TestSearchNotFoundStart(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.Search(context.Background(), "missing", "x", "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestSearchExactMatchRanksFirst(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "a/zz-notes.txt", "x")
	writeFile(t, sb, "b/notes.txt", "x")
	writeFile(t, sb, "c/also-notes.txt", "x")

	res, err := sb.Search(context.Background(), "", "notes.txt", "")
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	// Exact name match leads, partial matches follow alphabetically.
	assert.Equal(t, []string{"notes.txt", "also-notes.txt", "zz-notes.txt"}, names(res.Entries))
}

func TestSearchExactMatchIsCaseInsensitive(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "a/NOTES.TXT", "x")
	writeFile(t, sb, "b/more-notes.txt", "x")

	res, err := sb.Search(context.Background(), "", "notes.txt", "")
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "NOTES.TXT", res.Entries[0].Name)
}

func TestSearchTypeFilterFolder(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "projects.txt", "x")
	require.NoError(t, os.MkdirAll(filepath.Join(sb.Root(), "work", "projects"), 0o755))

	res, err := sb.Search(context.Background(), "", "projects", KindFolder)
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "projects", res.Entries[0].Name)
	assert.Equal(t, KindFolder, res.Entries[0].Kind)
}

func TestSearchTypeFilterKind(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "holiday.png", "x")
	writeFile(t, sb, "holiday.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(sb.Root(), "holiday"), 0o755))

	res, err := sb.Search(context.Background(), "", "holiday", KindImage)
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "holiday.png", res.Entries[0].Name)
}

func TestSearchSkipsHiddenSubtrees(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, ".cache/match.txt", "x")
	writeFile(t, sb, "visible/match.txt", "x")

	res, err := sb.Search(context.Background(), "", "match", "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "visible/match.txt", res.Entries[0].Path)
}

func TestSearchScopedToSubdirectory(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "top.txt", "x")
	writeFile(t, sb, "docs/top.txt", "x")

	res, err := sb.Search(context.Background(), "docs", "top", "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "docs/top.txt", res.Entries[0].Path)
}

func TestSearchCancelled(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "a.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sb.Search(ctx, "", "a", "")
	assert.Error(t, err)
}
