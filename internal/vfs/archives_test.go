package vfs

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(content)
	}
	return out
}

func TestBuildArchiveEntryPaths(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "bundle/x/1.txt", "one")
	writeFile(t, sb, "bundle/y/2.txt", "two")

	archive, err := sb.BuildArchive(context.Background(), "bundle")
	require.NoError(t, err)
	assert.Equal(t, "bundle.zip", archive.Name)

	entries := readArchive(t, archive.Data)
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Paths are relative to the archived directory, not including its name.
	assert.Equal(t, []string{"x/1.txt", "y/2.txt"}, keys)
	assert.Equal(t, "one", entries["x/1.txt"])
	assert.Equal(t, "two", entries["y/2.txt"])
}

func TestBuildArchiveRoundTrip(t *testing.T) {
	sb := newTestSandbox(t)
	content := "payload bytes \x00\x01\x02"
	writeFile(t, sb, "dir/file.bin", content)

	archive, err := sb.BuildArchive(context.Background(), "dir")
	require.NoError(t, err)

	entries := readArchive(t, archive.Data)
	assert.Equal(t, content, entries["file.bin"])
}

func TestBuildArchiveNotFound(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.BuildArchive(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestBuildArchiveFileTarget(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "plain.txt", "x")

	_, err := sb.BuildArchive(context.Background(), "plain.txt")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestBuildArchiveRootUsesOwnerName(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "a.txt", "x")

	archive, err := sb.BuildArchive(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "user-1.zip", archive.Name)
}
