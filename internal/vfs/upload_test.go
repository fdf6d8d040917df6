package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRoundTrip(t *testing.T) {
	sb := newTestSandbox(t)
	content := "byte-identical \x00\xff payload"

	name, err := sb.Upload("docs", "data.bin", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "data.bin", name)

	stored, err := os.ReadFile(filepath.Join(sb.Root(), "docs", "data.bin"))
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))
}

func TestUploadCreatesIntermediateDirectories(t *testing.T) {
	sb := newTestSandbox(t)

	name, err := sb.Upload("a/b/c", "f.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "f.txt", name)
	assert.FileExists(t, filepath.Join(sb.Root(), "a", "b", "c", "f.txt"))
}

func TestUploadConflictAvoidanceNaming(t *testing.T) {
	sb := newTestSandbox(t)

	name, err := sb.Upload("", "a.txt", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, "a.txt", name)

	name, err = sb.Upload("", "a.txt", strings.NewReader("second"))
	require.NoError(t, err)
	assert.Equal(t, "a_1.txt", name)

	name, err = sb.Upload("", "a.txt", strings.NewReader("third"))
	require.NoError(t, err)
	assert.Equal(t, "a_2.txt", name)

	// Nothing got overwritten along the way.
	first, _ := os.ReadFile(filepath.Join(sb.Root(), "a.txt"))
	second, _ := os.ReadFile(filepath.Join(sb.Root(), "a_1.txt"))
	third, _ := os.ReadFile(filepath.Join(sb.Root(), "a_2.txt"))
	assert.Equal(t, "first", string(first))
	assert.Equal(t, "second", string(second))
	assert.Equal(t, "third", string(third))
}

func TestUploadSuffixBeforeExtension(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "report.tar.gz", "existing")

	name, err := sb.Upload("", "report.tar.gz", strings.NewReader("new"))
	require.NoError(t, err)
	assert.Equal(t, "report.tar_1.gz", name)
}

func TestUploadNoExtension(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "Makefile", "existing")

	name, err := sb.Upload("", "Makefile", strings.NewReader("new"))
	require.NoError(t, err)
	assert.Equal(t, "Makefile_1", name)
}

func TestUploadRejectsTraversal(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.Upload("../outside", "f.txt", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindContainment))
}

func TestUploadRejectsBadFilename(t *testing.T) {
	sb := newTestSandbox(t)

	for _, name := range []string{"", "..", "a/b.txt"} {
		_, err := sb.Upload("", name, strings.NewReader("x"))
		require.Error(t, err, "filename %q", name)
		assert.True(t, IsKind(err, KindBadRequest), "filename %q", name)
	}
}

func TestUploadLeavesNoTempFiles(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.Upload("", "f.txt", strings.NewReader("x"))
	require.NoError(t, err)

	children, err := os.ReadDir(sb.Root())
	require.NoError(t, err)
	for _, child := range children {
		assert.False(t, strings.HasPrefix(child.Name(), ".upload-"), "leftover temp file %s", child.Name())
	}
}
