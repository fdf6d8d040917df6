package vfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListBasic(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "b.txt", "bb")
	writeFile(t, sb, "a.txt", "a")
	require.NoError(t, os.Mkdir(filepath.Join(sb.Root(), "docs"), 0o755))

	listing, err := sb.List("", ListOptions{SortBy: SortByName, Order: OrderAsc})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs", "a.txt", "b.txt"}, names(listing.Entries))
	assert.Equal(t, 2, listing.Files)
	assert.Equal(t, 1, listing.Folders)
}

func TestListNotFound(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.List("missing", ListOptions{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListFileIsNotFound(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "a.txt", "a")

	_, err := sb.List("a.txt", ListOptions{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListSkipsHidden(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, ".secret", "x")
	writeFile(t, sb, "visible.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(sb.Root(), ".git"), 0o755))

	listing, err := sb.List("", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, names(listing.Entries))
}

func TestListSearchTermIsCaseInsensitiveSubstring(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "Report-Final.txt", "x")
	writeFile(t, sb, "draft.txt", "x")
	writeFile(t, sb, "unreported.md", "x")

	listing, err := sb.List("", ListOptions{Search: "report", SortBy: SortByName})
	require.NoError(t, err)
	assert.Equal(t, []string{"Report-Final.txt", "unreported.md"}, names(listing.Entries))
}

func TestListFoldersAlwaysFirst(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "aaa.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(sb.Root(), "zzz"), 0o755))

	// Even sorted desc by name, the folder partition leads.
	listing, err := sb.List("", ListOptions{SortBy: SortByName, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"zzz", "aaa.txt"}, names(listing.Entries))

	listing, err = sb.List("", ListOptions{SortBy: SortBySize, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, KindFolder, listing.Entries[0].Kind)
}

func TestListSortByNameCaseInsensitive(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "Banana.txt", "x")
	writeFile(t, sb, "apple.txt", "x")
	writeFile(t, sb, "Cherry.txt", "x")

	listing, err := sb.List("", ListOptions{SortBy: SortByName, Order: OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple.txt", "Banana.txt", "Cherry.txt"}, names(listing.Entries))

	listing, err = sb.List("", ListOptions{SortBy: SortByName, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cherry.txt", "Banana.txt", "apple.txt"}, names(listing.Entries))
}

func TestListSortBySizeTiesBreakByName(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "big.txt", "xxxxxxxxxx")
	writeFile(t, sb, "Beta.txt", "xx")
	writeFile(t, sb, "alpha.txt", "xx")

	listing, err := sb.List("", ListOptions{SortBy: SortBySize, Order: OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.txt", "Beta.txt", "big.txt"}, names(listing.Entries))

	// Ties keep ascending name order in descending sorts too.
	listing, err = sb.List("", ListOptions{SortBy: SortBySize, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"big.txt", "alpha.txt", "Beta.txt"}, names(listing.Entries))
}

func TestListSortByModified(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "old.txt", "x")
	writeFile(t, sb, "new.txt", "x")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(sb.Root(), "old.txt"), past, past))

	listing, err := sb.List("", ListOptions{SortBy: SortByModified, Order: OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"old.txt", "new.txt"}, names(listing.Entries))

	listing, err = sb.List("", ListOptions{SortBy: SortByModified, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"new.txt", "old.txt"}, names(listing.Entries))
}

func TestListSortByTypeTiesBreakByName(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "song.mp3", "x")
	writeFile(t, sb, "Zeta.txt", "x")
	writeFile(t, sb, "alpha.txt", "x")
	writeFile(t, sb, "photo.png", "x")

	listing, err := sb.List("", ListOptions{SortBy: SortByType, Order: OrderAsc})
	require.NoError(t, err)
	// audio < image < text; within text, name ties break case-insensitively.
	assert.Equal(t, []string{"song.mp3", "photo.png", "alpha.txt", "Zeta.txt"}, names(listing.Entries))
}

func TestListEntryMetadata(t *testing.T) {
	sb := newTestSandbox(t)
	writeFile(t, sb, "docs/report.pdf", "content")

	listing, err := sb.List("docs", ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Entries, 1)

	e := listing.Entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "report.pdf", e.Name)
	assert.Equal(t, "docs/report.pdf", e.Path)
	assert.Equal(t, int64(7), e.Size)
	assert.Equal(t, KindDocument, e.Kind)
	assert.Equal(t, "application/pdf", e.MIME)
	assert.Equal(t, "pdf", e.Extension)
	assert.Equal(t, "user-1", e.OwnerID)
	assert.True(t, e.Previewable)
	assert.False(t, e.ModifiedAt.IsZero())
	assert.False(t, e.CreatedAt.IsZero())
}
