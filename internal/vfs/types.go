package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Entry is the transient metadata record returned by listings and
// searches. It is rebuilt from stat on every call and never persisted,
// so consecutive calls may observe different results.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	Kind        Kind      `json:"type"`
	MIME        string    `json:"mime_type,omitempty"`
	Extension   string    `json:"extension,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
	OwnerID     string    `json:"owner_id"`
	Previewable bool      `json:"previewable"`
}

// newEntry derives an Entry from stat metadata. relPath is the
// sandbox-relative path with forward slashes.
func (s *Sandbox) newEntry(relPath string, info os.FileInfo) Entry {
	entry := Entry{
		ID:         uuid.NewString(),
		Name:       info.Name(),
		Path:       relPath,
		Size:       info.Size(),
		CreatedAt:  createdAt(info),
		ModifiedAt: info.ModTime(),
		OwnerID:    s.owner,
	}
	if info.IsDir() {
		entry.Kind = KindFolder
		entry.Size = 0
		return entry
	}
	c := Classify(info.Name())
	entry.Kind = c.Kind
	entry.MIME = c.MIME
	entry.Previewable = c.Previewable
	entry.Extension = strings.ToLower(strings.TrimPrefix(filepath.Ext(info.Name()), "."))
	return entry
}

// createdAt extracts the inode change time where the platform exposes it,
// falling back to the modification time.
func createdAt(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}

// isHidden reports whether a name carries the hidden-file marker.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
