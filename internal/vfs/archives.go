package vfs

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/flate"
)

// Archive is an in-memory zip built from a directory subtree for the
// duration of one download response.
type Archive struct {
	Name string
	Data []byte
}

// BuildArchive packages a directory into a deflate-compressed zip. Entry
// paths are relative to the archived directory, so the directory's own
// name never appears inside the archive. The whole archive is
// materialized in memory before the first byte is sent, which bounds
// archivable directory size by available memory.
func (s *Sandbox) BuildArchive(ctx context.Context, dirPath string) (*Archive, error) {
	resolved, err := s.Resolve(dirPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundf("path not found: %s", dirPath)
		}
		return nil, IOf(err, "stat %s", dirPath)
	}
	if !info.IsDir() {
		return nil, NotFoundf("not a directory: %s", dirPath)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	// The zip writer is not safe for concurrent use; each file is added
	// under the lock while fastwalk fans out the tree traversal.
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, resolved, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || path == resolved || d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()

		mu.Lock()
		defer mu.Unlock()
		writer, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, IOf(err, "archive %s", dirPath)
	}
	if err := zw.Close(); err != nil {
		return nil, IOf(err, "finalize archive for %s", dirPath)
	}

	name := filepath.Base(resolved)
	if resolved == s.root {
		name = s.owner
	}
	return &Archive{Name: name + ".zip", Data: buf.Bytes()}, nil
}
