package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Upload writes incoming content under dirPath, creating missing
// intermediate directories. If the requested filename is taken, a
// non-colliding name is generated by appending _1, _2, ... before the
// extension. The final name is claimed with an exclusive create, and the
// content lands via a temp file renamed into place so an aborted upload
// never leaves a partial file visible. Returns the filename actually used.
func (s *Sandbox) Upload(dirPath, filename string, content io.Reader) (string, error) {
	if err := validateName(filename); err != nil {
		return "", err
	}
	resolved, err := s.Resolve(dirPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", IOf(err, "create upload directory %s", dirPath)
	}

	name, claimed, err := claimName(resolved, filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(resolved, ".upload-*")
	if err != nil {
		os.Remove(claimed)
		return "", IOf(err, "stage upload %s", filename)
	}
	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		os.Remove(claimed)
		return "", IOf(err, "write upload %s", filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		os.Remove(claimed)
		return "", IOf(err, "finish upload %s", filename)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		os.Remove(claimed)
		return "", IOf(err, "finish upload %s", filename)
	}
	if err := os.Rename(tmp.Name(), claimed); err != nil {
		os.Remove(tmp.Name())
		os.Remove(claimed)
		return "", IOf(err, "finish upload %s", filename)
	}
	return name, nil
}

// claimName finds an unused filename in dir and reserves it atomically
// with O_EXCL, so two concurrent uploads of the same name cannot both
// win the same slot. The counter has no upper bound.
func claimName(dir, filename string) (string, string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	name := filename
	for counter := 1; ; counter++ {
		target := filepath.Join(dir, name)
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			f.Close()
			return name, target, nil
		}
		if !os.IsExist(err) {
			return "", "", IOf(err, "claim name %s", name)
		}
		name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}
