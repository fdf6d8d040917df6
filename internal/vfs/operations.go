package vfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// validateName rejects names that would change the target directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return BadRequestf("invalid name %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return BadRequestf("name %q must not contain path separators", name)
	}
	return nil
}

// CreateFolder creates dirPath/name, including missing intermediate
// directories of dirPath. Fails with Conflict if the target exists.
func (s *Sandbox) CreateFolder(dirPath, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	resolved, err := s.Resolve(dirPath)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", IOf(err, "create parent %s", dirPath)
	}
	target := filepath.Join(resolved, name)
	// Mkdir is the atomic exclusive-create primitive here; EEXIST is the
	// conflict signal rather than a separate stat.
	if err := os.Mkdir(target, 0o755); err != nil {
		if os.IsExist(err) {
			return "", Conflictf("folder already exists: %s", name)
		}
		return "", IOf(err, "create folder %s", name)
	}
	return s.Rel(target), nil
}

// Rename relocates a file or folder to a new name within its parent.
func (s *Sandbox) Rename(path, newName string) (string, error) {
	if err := validateName(newName); err != nil {
		return "", err
	}
	resolved, err := s.Resolve(path)
	if err != nil {
		return "", err
	}
	// The root's parent is outside the sandbox; renaming it would plant
	// the whole tree as a sibling at the storage-root level.
	if resolved == s.root {
		return "", BadRequestf("cannot rename the sandbox root")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Lstat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", NotFoundf("path not found: %s", path)
		}
		return "", IOf(err, "stat %s", path)
	}
	target := filepath.Join(filepath.Dir(resolved), newName)
	if _, err := os.Lstat(target); err == nil {
		return "", Conflictf("name already exists: %s", newName)
	}
	if err := os.Rename(resolved, target); err != nil {
		return "", IOf(err, "rename %s", path)
	}
	return s.Rel(target), nil
}

// Move relocates a file or folder to a new path, creating missing
// destination parent directories. Cross-directory moves are allowed.
func (s *Sandbox) Move(sourcePath, destPath string) (string, error) {
	src, err := s.Resolve(sourcePath)
	if err != nil {
		return "", err
	}
	dst, err := s.Resolve(destPath)
	if err != nil {
		return "", err
	}
	if src == s.root {
		return "", BadRequestf("cannot move the sandbox root")
	}
	if dst == src || strings.HasPrefix(dst, src+string(os.PathSeparator)) {
		return "", BadRequestf("destination is inside the source")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return "", NotFoundf("source not found: %s", sourcePath)
		}
		return "", IOf(err, "stat %s", sourcePath)
	}
	if _, err := os.Lstat(dst); err == nil {
		return "", Conflictf("destination already exists: %s", destPath)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", IOf(err, "create destination parent for %s", destPath)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", IOf(err, "move %s", sourcePath)
	}
	return s.Rel(dst), nil
}

// Copy duplicates a file or a whole subtree. A partial failure leaves
// the destination partially written; there is no rollback.
func (s *Sandbox) Copy(sourcePath, destPath string) (string, error) {
	src, err := s.Resolve(sourcePath)
	if err != nil {
		return "", err
	}
	dst, err := s.Resolve(destPath)
	if err != nil {
		return "", err
	}
	if src == s.root {
		return "", BadRequestf("cannot copy the sandbox root")
	}
	// A destination under the source would be enumerated while it is
	// being written, copying the tree into itself without bound.
	if dst == src || strings.HasPrefix(dst, src+string(os.PathSeparator)) {
		return "", BadRequestf("destination is inside the source")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NotFoundf("source not found: %s", sourcePath)
		}
		return "", IOf(err, "stat %s", sourcePath)
	}
	if _, err := os.Lstat(dst); err == nil {
		return "", Conflictf("destination already exists: %s", destPath)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", IOf(err, "create destination parent for %s", destPath)
	}

	if info.IsDir() {
		err = copyTree(src, dst)
	} else {
		err = copyFile(src, dst, info)
	}
	if err != nil {
		return "", IOf(err, "copy %s", sourcePath)
	}
	return s.Rel(dst), nil
}

// Delete removes a file or, recursively, a folder. Deletion is immediate
// and irreversible; there is no trash.
func (s *Sandbox) Delete(path string) error {
	resolved, err := s.Resolve(path)
	if err != nil {
		return err
	}
	if resolved == s.root {
		return BadRequestf("cannot delete the sandbox root")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return NotFoundf("path not found: %s", path)
		}
		return IOf(err, "stat %s", path)
	}
	if info.IsDir() {
		if err := os.RemoveAll(resolved); err != nil {
			return IOf(err, "delete folder %s", path)
		}
		return nil
	}
	if err := os.Remove(resolved); err != nil {
		return IOf(err, "delete file %s", path)
	}
	return nil
}

// copyFile duplicates a single file, preserving mode and modification
// time where the platform allows.
func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyTree recursively duplicates a directory subtree.
func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}
	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		from := filepath.Join(src, child.Name())
		to := filepath.Join(dst, child.Name())
		if child.IsDir() {
			if err := copyTree(from, to); err != nil {
				return err
			}
			continue
		}
		childInfo, err := child.Info()
		if err != nil {
			return err
		}
		if !childInfo.Mode().IsRegular() {
			// Symlinks and specials are skipped rather than followed.
			continue
		}
		if err := copyFile(from, to, childInfo); err != nil {
			return err
		}
	}
	return nil
}
