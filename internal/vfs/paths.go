package vfs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manager hands out per-user sandboxes under a common storage root.
// One directory per user identifier; the directory tree is the state.
type Manager struct {
	base  string
	locks sync.Map // user id -> *sync.Mutex
}

// NewManager creates the storage root if needed and canonicalizes it.
func NewManager(base string) (*Manager, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, IOf(err, "create storage root %s", base)
	}
	canonical, err := filepath.EvalSymlinks(base)
	if err != nil {
		return nil, IOf(err, "resolve storage root %s", base)
	}
	return &Manager{base: canonical}, nil
}

// Base returns the canonical storage root.
func (m *Manager) Base() string {
	return m.base
}

// Sandbox returns the sandbox bound to a user, creating its directory on
// first use. Two calls for the same user share one mutation lock.
func (m *Manager) Sandbox(userID string) (*Sandbox, error) {
	if userID == "" || userID != filepath.Base(userID) || strings.HasPrefix(userID, ".") {
		return nil, BadRequestf("invalid user identifier")
	}
	root := filepath.Join(m.base, userID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, IOf(err, "create sandbox for user %s", userID)
	}
	mu, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	return &Sandbox{owner: userID, root: root, mu: mu.(*sync.Mutex)}, nil
}

// Sandbox confines all operations for one user to their root directory.
type Sandbox struct {
	owner string
	root  string
	mu    *sync.Mutex
}

// Owner returns the user identifier the sandbox belongs to.
func (s *Sandbox) Owner() string {
	return s.owner
}

// Root returns the sandbox root directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve turns a caller-supplied relative path into an absolute location
// inside the sandbox. Leading separators are stripped to force relative
// interpretation. The result is canonicalized (dot segments and symlinks)
// and verified to stay at or below the root; paths that would escape fail
// with a containment error whether or not the target exists.
func (s *Sandbox) Resolve(raw string) (string, error) {
	rel := strings.TrimLeft(filepath.FromSlash(raw), "/\\")
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" {
		return s.root, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", Containmentf("path %q escapes the sandbox", raw)
	}

	resolved, err := canonicalize(filepath.Join(s.root, rel))
	if err != nil {
		return "", IOf(err, "resolve path %q", raw)
	}
	if resolved != s.root && !strings.HasPrefix(resolved, s.root+string(os.PathSeparator)) {
		return "", Containmentf("path %q escapes the sandbox", raw)
	}
	return resolved, nil
}

// Rel converts an absolute location back to the sandbox-relative form
// exposed to callers (forward slashes, empty string for the root).
func (s *Sandbox) Rel(abs string) string {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// canonicalize resolves symlinks along the deepest existing ancestor and
// re-joins the nonexistent remainder, so containment holds for targets
// that do not exist yet.
func canonicalize(path string) (string, error) {
	existing := path
	var pending []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			parts := append([]string{resolved}, pending...)
			return filepath.Join(parts...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", err
		}
		pending = append([]string{filepath.Base(existing)}, pending...)
		existing = parent
	}
}
